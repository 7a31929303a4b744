// Package utils holds small helpers shared by the HTTP layer and the
// extensions: JSON responses and identifier generation.
package utils
