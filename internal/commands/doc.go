// Package commands implements the developer commands attached to the
// application CLI: test and lint.
package commands
