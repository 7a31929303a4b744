// Package templates holds the embedded HTML pages of the application and the
// Renderer that executes them inside the shared layout.
package templates
