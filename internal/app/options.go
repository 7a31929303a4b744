package app

import (
	"io"

	"github.com/MKhiriev/go-web-skeleton/internal/blueprint"
	"github.com/MKhiriev/go-web-skeleton/internal/commands"
	"github.com/MKhiriev/go-web-skeleton/internal/extension"
	"github.com/MKhiriev/go-web-skeleton/internal/logger"
)

// Option customizes an App before bootstrap.
type Option func(*App)

// WithName overrides the application name, which also names its logger.
func WithName(name string) Option {
	return func(a *App) {
		a.Name = name
	}
}

// WithLogger replaces the named process-wide logger.
func WithLogger(l *logger.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}

// WithStdout sets the writer attached to a logger without handlers.
func WithStdout(w io.Writer) Option {
	return func(a *App) {
		a.stdout = w
	}
}

// WithExtensions replaces the list of extensions initialized during
// bootstrap. App.Extensions stays available to route groups.
func WithExtensions(exts ...extension.Extension) Option {
	return func(a *App) {
		a.extensions = exts
	}
}

// WithBlueprints replaces the registered route groups.
func WithBlueprints(bps ...blueprint.Blueprint) Option {
	return func(a *App) {
		a.blueprints = bps
	}
}

// WithRenderer replaces the embedded templates.
func WithRenderer(r Renderer) Option {
	return func(a *App) {
		a.Renderer = r
	}
}

// WithCommandRunner sets the runner used by the CLI commands.
func WithCommandRunner(r commands.Runner) Option {
	return func(a *App) {
		a.runner = r
	}
}
