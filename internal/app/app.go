// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-web-skeleton/internal/blueprint"
	"github.com/MKhiriev/go-web-skeleton/internal/commands"
	"github.com/MKhiriev/go-web-skeleton/internal/config"
	"github.com/MKhiriev/go-web-skeleton/internal/extension"
	apphttp "github.com/MKhiriev/go-web-skeleton/internal/handler/http"
	"github.com/MKhiriev/go-web-skeleton/internal/httperr"
	"github.com/MKhiriev/go-web-skeleton/internal/logger"
	"github.com/MKhiriev/go-web-skeleton/internal/templates"
)

// DefaultName is the name of the application and of its logger.
const DefaultName = "app"

// errorCodes are the statuses answered with a rendered "<code>.html" page.
var errorCodes = []int{
	http.StatusUnauthorized,
	http.StatusNotFound,
	http.StatusInternalServerError,
}

// App is a fully bootstrapped application. It is an [http.Handler].
type App struct {
	Name       string
	Config     *config.StructuredConfig
	Extensions *extension.Set
	Router     *chi.Mux
	CLI        *cobra.Command
	Logger     *logger.Logger
	Renderer   Renderer

	extensions    []extension.Extension
	blueprints    []blueprint.Blueprint
	registered    []string
	errorHandlers map[int]ErrorHandler
	stdout        io.Writer
	runner        commands.Runner
}

type step struct {
	name string
	run  func() error
}

// CreateApp builds an App from source, a nil source meaning
// [config.Default]. The bootstrap steps run exactly once, in order:
// configuration, extensions, route groups, error handlers, CLI commands and
// logging. The first failing step aborts bootstrap with a *StepError after
// the extensions are closed.
func CreateApp(source config.Source, opts ...Option) (*App, error) {
	if source == nil {
		source = config.Default()
	}

	app, err := newApp(opts...)
	if err != nil {
		return nil, &StepError{Step: "create", Err: err}
	}

	steps := []step{
		{name: "config", run: func() error { return app.loadConfig(source) }},
		{name: "extensions", run: app.registerExtensions},
		{name: "blueprints", run: app.registerBlueprints},
		{name: "error handlers", run: app.registerErrorHandlers},
		{name: "commands", run: app.registerCommands},
		{name: "logger", run: app.configureLogger},
	}

	for _, s := range steps {
		if err := s.run(); err != nil {
			// extensions initialized before the failure may hold connections
			if app.Config != nil {
				if closeErr := app.Close(); closeErr != nil {
					err = errors.Join(err, closeErr)
				}
			}
			return nil, &StepError{Step: s.name, Err: err}
		}
		app.Logger.Debug().Str("step", s.name).Msg("bootstrap step done")
	}

	app.Logger.Info().
		Str("env", app.Config.App.Env).
		Strs("blueprints", app.registered).
		Msg("application created")

	return app, nil
}

// newApp instantiates the App with its explicit extension set, router and
// named logger.
func newApp(opts ...Option) (*App, error) {
	app := &App{
		Name:          DefaultName,
		Extensions:    extension.NewSet(),
		errorHandlers: make(map[int]ErrorHandler, len(errorCodes)),
		stdout:        os.Stdout,
		runner:        commands.ExecRunner{},
		blueprints:    blueprint.Application,
	}
	app.extensions = app.Extensions.All()

	for _, opt := range opts {
		opt(app)
	}

	if app.Logger == nil {
		app.Logger = logger.Get(app.Name)
	}

	if app.Renderer == nil {
		renderer, err := templates.New(app.Extensions.StaticDigest.URLFor)
		if err != nil {
			return nil, err
		}
		app.Renderer = renderer
	}

	app.Router = apphttp.NewHandler(app.Logger, app.HandleError).Init()

	app.CLI = &cobra.Command{
		Use:          app.Name,
		Short:        "Run the web server",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context())
		},
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}
	config.RegisterFlags(app.CLI.Flags())

	return app, nil
}

func (a *App) loadConfig(source config.Source) error {
	cfg, err := source.Load()
	if err != nil {
		return err
	}

	a.Config = cfg
	return nil
}

// registerExtensions initializes every extension, then installs their
// middleware and routes.
func (a *App) registerExtensions() error {
	for _, ext := range a.extensions {
		if err := ext.InitApp(a.Config, a.Logger); err != nil {
			return fmt.Errorf("%s: %w", ext.Name(), err)
		}
	}

	for _, ext := range a.extensions {
		if m, ok := ext.(extension.Middleware); ok {
			a.Router.Use(m.Middleware(a.HandleError))
		}
	}

	for _, ext := range a.extensions {
		if m, ok := ext.(extension.Mounter); ok {
			m.Mount(a.Router, a.HandleError)
		}
	}

	return nil
}

func (a *App) registerBlueprints() error {
	seen := make(map[string]struct{}, len(a.blueprints))
	for _, bp := range a.blueprints {
		if bp.Register == nil || !strings.HasPrefix(bp.URLPrefix, "/") {
			return fmt.Errorf("%w: %q", ErrInvalidBlueprint, bp.Name)
		}
		if _, ok := seen[bp.Name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateBlueprint, bp.Name)
		}
		seen[bp.Name] = struct{}{}
	}

	deps := blueprint.Deps{
		Config:     a.Config,
		Extensions: a.Extensions,
		Renderer:   a.Renderer,
		Logger:     a.Logger,
		Respond:    a.HandleError,
	}

	for _, bp := range a.blueprints {
		register := func(r chi.Router) { bp.Register(r, deps) }

		if prefix := strings.TrimSuffix(bp.URLPrefix, "/"); prefix == "" {
			a.Router.Group(register)
		} else {
			a.Router.Route(prefix, register)
		}

		a.registered = append(a.registered, bp.Name)
		a.Logger.Debug().Str("blueprint", bp.Name).Str("prefix", bp.URLPrefix).Msg("blueprint registered")
	}

	return nil
}

func (a *App) registerErrorHandlers() error {
	for _, code := range errorCodes {
		a.errorHandlers[code] = a.renderError
	}
	return nil
}

func (a *App) registerCommands() error {
	a.CLI.AddCommand(
		commands.NewTestCommand(a.runner),
		commands.NewLintCommand(a.runner),
	)
	return nil
}

// configureLogger attaches stdout only to a logger without handlers, so that
// repeated bootstraps in one process never duplicate output.
func (a *App) configureLogger() error {
	if a.Logger.Handlers() == 0 {
		a.Logger.AddHandler(a.stdout)
	}

	level, err := zerolog.ParseLevel(a.Config.Logging.Level)
	if err != nil {
		return &config.Error{Field: "Logging.Level", Err: fmt.Errorf("%w: %w", config.ErrInvalidSetting, err)}
	}
	a.Logger.SetLevel(level)

	return nil
}

// ServeHTTP dispatches to the router.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.Router.ServeHTTP(w, r)
}

// Blueprints returns the names of the registered route groups in order.
func (a *App) Blueprints() []string {
	out := make([]string, len(a.registered))
	copy(out, a.registered)
	return out
}

// HandleError answers r with err. The status comes from the *httperr.Error
// in the chain and is 500 for any other error. Statuses with a registered
// error handler get their rendered page, the others a plain-text body.
func (a *App) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	he := httperr.From(err)

	log := logger.FromRequest(r)
	if he.Code >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", he.Code).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", he.Code).Msg("request rejected")
	}

	if handler, ok := a.errorHandlers[he.Code]; ok {
		handler(w, r, he)
		return
	}

	http.Error(w, http.StatusText(he.Code), he.Code)
}

// renderError is the error handler shared by every registered status.
func (a *App) renderError(w http.ResponseWriter, r *http.Request, err *httperr.Error) {
	var buf bytes.Buffer
	if renderErr := a.Renderer.Render(&buf, fmt.Sprintf("%d.html", err.Code), templates.ErrorPage{Code: err.Code}); renderErr != nil {
		logger.FromRequest(r).Error().Err(renderErr).Msg("error page rendering failed")
		http.Error(w, http.StatusText(err.Code), err.Code)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(err.Code)
	_, _ = buf.WriteTo(w)
}

// Close releases the resources held by the extensions.
func (a *App) Close() error {
	var errs error
	for _, ext := range a.extensions {
		if c, ok := ext.(extension.Closer); ok {
			if err := c.Close(); err != nil {
				errs = errors.Join(errs, fmt.Errorf("%s: %w", ext.Name(), err))
			}
		}
	}
	return errs
}
