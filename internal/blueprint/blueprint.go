// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package blueprint

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-web-skeleton/internal/config"
	"github.com/MKhiriev/go-web-skeleton/internal/extension"
	"github.com/MKhiriev/go-web-skeleton/internal/httperr"
	"github.com/MKhiriev/go-web-skeleton/internal/logger"
)

// Renderer renders a named page.
type Renderer interface {
	Render(w io.Writer, name string, data any) error
}

// Deps is everything a route group may use. It is built once by the
// application after all extensions are initialized.
type Deps struct {
	Config     *config.StructuredConfig
	Extensions *extension.Set
	Renderer   Renderer
	Logger     *logger.Logger
	Respond    httperr.Responder
}

// Blueprint is a named group of routes mounted under URLPrefix. Register is
// called exactly once during bootstrap.
type Blueprint struct {
	Name      string
	URLPrefix string
	Register  func(r chi.Router, deps Deps)
}

// Application lists the route groups of the application in registration
// order.
var Application = []Blueprint{
	Public,
	User,
}

// render executes the page into a buffer first so that a failing template
// never produces a half-written response. Once the status is sent a write
// failure is only logged.
func render(w http.ResponseWriter, deps Deps, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := deps.Renderer.Render(&buf, name, data); err != nil {
		return fmt.Errorf("error rendering page: %w", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		deps.Logger.Warn().Err(err).Str("page", name).Msg("error writing page")
	}
	return nil
}
