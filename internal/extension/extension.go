// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package extension

//go:generate mockgen -source=extension.go -destination=../mock/extension_mock.go -package=mock

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-web-skeleton/internal/config"
	"github.com/MKhiriev/go-web-skeleton/internal/httperr"
	"github.com/MKhiriev/go-web-skeleton/internal/logger"
)

// Extension is a pluggable component initialized against the loaded
// configuration during bootstrap. InitApp is called exactly once, before any
// route group is registered.
type Extension interface {
	Name() string
	InitApp(cfg *config.StructuredConfig, log *logger.Logger) error
}

// Middleware is implemented by extensions that wrap every request. respond is
// the application's error responder.
type Middleware interface {
	Middleware(respond httperr.Responder) func(http.Handler) http.Handler
}

// Mounter is implemented by extensions that expose their own routes.
type Mounter interface {
	Mount(r chi.Router, respond httperr.Responder)
}

// Closer is implemented by extensions holding resources that must be released
// on shutdown.
type Closer interface {
	Close() error
}

// Set holds one instance of every extension used by the application. It is
// created explicitly during bootstrap and handed to route groups, so there is
// no process-wide extension state.
type Set struct {
	Bcrypt       *Bcrypt
	Cache        *Cache
	CSRF         *CSRFProtect
	DebugToolbar *DebugToolbar
	StaticDigest *StaticDigest
	Mail         *Mail
}

// NewSet returns a Set of uninitialized extensions.
func NewSet() *Set {
	return &Set{
		Bcrypt:       NewBcrypt(),
		Cache:        NewCache(),
		CSRF:         NewCSRFProtect(),
		DebugToolbar: NewDebugToolbar(),
		StaticDigest: NewStaticDigest(),
		Mail:         NewMail(),
	}
}

// All returns the extensions in initialization order.
func (s *Set) All() []Extension {
	return []Extension{
		s.Bcrypt,
		s.Cache,
		s.CSRF,
		s.DebugToolbar,
		s.StaticDigest,
		s.Mail,
	}
}

// Close releases the resources of every extension that holds any.
func (s *Set) Close() error {
	var errs error
	for _, ext := range s.All() {
		if c, ok := ext.(Closer); ok {
			if err := c.Close(); err != nil {
				errs = errors.Join(errs, err)
			}
		}
	}
	return errs
}
