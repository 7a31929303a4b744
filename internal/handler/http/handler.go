package http

import (
	"github.com/MKhiriev/go-web-skeleton/internal/httperr"
	"github.com/MKhiriev/go-web-skeleton/internal/logger"
)

// Handler owns the base router of the application: the middleware chain shared
// by every blueprint and the fallback routes for unknown paths and methods.
type Handler struct {
	logger  *logger.Logger
	respond httperr.Responder
}

// NewHandler returns a Handler that reports every failed request to respond.
func NewHandler(logger *logger.Logger, respond httperr.Responder) *Handler {
	logger.Debug().Msg("http handler created")
	return &Handler{
		logger:  logger,
		respond: respond,
	}
}
