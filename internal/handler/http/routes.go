package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-web-skeleton/internal/httperr"
)

// compressibleTypes are the content types compressed by the base router.
var compressibleTypes = []string{
	"text/html",
	"text/css",
	"text/plain",
	"text/javascript",
	"application/javascript",
	"application/json",
	"image/svg+xml",
}

// Init builds the base router. Blueprints and extensions mount their routes
// on the returned mux.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.recoverer)
	router.Use(middleware.StripSlashes)
	router.Use(middleware.GetHead)
	router.Use(middleware.Compress(5, compressibleTypes...))

	notFound := func(w http.ResponseWriter, r *http.Request) {
		h.respond(w, r, httperr.New(http.StatusNotFound, nil))
	}

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router, notFound))

	return router
}
