package http

import (
	"net/http"

	"github.com/MKhiriev/go-web-skeleton/internal/httperr"
)

// HandlerFunc is a request handler that reports failures by returning an
// error instead of writing the error response itself.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts fn to an [http.HandlerFunc]. A non-nil error returned by fn is
// passed to respond; fn must not have written anything in that case.
func Handle(fn HandlerFunc, respond httperr.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			respond(w, r, err)
		}
	}
}
