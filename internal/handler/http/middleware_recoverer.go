package http

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/MKhiriev/go-web-skeleton/internal/httperr"
	"github.com/MKhiriev/go-web-skeleton/internal/logger"
)

// ErrPanic wraps the value of a recovered handler panic.
var ErrPanic = errors.New("handler panicked")

// recoverer turns a handler panic into a 500 response rendered through the
// application error handlers. http.ErrAbortHandler is re-raised untouched.
func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			logger.FromRequest(r).Error().
				Str("panic", fmt.Sprint(rvr)).
				Bytes("stack", debug.Stack()).
				Msg("recovered from panic")

			h.respond(w, r, httperr.New(http.StatusInternalServerError, fmt.Errorf("%w: %v", ErrPanic, rvr)))
		}()

		next.ServeHTTP(w, r)
	})
}
