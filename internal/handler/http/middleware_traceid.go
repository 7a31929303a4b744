package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-web-skeleton/internal/utils"
)

const (
	traceIDHeader = "X-Trace-ID"

	// maxTraceIDLen caps client-supplied ids before they reach the logs.
	maxTraceIDLen = 128
)

// withTraceID attaches a request logger carrying trace_id to the request
// context and echoes the id in the response. A client-supplied X-Trace-ID is
// kept unless it is longer than maxTraceIDLen.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if traceID == "" || len(traceID) > maxTraceIDLen {
			traceID = utils.NewID()
		}

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r.WithContext(l.WithContext(r.Context())))
	})
}
