package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-web-skeleton/internal/httperr"
	"github.com/MKhiriev/go-web-skeleton/internal/logger"
)

// recordingResponder writes the status of the reported error and remembers it.
type recordingResponder struct {
	errs []error
}

func (rr *recordingResponder) respond(w http.ResponseWriter, r *http.Request, err error) {
	rr.errs = append(rr.errs, err)
	he := httperr.From(err)
	http.Error(w, http.StatusText(he.Code), he.Code)
}

func newTestHandler() (*Handler, *recordingResponder) {
	rec := &recordingResponder{}
	return &Handler{logger: logger.Nop(), respond: rec.respond}, rec
}

func newBufferedHandler(buf *bytes.Buffer) (*Handler, *recordingResponder) {
	l := logger.New("test")
	l.AddHandler(buf)

	rec := &recordingResponder{}
	return NewHandler(l, rec.respond), rec
}

func TestNewHandler(t *testing.T) {
	rec := &recordingResponder{}
	h := NewHandler(logger.Nop(), rec.respond)

	require.NotNil(t, h)
	assert.NotNil(t, h.logger)
	assert.NotNil(t, h.respond)
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		fn         HandlerFunc
		wantStatus int
		wantBody   string
		wantErrs   int
	}{
		{
			name: "success writes response",
			fn: func(w http.ResponseWriter, r *http.Request) error {
				w.WriteHeader(http.StatusAccepted)
				_, _ = w.Write([]byte("ok"))
				return nil
			},
			wantStatus: http.StatusAccepted,
			wantBody:   "ok",
		},
		{
			name: "tagged error keeps its code",
			fn: func(w http.ResponseWriter, r *http.Request) error {
				return httperr.New(http.StatusUnauthorized, nil)
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Unauthorized\n",
			wantErrs:   1,
		},
		{
			name: "plain error becomes 500",
			fn: func(w http.ResponseWriter, r *http.Request) error {
				return assert.AnError
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Internal Server Error\n",
			wantErrs:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recordingResponder{}
			handler := Handle(tt.fn, rec.respond)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantBody, rr.Body.String())
			assert.Len(t, rec.errs, tt.wantErrs)
		})
	}
}
