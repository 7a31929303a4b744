package http

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-web-skeleton/internal/httperr"
)

func newTestRouter(t *testing.T) (*chi.Mux, *recordingResponder) {
	t.Helper()

	h, rec := newTestHandler()
	router := h.Init()

	router.Get("/about", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(strings.Repeat("<p>about</p>", 100)))
	})
	router.Post("/contact", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusSeeOther)
	})
	router.Get("/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	return router, rec
}

func TestInit_RoutesKnownPaths(t *testing.T) {
	router, rec := newTestRouter(t)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{name: "GET registered route", method: http.MethodGet, path: "/about", wantStatus: http.StatusOK},
		{name: "trailing slash is stripped", method: http.MethodGet, path: "/about/", wantStatus: http.StatusOK},
		{name: "POST registered route", method: http.MethodPost, path: "/contact/", wantStatus: http.StatusSeeOther},
		{name: "HEAD served by GET route", method: http.MethodHead, path: "/about", wantStatus: http.StatusOK},
		{name: "HEAD with trailing slash", method: http.MethodHead, path: "/about/", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}

	assert.Empty(t, rec.errs)
}

func TestInit_HeadWithoutGetRouteIsNotFound(t *testing.T) {
	router, rec := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodHead, "/contact", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "POST", rr.Header().Get("Allow"))
	require.Len(t, rec.errs, 1)
}

func TestInit_UnknownPathGoesToResponder(t *testing.T) {
	router, rec := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	require.Len(t, rec.errs, 1)
	assert.Equal(t, http.StatusNotFound, httperr.From(rec.errs[0]).Code)
}

func TestInit_PanicGoesToResponder(t *testing.T) {
	router, rec := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Len(t, rec.errs, 1)
	assert.ErrorIs(t, rec.errs[0], ErrPanic)
	assert.Equal(t, http.StatusInternalServerError, httperr.From(rec.errs[0]).Code)
}

func TestInit_CompressesWhenAccepted(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Contains(t, string(body), "<p>about</p>")
}

func TestInit_NoCompressionWithoutAcceptEncoding(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/about", nil))

	assert.Empty(t, rr.Header().Get("Content-Encoding"))
	assert.Contains(t, rr.Body.String(), "<p>about</p>")
}

func TestInit_SetsTraceIDHeader(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/about", nil))

	assert.NotEmpty(t, rr.Header().Get(traceIDHeader))
}
