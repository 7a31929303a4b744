package app

import (
	"io"
	"net/http"

	"github.com/MKhiriev/go-web-skeleton/internal/httperr"
)

// Renderer renders a named page. The error handlers render "<code>.html".
type Renderer interface {
	Render(w io.Writer, name string, data any) error
}

// ErrorHandler answers a request that failed with err.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err *httperr.Error)
