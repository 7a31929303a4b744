// Package httperr defines the error value that carries an HTTP status code
// from request handlers to the application's error handlers.
package httperr

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
)

// Error is an error tagged with the HTTP status code it should be answered
// with. Code is always a valid status: constructors default it to 500.
type Error struct {
	Code int
	Err  error
}

// New returns an *Error with the given code. A code outside the 400-599
// range is replaced by 500.
func New(code int, err error) *Error {
	if code < 400 || code > 599 {
		code = http.StatusInternalServerError
	}
	return &Error{Code: code, Err: err}
}

// Errorf is New with a formatted cause.
func Errorf(code int, format string, args ...any) *Error {
	return New(code, fmt.Errorf(format, args...))
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("%d %s: %v", e.Code, http.StatusText(e.Code), e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// From converts any error to an *Error. An *Error anywhere in the chain is
// returned as-is; other errors get the status from [StatusFromError].
func From(err error) *Error {
	var he *Error
	if errors.As(err, &he) {
		return he
	}
	return New(StatusFromError(err), err)
}

// Responder answers a request with err. The application installs one that
// dispatches to its error handler table.
type Responder func(w http.ResponseWriter, r *http.Request, err error)

var errorStatusMap = map[error]int{
	context.DeadlineExceeded: http.StatusServiceUnavailable,
	fs.ErrNotExist:           http.StatusNotFound,
	fs.ErrPermission:         http.StatusForbidden,
}

// StatusFromError maps well-known sentinel errors to a status code and
// defaults to 500.
func StatusFromError(err error) int {
	var he *Error
	if errors.As(err, &he) {
		return he.Code
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
