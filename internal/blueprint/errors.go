package blueprint

import "errors"

var (
	// ErrInvalidContactForm is reported for a contact form that fails
	// validation.
	ErrInvalidContactForm = errors.New("invalid contact form")

	// ErrUnauthorized is reported for missing or wrong members credentials.
	ErrUnauthorized = errors.New("unauthorized")
)
