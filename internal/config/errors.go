package config

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by [Error]. Callers can match against them with
// [errors.Is].
var (
	// ErrMissingSetting indicates that a required setting has no value in any
	// configuration source.
	ErrMissingSetting = errors.New("missing required setting")
	// ErrInvalidSetting indicates that a setting has a value that fails
	// validation or cannot be converted to its target type.
	ErrInvalidSetting = errors.New("invalid setting")
	// ErrSourceUnavailable indicates that a configuration source (file,
	// .env file) exists in the chain but could not be read or decoded.
	ErrSourceUnavailable = errors.New("configuration source unavailable")
)

// Error is the configuration error class. Field names the offending setting
// using its Go path (e.g. "App.SecretKey"); it is empty for source-level
// failures.
type Error struct {
	Field string
	Err   error
}

func (e *Error) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("config: %v", e.Err)
	}
	return fmt.Sprintf("config: %s: %v", e.Field, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
