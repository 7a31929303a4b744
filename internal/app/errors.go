package app

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateBlueprint is returned when two route groups share a name.
	ErrDuplicateBlueprint = errors.New("duplicate blueprint")

	// ErrInvalidBlueprint is returned for a route group without a
	// registration function or with a malformed URL prefix.
	ErrInvalidBlueprint = errors.New("invalid blueprint")
)

// StepError reports the bootstrap step that failed.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("bootstrap: %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
