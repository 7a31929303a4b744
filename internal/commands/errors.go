package commands

import "errors"

var (
	// ErrTestsFailed is returned by the test command when go test fails.
	ErrTestsFailed = errors.New("tests failed")

	// ErrLintFailed is returned by the lint command when a linter fails.
	ErrLintFailed = errors.New("lint failed")

	// ErrUnformatted is returned by lint --check when gofmt would change files.
	ErrUnformatted = errors.New("files need formatting")
)
