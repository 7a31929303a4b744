package commands

//go:generate mockgen -source=runner.go -destination=../mock/runner_mock.go -package=mock

import (
	"context"
	"io"
	"os/exec"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	headerColor  = color.New(color.FgBlue, color.Bold)
)

// Runner executes an external program.
type Runner interface {
	Run(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) error
}

// ExecRunner runs programs with os/exec in Dir (the working directory when
// empty).
type ExecRunner struct {
	Dir string
}

func (r ExecRunner) Run(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}
