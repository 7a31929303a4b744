package commands

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewLintCommand returns the "lint" command: gofmt followed by go vet.
//
//	lint [--fix] [--check] [paths...]
//
// Without flags gofmt only lists badly formatted files. --fix rewrites them
// and --check fails when any file would be rewritten.
func NewLintCommand(runner Runner) *cobra.Command {
	var (
		fix   bool
		check bool
	)

	cmd := &cobra.Command{
		Use:          "lint [paths...]",
		Short:        "Check the code style and run go vet",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			errOut := cmd.ErrOrStderr()

			paths := args
			if len(paths) == 0 {
				paths = []string{"."}
			}

			if fix {
				headerColor.Fprintf(out, "gofmt -w %s\n", strings.Join(paths, " "))
				if err := runner.Run(ctx, out, errOut, "gofmt", append([]string{"-w"}, paths...)...); err != nil {
					return fmt.Errorf("%w: gofmt: %w", ErrLintFailed, err)
				}
			} else {
				headerColor.Fprintf(out, "gofmt -l %s\n", strings.Join(paths, " "))

				var listed bytes.Buffer
				if err := runner.Run(ctx, &listed, errOut, "gofmt", append([]string{"-l"}, paths...)...); err != nil {
					return fmt.Errorf("%w: gofmt: %w", ErrLintFailed, err)
				}

				if files := unformattedFiles(listed.String()); len(files) > 0 {
					for _, f := range files {
						warningColor.Fprintf(out, "  %s\n", f)
					}
					if check {
						errorColor.Fprintf(out, "%d file(s) need formatting\n", len(files))
						return fmt.Errorf("%w: %s", ErrUnformatted, strings.Join(files, ", "))
					}
				}
			}

			vetArgs := []string{"vet", "./..."}
			headerColor.Fprintf(out, "go %s\n", strings.Join(vetArgs, " "))
			if err := runner.Run(ctx, out, errOut, "go", vetArgs...); err != nil {
				errorColor.Fprintln(out, "go vet reported problems")
				return fmt.Errorf("%w: go vet: %w", ErrLintFailed, err)
			}

			successColor.Fprintln(out, "lint passed")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&fix, "fix", "f", false, "Rewrite badly formatted files")
	cmd.Flags().BoolVar(&check, "check", false, "Fail when files need formatting")
	cmd.MarkFlagsMutuallyExclusive("fix", "check")

	return cmd
}

func unformattedFiles(output string) []string {
	var files []string
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			files = append(files, line)
		}
	}
	return files
}
