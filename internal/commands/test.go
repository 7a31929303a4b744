package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewTestCommand returns the "test" command running go test through runner.
//
//	test [--coverage] [--race] [packages...]
func NewTestCommand(runner Runner) *cobra.Command {
	var (
		coverage bool
		race     bool
	)

	cmd := &cobra.Command{
		Use:          "test [packages...]",
		Short:        "Run the test suite",
		SilenceUsage: true,
		Long:         "Run go test over the given package patterns (./... by default).",
		RunE: func(cmd *cobra.Command, args []string) error {
			goArgs := testArgs(coverage, race, args)

			out := cmd.OutOrStdout()
			headerColor.Fprintf(out, "go %s\n", strings.Join(goArgs, " "))

			if err := runner.Run(cmd.Context(), out, cmd.ErrOrStderr(), "go", goArgs...); err != nil {
				errorColor.Fprintln(out, "tests failed")
				return fmt.Errorf("%w: %w", ErrTestsFailed, err)
			}

			successColor.Fprintln(out, "tests passed")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&coverage, "coverage", "c", false, "Report test coverage")
	cmd.Flags().BoolVar(&race, "race", false, "Enable the race detector")

	return cmd
}

func testArgs(coverage, race bool, packages []string) []string {
	args := []string{"test"}
	if coverage {
		args = append(args, "-cover")
	}
	if race {
		args = append(args, "-race")
	}
	if len(packages) == 0 {
		packages = []string{"./..."}
	}
	return append(args, packages...)
}
