package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/FiQCI/qflip/internal/circuit"
	"github.com/FiQCI/qflip/internal/workflow"
)

// BellOptions holds flags for the bell command.
type BellOptions struct {
	*TargetOptions
}

// NewBellCommand creates the bell command.
func NewBellCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BellOptions{TargetOptions: &TargetOptions{RootOptions: rootOpts}}

	cmd := &cobra.Command{
		Use:   "bell",
		Short: "Run a two-qubit Bell pair circuit",
		Long: `Prepare a Bell pair (Hadamard then controlled-NOT), measure it, and
print the histogram with the job's ID and calibration set. On a healthy
target the counts concentrate on 00 and 11.

Examples:
  qflip bell
  qflip bell --target remote --shots 2000
  qflip bell --db ./runs.db`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBell(opts, cmd)
		},
	}

	addTargetFlags(cmd, opts.TargetOptions)

	return cmd
}

func runBell(opts *BellOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	b, err := resolveBackend(opts.TargetOptions)
	if err != nil {
		reportError(opts.RootOptions, cmd, "config", err)
		return err
	}

	rep, err := workflow.New(b).Bell(ctx, opts.Shots)
	if err != nil {
		if circuit.IsInvalidInput(err) {
			reportError(opts.RootOptions, cmd, "input", err)
			return WrapExitError(ExitFailure, "invalid input", err)
		}
		return WrapExitError(ExitFailure, "run aborted", err)
	}

	if err := recordReport(ctx, opts.Database, rep); err != nil {
		return err
	}

	return outputReport(opts.RootOptions, cmd, rep)
}
