package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/FiQCI/qflip/internal/circuit"
	"github.com/FiQCI/qflip/internal/workflow"
)

// FlipOptions holds flags for the flip command.
type FlipOptions struct {
	*TargetOptions
	Qubits []int
}

// NewFlipCommand creates the flip command.
func NewFlipCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FlipOptions{TargetOptions: &TargetOptions{RootOptions: rootOpts}}

	cmd := &cobra.Command{
		Use:   "flip",
		Short: "Run the qubit-flip verification workflow",
		Long: `Flip qubits with an X gate, measure them, and score how often each
one reads back one.

With --qubits, every listed qubit gets its own single-qubit job, run
sequentially in the given order. A failed job is reported for its qubit
and the loop moves on to the next one. Without --qubits, one job flips
every qubit of the device together.

Examples:
  qflip flip
  qflip flip --qubits 0,2,4 --shots 2000
  qflip flip --target remote --qubits 1 --verbose
  qflip flip --db ./runs.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlip(opts, cmd)
		},
	}

	addTargetFlags(cmd, opts.TargetOptions)
	cmd.Flags().IntSliceVar(&opts.Qubits, "qubits", nil,
		"physical qubits to flip one at a time (default: flip all together)")

	return cmd
}

func runFlip(opts *FlipOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	b, err := resolveBackend(opts.TargetOptions)
	if err != nil {
		reportError(opts.RootOptions, cmd, "config", err)
		return err
	}

	rep, err := workflow.New(b).Flip(ctx, opts.Qubits, opts.Shots)
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

	// Per-job failures are part of a completed run, not an exit code.
	if failed := rep.Failures(); failed > 0 {
		slog.Warn("run completed with failed jobs", "failed", failed, "total", len(rep.Entries))
	}

	return outputReport(opts.RootOptions, cmd, rep)
}
