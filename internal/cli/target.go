package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/FiQCI/qflip/internal/backend"
	"github.com/FiQCI/qflip/internal/device"
	"github.com/FiQCI/qflip/internal/store"
	"github.com/FiQCI/qflip/internal/workflow"
)

// TargetOptions holds the flags shared by every command that submits
// jobs: which target to run on, which device profile describes it, and
// where to record the results.
type TargetOptions struct {
	*RootOptions
	Target   string
	Device   string
	Profiles string
	Endpoint string
	Shots    int
	Seed     int64
	Database string

	// IDs overrides the simulator's job ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDs backend.IDGenerator
}

// addTargetFlags registers the shared flags on a job-running command.
func addTargetFlags(cmd *cobra.Command, opts *TargetOptions) {
	cmd.Flags().StringVar(&opts.Target, "target", backend.TargetSimulator,
		fmt.Sprintf("execution target %v", backend.ValidTargets))
	cmd.Flags().StringVar(&opts.Device, "device", device.DefaultID, "device profile id")
	cmd.Flags().StringVar(&opts.Profiles, "profiles", "", "directory of extra CUE device profiles")
	cmd.Flags().StringVar(&opts.Endpoint, "endpoint", "", "remote endpoint URL (overrides the profile's environment variable)")
	cmd.Flags().IntVar(&opts.Shots, "shots", 1000, "shots per job")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "simulator RNG seed (0 seeds from the clock)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite database to record the run into")
}

// resolveBackend loads device profiles and resolves the target. Profile
// and configuration problems come back as command errors (exit 2):
// nothing has been submitted yet.
func resolveBackend(opts *TargetOptions) (backend.Backend, error) {
	devices, err := device.Load(opts.Profiles)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load device profiles", err)
	}
	dev, ok := device.Find(devices, opts.Device)
	if !ok {
		return nil, WrapExitError(ExitCommandError,
			fmt.Sprintf("unknown device %q: run 'qflip backends' to list profiles", opts.Device), nil)
	}

	b, err := backend.Resolve(backend.Config{
		Target:   opts.Target,
		Device:   dev,
		Endpoint: opts.Endpoint,
		Seed:     opts.Seed,
		IDs:      opts.IDs,
	})
	if err != nil {
		if backend.IsConfigError(err) {
			return nil, WrapExitError(ExitCommandError, "cannot resolve target", err)
		}
		return nil, WrapExitError(ExitFailure, "cannot resolve target", err)
	}

	slog.Debug("target resolved", "target", b.Name(), "device", dev.ID, "qubits", dev.NumQubits)
	return b, nil
}

// recordReport appends the report's entries to the run history when a
// database path was given. Content addressing makes re-recording safe.
func recordReport(ctx context.Context, dbPath string, rep *workflow.Report) error {
	if dbPath == "" {
		return nil
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	ids, err := st.WriteRuns(ctx, store.FromReport(rep, time.Now()))
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to record run", err)
	}
	slog.Info("run recorded", "db", dbPath, "records", len(ids))
	return nil
}

// reportError emits the JSON error envelope for format=json so scripted
// callers still get structured output; text callers read the error from
// stderr when main prints it.
func reportError(rootOpts *RootOptions, cmd *cobra.Command, code string, err error) {
	if rootOpts.Format != "json" {
		return
	}
	f := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
	_ = f.Error(code, err.Error())
}

// outputReport renders a workflow report in the configured format.
func outputReport(rootOpts *RootOptions, cmd *cobra.Command, rep *workflow.Report) error {
	f := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
	if rootOpts.Format == "json" {
		return f.Success(rep)
	}
	return f.Success(strings.TrimRight(rep.Text(), "\n"))
}
