package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/FiQCI/qflip/internal/backend"
	"github.com/FiQCI/qflip/internal/score"
	"github.com/FiQCI/qflip/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Target   string
	Device   string
	Limit    int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded runs",
		Long: `Read run records from a history database written with --db, newest
first.

Examples:
  qflip history --db ./runs.db
  qflip history --db ./runs.db --target remote --limit 10
  qflip history --db ./runs.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Target, "target", "", "only runs on this target")
	cmd.Flags().StringVar(&opts.Device, "device", "", "only runs on this device profile")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum records shown (0 for all)")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	runs, err := st.ListRuns(ctx, store.Filter{
		Target: opts.Target,
		Device: opts.Device,
		Limit:  opts.Limit,
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read runs", err)
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return f.Success(runs)
	}

	if len(runs) == 0 {
		return f.Success("no recorded runs")
	}

	var b strings.Builder
	for _, r := range runs {
		fmt.Fprintf(&b, "%s  %s  %s/%s  %s  %s\n",
			r.CreatedAt.UTC().Format(time.RFC3339), r.Mode, r.Target, r.Device,
			strings.Join(r.QubitNames, "+"), historyResult(r))
	}
	return f.Success(strings.TrimRight(b.String(), "\n"))
}

// historyResult renders the outcome column of one record.
func historyResult(r store.Run) string {
	switch {
	case r.Failure != "":
		return "failed: " + r.Failure
	case r.Desired != "":
		return score.Percent(r.Probability)
	default:
		return backend.Counts(r.Counts).String()
	}
}
