package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FiQCI/qflip/internal/device"
)

// BackendsOptions holds flags for the backends command.
type BackendsOptions struct {
	*RootOptions
	Profiles string
}

// NewBackendsCommand creates the backends command.
func NewBackendsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BackendsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "backends",
		Short: "List known device profiles",
		Long: `List the device profiles jobs can target: the builtin profiles plus
any loaded from --profiles. A directory profile with the same id as a
builtin one replaces it.

Examples:
  qflip backends
  qflip backends --profiles ./devices --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackends(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Profiles, "profiles", "", "directory of extra CUE device profiles")

	return cmd
}

func runBackends(opts *BackendsOptions, cmd *cobra.Command) error {
	devices, err := device.Load(opts.Profiles)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load device profiles", err)
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return f.Success(devices)
	}

	var b strings.Builder
	for _, d := range devices {
		fmt.Fprintf(&b, "%s: %s, %d qubits (%s)", d.ID, d.Label, d.NumQubits, strings.Join(d.Names, ", "))
		if d.EndpointEnv != "" {
			fmt.Fprintf(&b, ", endpoint from %s", d.EndpointEnv)
		}
		b.WriteByte('\n')
	}
	return f.Success(strings.TrimRight(b.String(), "\n"))
}
