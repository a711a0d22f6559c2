package cli

import (
	"github.com/spf13/cobra"
)

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show engine config and burn totals",
		Long: `Show the current system status: pause flag, configured roles,
per-cycle cap, and the running burn totals from the audit ledger.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(rootOpts, cmd)
		},
	}
	return cmd
}

func runStatus(opts *RootOptions, cmd *cobra.Command) error {
	f := formatter(opts, cmd)

	e, err := openEnv(opts, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	status := e.engine.SystemStatus()
	if opts.Format == "json" {
		return f.JSON(status)
	}

	state := "active"
	if status.Paused {
		state = "paused"
	}
	f.Textf("state:         %s", state)
	f.Textf("owner:         %s", status.Owner)
	f.Textf("oracle:        %s", orDash(status.Oracle))
	f.Textf("cap per cycle: %s", f.Amount(status.MaxBurnPerCycle))
	f.Textf("total burned:  %s", f.Amount(status.TotalBurned))
	f.Textf("total cycles:  %d", status.TotalCycles)
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
