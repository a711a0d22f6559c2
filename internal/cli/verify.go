package cli

import (
	"github.com/spf13/cobra"
)

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Replay the audit ledger and check its invariants",
		Long: `Replay the whole audit ledger and re-derive its invariants:
dense record ids starting at 1, positive amounts, non-decreasing
heights, and totals that reconcile with the records.

Exit code 0 means the ledger is clean; 1 means at least one invariant
is violated (the database was tampered with or written by something
other than the engine).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(rootOpts, cmd)
		},
	}
	return cmd
}

func runVerify(opts *RootOptions, cmd *cobra.Command) error {
	f := formatter(opts, cmd)

	e, err := openEnv(opts, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	report, err := e.store.Verify(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "verify ledger", err)
	}

	if opts.Format == "json" {
		if err := f.JSON(report); err != nil {
			return err
		}
	} else {
		f.Textf("records:      %d", report.Records)
		f.Textf("total burned: %s", f.Amount(report.TotalBurned))
		f.Textf("total cycles: %d", report.TotalCycles)
		if report.Clean() {
			f.Textf("ledger clean")
		} else {
			for _, p := range report.Problems {
				f.Textf("PROBLEM: %s", p)
			}
		}
	}

	if !report.Clean() {
		return &ExitError{Code: ExitFailure, Message: "ledger verification failed"}
	}
	return nil
}
