package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

// BurnOptions holds flags for the burn command.
type BurnOptions struct {
	*RootOptions
	As string
}

// NewBurnCommand creates the burn command (manual burn path).
func NewBurnCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BurnOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "burn <amount>",
		Short: "Destroy tokens from the caller's own balance",
		Long: `Manually destroy an amount of tokens from the caller's balance.

The burn is refused while the engine is paused, for a zero amount, or
when the caller's balance cannot cover it. A committed burn appends an
audit record with reason "manual-user-burn" and a zero-filled market
snapshot.

Example:
  ember burn 250000 --as alice`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBurn(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.As, "as", "", "acting identity (defaults to the config owner)")

	return cmd
}

func runBurn(opts *BurnOptions, rawAmount string, cmd *cobra.Command) error {
	f := formatter(opts.RootOptions, cmd)

	amount, err := strconv.ParseUint(rawAmount, 10, 64)
	if err != nil {
		return f.Errorf(ExitCommandError, "COMMAND_ERROR", "invalid amount %q: %v", rawAmount, err)
	}

	e, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	caller := defaultCaller(opts.As, e.cfg)
	receipt, err := e.engine.ManualBurn(cmd.Context(), caller, amount)
	if err != nil {
		return f.Errorf(ExitFailure, policyCode(err), "manual burn refused: %v", err)
	}

	if opts.Format == "json" {
		return f.JSON(receipt)
	}
	f.Textf("burned %s from %s (record %d, height %d)",
		f.Amount(receipt.Amount), caller, receipt.RecordID, receipt.Height)
	f.Textf("total burned: %s", f.Amount(receipt.TotalBurned))
	return nil
}
