package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/ember/internal/engine"
)

// CycleOptions holds flags for the cycle command.
type CycleOptions struct {
	*RootOptions
	As     string
	Inputs engine.MarketInputs
}

// NewCycleCommand creates the cycle command (formula-driven burn path).
func NewCycleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CycleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "cycle",
		Short: "Execute one dynamic burn cycle from market inputs",
		Long: `Execute one oracle-driven burn cycle.

The amount is computed from the market inputs (5 bps of 24h volume,
scaled by the volatility/sentiment/liquidity tier tables), validated
against the per-cycle cap, destroyed from the oracle's balance, and
recorded with reason "ai-dynamic-burn-v2".

Only the configured oracle may run cycles; the owner is refused like
any other caller. --map is carried on telemetry but never enters the
computation.

Example:
  ember cycle --as oracle-1 --volatility 80 --sentiment 30 \
    --volume 500000000 --liquidity 150 --map 100`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCycle(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.As, "as", "", "acting identity (defaults to the config owner)")
	cmd.Flags().Uint64Var(&opts.Inputs.Volatility, "volatility", 0, "volatility index (0-100)")
	cmd.Flags().Uint64Var(&opts.Inputs.Sentiment, "sentiment", 0, "sentiment index (0-100)")
	cmd.Flags().Uint64Var(&opts.Inputs.Volume24h, "volume", 0, "24h volume in base units")
	cmd.Flags().Uint64Var(&opts.Inputs.LiquidityDepth, "liquidity", 0, "liquidity depth score")
	cmd.Flags().Uint64Var(&opts.Inputs.MovingAveragePrice, "map", 0, "moving average price (informational)")
	cmd.MarkFlagRequired("volume")

	return cmd
}

func runCycle(opts *CycleOptions, cmd *cobra.Command) error {
	f := formatter(opts.RootOptions, cmd)

	e, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	caller := defaultCaller(opts.As, e.cfg)
	result, err := e.engine.ExecuteDynamicBurnCycle(cmd.Context(), caller, opts.Inputs)
	if err != nil {
		return f.Errorf(ExitFailure, policyCode(err), "burn cycle refused: %v", err)
	}

	if opts.Format == "json" {
		return f.JSON(result)
	}
	f.Textf("cycle %s: burned %s (record %d)", result.Status, f.Amount(result.Burned), result.RecordID)
	f.Textf("total burned: %s", f.Amount(result.TotalBurned))
	f.Textf("cap headroom: %s", f.Amount(result.Headroom))
	return nil
}
