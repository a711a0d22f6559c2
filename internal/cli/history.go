package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/ember/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	From  uint64
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history [id]",
		Short: "Show burn records from the audit ledger",
		Long: `Show burn records from the append-only audit ledger.

With an id argument, shows that single record. Without one, lists
records in id order, optionally windowed with --from and --limit.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, args, cmd)
		},
	}

	cmd.Flags().Uint64Var(&opts.From, "from", 1, "first record id to list")
	cmd.Flags().IntVar(&opts.Limit, "limit", 50, "maximum records to list (0 = all)")

	return cmd
}

func runHistory(opts *HistoryOptions, args []string, cmd *cobra.Command) error {
	f := formatter(opts.RootOptions, cmd)

	e, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	if len(args) == 1 {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return f.Errorf(ExitCommandError, "COMMAND_ERROR", "invalid record id %q: %v", args[0], err)
		}
		rec, err := e.engine.BurnHistory(cmd.Context(), id)
		if err != nil {
			return WrapExitError(ExitCommandError, "read record", err)
		}
		if rec == nil {
			return f.Errorf(ExitFailure, "NOT_FOUND", "no burn record with id %d", id)
		}
		if opts.Format == "json" {
			return f.JSON(rec)
		}
		printRecord(f, *rec)
		return nil
	}

	records, err := e.store.ReadHistory(cmd.Context(), opts.From, opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "read history", err)
	}
	if opts.Format == "json" {
		return f.JSON(records)
	}
	if len(records) == 0 {
		f.Textf("no burn records")
		return nil
	}
	for _, rec := range records {
		printRecord(f, rec)
	}
	return nil
}

func printRecord(f *OutputFormatter, rec store.BurnRecord) {
	f.Textf("#%d  height=%d  amount=%s  actor=%s  reason=%s  snapshot=(vol=%d sent=%d liq=%d)",
		rec.ID, rec.Height, f.Amount(rec.Amount), rec.Actor, rec.Reason,
		rec.Volatility, rec.Sentiment, rec.Liquidity)
}
