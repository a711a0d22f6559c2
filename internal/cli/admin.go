package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

// AdminOptions holds flags shared by the admin subcommands.
type AdminOptions struct {
	*RootOptions
	As string
}

// NewAdminCommand creates the admin command group: the owner-only
// configuration mutations. Each subcommand runs the gated engine
// operation (so authorization and telemetry behave exactly as embedded
// deployments see them) and, on success, persists the change back to the
// config file so it survives one-shot CLI invocations.
//
// Admin operations work while paused - pausing must never lock the owner
// out of rotating a compromised oracle or tightening the cap.
func NewAdminCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AdminOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Owner-only configuration changes",
	}
	cmd.PersistentFlags().StringVar(&opts.As, "as", "", "acting identity (defaults to the config owner)")

	cmd.AddCommand(newSetOracleCommand(opts))
	cmd.AddCommand(newPauseCommand(opts, true))
	cmd.AddCommand(newPauseCommand(opts, false))
	cmd.AddCommand(newSetCapCommand(opts))

	return cmd
}

func newSetOracleCommand(opts *AdminOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "set-oracle <identity>",
		Short:         "Rotate the oracle identity",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdmin(opts, cmd, func(e *env, caller string) error {
				if err := e.engine.SetOracle(cmd.Context(), caller, args[0]); err != nil {
					return err
				}
				e.cfg.Oracle = args[0]
				return nil
			}, "oracle set to "+args[0])
		},
	}
}

func newPauseCommand(opts *AdminOptions, paused bool) *cobra.Command {
	use, short := "pause", "Disable both burn paths"
	if !paused {
		use, short = "resume", "Re-enable burn operations"
	}
	return &cobra.Command{
		Use:           use,
		Short:         short,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			msg := "engine resumed"
			if paused {
				msg = "engine paused"
			}
			return runAdmin(opts, cmd, func(e *env, caller string) error {
				if err := e.engine.SetPaused(cmd.Context(), caller, paused); err != nil {
					return err
				}
				e.cfg.Paused = paused
				return nil
			}, msg)
		},
	}
}

func newSetCapCommand(opts *AdminOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "set-cap <amount>",
		Short:         "Set the per-cycle burn ceiling",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			capValue, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				f := formatter(opts.RootOptions, cmd)
				return f.Errorf(ExitCommandError, "COMMAND_ERROR", "invalid cap %q: %v", args[0], err)
			}
			return runAdmin(opts, cmd, func(e *env, caller string) error {
				if err := e.engine.SetMaxBurnCap(cmd.Context(), caller, capValue); err != nil {
					return err
				}
				e.cfg.MaxBurnPerCycle = capValue
				return nil
			}, "cap set to "+args[0])
		},
	}
}

// runAdmin executes one owner mutation against the engine and persists
// the updated config on success.
func runAdmin(opts *AdminOptions, cmd *cobra.Command, mutate func(*env, string) error, okMsg string) error {
	f := formatter(opts.RootOptions, cmd)

	e, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	caller := defaultCaller(opts.As, e.cfg)
	if err := mutate(e, caller); err != nil {
		return f.Errorf(ExitFailure, policyCode(err), "admin operation refused: %v", err)
	}

	if err := e.cfg.Save(opts.Config); err != nil {
		return WrapExitError(ExitCommandError, "persist config", err)
	}

	if opts.Format == "json" {
		return f.JSON(e.engine.SystemStatus())
	}
	f.Textf("%s", okMsg)
	return nil
}
