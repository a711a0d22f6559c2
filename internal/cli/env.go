package cli

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/ember/internal/config"
	"github.com/roach88/ember/internal/engine"
	"github.com/roach88/ember/internal/ledger"
	"github.com/roach88/ember/internal/store"
	"github.com/roach88/ember/internal/tuning"
)

// env bundles everything a command needs: the parsed config, the open
// audit store, and an engine wired over them. Close the env when done.
type env struct {
	cfg    *config.Config
	store  *store.Store
	engine *engine.Engine
}

func (e *env) Close() error {
	return e.store.Close()
}

// openEnv loads the config, opens the audit store, and constructs the
// engine the way a standalone deployment would: in-memory token ledger
// seeded from config balances, logical-clock heights resumed above the
// last recorded height, slog telemetry on stderr when verbose.
func openEnv(opts *RootOptions, cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load config", err)
	}

	st, err := store.Open(cfg.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open audit database", err)
	}

	eopts := []engine.Option{
		engine.WithOracle(cfg.Oracle),
		engine.WithPaused(cfg.Paused),
		engine.WithHeightSource(resumedClock(st, cmd)),
	}
	if cfg.MaxBurnPerCycle > 0 {
		eopts = append(eopts, engine.WithMaxBurnPerCycle(cfg.MaxBurnPerCycle))
	}
	if cfg.Policy != "" {
		tables, err := tuning.LoadFile(cfg.Policy)
		if err != nil {
			st.Close()
			return nil, WrapExitError(ExitCommandError, "load policy", err)
		}
		eopts = append(eopts, engine.WithTables(tables))
	}
	if opts.Verbose {
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
		eopts = append(eopts,
			engine.WithLogger(logger),
			engine.WithEmitter(engine.NewSlogEmitter(logger)))
	}

	eng, err := engine.New(st, ledger.NewInMemory(cfg.Balances), cfg.Owner, eopts...)
	if err != nil {
		st.Close()
		return nil, WrapExitError(ExitCommandError, "construct engine", err)
	}

	return &env{cfg: cfg, store: st, engine: eng}, nil
}

// resumedClock returns a logical clock resumed above the highest height
// already in the ledger, so heights stay non-decreasing across CLI runs.
func resumedClock(st *store.Store, cmd *cobra.Command) engine.HeightSource {
	records, err := st.ReadHistory(cmd.Context(), 0, 0)
	if err != nil || len(records) == 0 {
		return engine.NewLogicalClock()
	}
	return engine.NewLogicalClockAt(records[len(records)-1].Height)
}

// defaultCaller resolves the acting identity: the --as flag when given,
// otherwise the config owner. The engine still enforces roles - this is
// convenience, not authorization.
func defaultCaller(as string, cfg *config.Config) string {
	if as != "" {
		return as
	}
	return cfg.Owner
}

// policyCode extracts the stable policy code from an engine error, or
// "COMMAND_ERROR" for infrastructure failures.
func policyCode(err error) string {
	var pe *engine.PolicyError
	if errors.As(err, &pe) {
		return string(pe.Code)
	}
	return "COMMAND_ERROR"
}

// formatter builds the output formatter for a command.
func formatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// fileExists reports whether path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
