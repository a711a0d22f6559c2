package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/ember/internal/config"
	"github.com/roach88/ember/internal/tuning"
)

// ValidationResult holds validation results for JSON output.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [policy.cue]",
		Short: "Validate config and policy tables without touching state",
		Long: `Validate the system config and the multiplier policy.

Without arguments, validates the config file and whatever policy it
references (or the embedded default). With a CUE file argument,
validates that policy file against the schema instead - useful for
checking a retuned policy before pointing the config at it.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, args []string, cmd *cobra.Command) error {
	f := formatter(opts, cmd)
	result := ValidationResult{Valid: true}

	// Explicit policy file: validate just that.
	if len(args) == 1 {
		if !fileExists(args[0]) {
			return f.Errorf(ExitCommandError, "COMMAND_ERROR", "policy file not found: %s", args[0])
		}
		if _, err := tuning.LoadFile(args[0]); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, err.Error())
		}
		return outputValidation(f, opts, result)
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return outputValidation(f, opts, result)
	}

	if cfg.Policy != "" {
		_, err = tuning.LoadFile(cfg.Policy)
	} else {
		_, err = tuning.LoadDefault()
	}
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
	}

	return outputValidation(f, opts, result)
}

func outputValidation(f *OutputFormatter, opts *RootOptions, result ValidationResult) error {
	if opts.Format == "json" {
		if err := f.JSON(result); err != nil {
			return err
		}
	} else if result.Valid {
		f.Textf("valid")
	} else {
		for _, e := range result.Errors {
			f.Textf("INVALID: %s", e)
		}
	}

	if !result.Valid {
		return &ExitError{Code: ExitFailure, Message: "validation failed"}
	}
	return nil
}
