package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Policy refusal or failed verification
	ExitCommandError = 2 // Command error (invalid paths, database not found, etc.)
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output
	Verbose   bool

	printer *message.Printer
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // policy code or "COMMAND_ERROR"
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// JSON outputs a successful result as a JSON envelope.
func (f *OutputFormatter) JSON(data any) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(CLIResponse{Status: "ok", Data: data})
}

// Textf writes a formatted text line.
func (f *OutputFormatter) Textf(format string, args ...any) {
	fmt.Fprintf(f.Writer, format+"\n", args...)
}

// Amount renders a token amount with thousands separators for text
// output ("3,000,000"). JSON output always carries raw integers.
func (f *OutputFormatter) Amount(v uint64) string {
	if f.printer == nil {
		f.printer = message.NewPrinter(language.English)
	}
	return f.printer.Sprintf("%d", v)
}

// Errorf outputs an error in the configured format and returns an
// ExitError carrying the right exit code.
func (f *OutputFormatter) Errorf(code int, policyCode, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if f.Format == "json" {
		json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: policyCode, Message: msg},
		})
	} else {
		fmt.Fprintf(f.ErrWriter, "error: %s\n", msg)
	}
	return &ExitError{Code: code, Message: msg}
}

// VerboseLog writes a diagnostic line to the error writer when verbose
// mode is on. Diagnostics never go to stdout, so JSON output stays
// parseable.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if f.Verbose {
		fmt.Fprintf(f.ErrWriter, format+"\n", args...)
	}
}
