package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitError(t *testing.T) {
	base := errors.New("boom")
	err := WrapExitError(ExitCommandError, "open database", base)

	assert.Equal(t, "open database: boom", err.Error())
	assert.Equal(t, base, errors.Unwrap(err))
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitFailure, GetExitCode(&ExitError{Code: ExitFailure, Message: "refused"}))
	assert.Equal(t, ExitCommandError,
		GetExitCode(fmt.Errorf("wrapped: %w", &ExitError{Code: ExitCommandError, Message: "bad path"})))
}

func TestOutputFormatter_JSON(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf}

	require.NoError(t, f.JSON(map[string]uint64{"total": 42}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(42), data["total"])
}

func TestOutputFormatter_Amount(t *testing.T) {
	f := &OutputFormatter{}

	assert.Equal(t, "0", f.Amount(0))
	assert.Equal(t, "999", f.Amount(999))
	assert.Equal(t, "300,000", f.Amount(300_000))
	assert.Equal(t, "1,000,000,000,000", f.Amount(1_000_000_000_000))
}

func TestOutputFormatter_ErrorfText(t *testing.T) {
	var out, errOut bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &out, ErrWriter: &errOut}

	err := f.Errorf(ExitFailure, "PAUSED", "burn refused: %s", "engine is paused")

	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Empty(t, out.String(), "text errors go to the error writer")
	assert.Contains(t, errOut.String(), "error: burn refused: engine is paused")
}

func TestOutputFormatter_ErrorfJSON(t *testing.T) {
	var out, errOut bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &out, ErrWriter: &errOut}

	err := f.Errorf(ExitFailure, "CAP_EXCEEDED", "over the cap")
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "CAP_EXCEEDED", resp.Error.Code)
	assert.Equal(t, "over the cap", resp.Error.Message)
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	var errOut bytes.Buffer

	quiet := &OutputFormatter{ErrWriter: &errOut}
	quiet.VerboseLog("hidden %d", 1)
	assert.Empty(t, errOut.String())

	loud := &OutputFormatter{ErrWriter: &errOut, Verbose: true}
	loud.VerboseLog("shown %d", 2)
	assert.Equal(t, "shown 2\n", errOut.String())
}
