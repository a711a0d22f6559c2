package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ember/internal/engine"
)

func TestRun_CommitsAndRefusals(t *testing.T) {
	scenario := &Scenario{
		Name: "inline",
		Config: ScenarioConfig{
			Owner:    "owner-1",
			Oracle:   "oracle-1",
			Balances: map[string]uint64{"oracle-1": 1_000_000_000},
		},
		Steps: []Step{
			{
				Op:     OpStepCycle,
				Caller: "oracle-1",
				Inputs: &engine.MarketInputs{
					Volatility: 80, Sentiment: 30,
					Volume24h: 500_000_000, LiquidityDepth: 150,
				},
				Expect: &Expect{Outcome: "ok", Amount: 300_000, TotalBurned: 300_000},
			},
			{
				Op:     OpStepManualBurn,
				Caller: "stranger",
				Amount: 1,
				Expect: &Expect{Outcome: "INSUFFICIENT_BALANCE"},
			},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	require.Len(t, result.Trace, 2)
	assert.Equal(t, "ok", result.Trace[0].Outcome)
	assert.Equal(t, uint64(300_000), result.Trace[0].Amount)
	assert.Equal(t, uint64(1), result.Trace[0].RecordID)
	assert.Equal(t, "INSUFFICIENT_BALANCE", result.Trace[1].Outcome)
	assert.Zero(t, result.Trace[1].Amount)

	assert.Equal(t, uint64(300_000), result.TotalBurned)
	assert.Equal(t, uint64(1), result.TotalCycles)
}

func TestRun_ExpectationMismatchFailsResult(t *testing.T) {
	scenario := &Scenario{
		Name:   "mismatch",
		Config: ScenarioConfig{Owner: "owner-1"},
		Steps: []Step{
			{
				Op:     OpStepSetCap,
				Caller: "owner-1",
				Amount: 100,
				Expect: &Expect{Outcome: "NOT_AUTHORIZED"},
			},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expected outcome NOT_AUTHORIZED, got ok")
}

func TestRun_StepWithoutExpectMustSucceed(t *testing.T) {
	scenario := &Scenario{
		Name:   "implicit-success",
		Config: ScenarioConfig{Owner: "owner-1"},
		Steps: []Step{
			// Non-owner admin call fails, and without an expect clause that
			// fails the scenario.
			{Op: OpStepSetPaused, Caller: "stranger", Paused: true},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expected success")
}

func TestRun_DeterministicAcrossRuns(t *testing.T) {
	scenario := &Scenario{
		Name: "repeat",
		Config: ScenarioConfig{
			Owner:    "owner-1",
			Oracle:   "oracle-1",
			Balances: map[string]uint64{"owner-1": 10_000},
		},
		Steps: []Step{
			{Op: OpStepManualBurn, Caller: "owner-1", Amount: 100},
			{Op: OpStepManualBurn, Caller: "owner-1", Amount: 200},
		},
	}

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	assert.Equal(t, first.Trace, second.Trace)
	assert.Equal(t, first.TotalBurned, second.TotalBurned)
}

func TestRun_InvalidScenario(t *testing.T) {
	_, err := Run(&Scenario{Name: "", Config: ScenarioConfig{Owner: "o"}})
	require.Error(t, err)
}
