package harness

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// TraceSnapshot captures the complete trace for a scenario execution.
// Serialized as indented JSON with stable field order for deterministic
// comparison.
type TraceSnapshot struct {
	ScenarioName string       `json:"scenario_name"`
	Trace        []TraceEvent `json:"trace"`
	TotalBurned  uint64       `json:"total_burned"`
	TotalCycles  uint64       `json:"total_cycles"`
}

// RunWithGolden executes a scenario and compares the trace against a
// golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Golden files are the source of truth for expected trace behavior
// across the whole pipeline.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	for _, e := range result.Errors {
		t.Errorf("expectation failed: %s", e)
	}

	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an already-computed result's trace against a
// golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	snapshot := TraceSnapshot{
		ScenarioName: scenarioName,
		Trace:        result.Trace,
		TotalBurned:  result.TotalBurned,
		TotalCycles:  result.TotalCycles,
	}

	traceJSON, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal trace snapshot: %w", err)
	}
	traceJSON = append(traceJSON, '\n')

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, traceJSON)

	return nil
}
