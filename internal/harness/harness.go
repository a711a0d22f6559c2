package harness

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/roach88/ember/internal/engine"
	"github.com/roach88/ember/internal/ledger"
	"github.com/roach88/ember/internal/store"
	"github.com/roach88/ember/internal/testutil"
)

// Run executes a scenario against a fresh engine and returns the result.
//
// The engine runs over a temporary SQLite audit store (removed before
// returning), deterministic heights (1, 2, 3, ...), and fixed cycle
// tokens ("cycle-0001", ...), so the same scenario always produces a
// byte-identical trace.
func Run(scenario *Scenario) (*Result, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "ember-harness-*")
	if err != nil {
		return nil, fmt.Errorf("harness: temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	st, err := store.Open(filepath.Join(dir, "audit.db"))
	if err != nil {
		return nil, fmt.Errorf("harness: open store: %w", err)
	}
	defer st.Close()

	tokens := make([]string, len(scenario.Steps))
	for i := range tokens {
		tokens[i] = fmt.Sprintf("cycle-%04d", i+1)
	}

	opts := []engine.Option{
		engine.WithOracle(scenario.Config.Oracle),
		engine.WithPaused(scenario.Config.Paused),
		engine.WithHeightSource(testutil.NewDeterministicHeights()),
		engine.WithCycleTokens(engine.NewFixedGenerator(tokens...)),
	}
	if scenario.Config.MaxBurnPerCycle > 0 {
		opts = append(opts, engine.WithMaxBurnPerCycle(scenario.Config.MaxBurnPerCycle))
	}

	eng, err := engine.New(st, ledger.NewInMemory(scenario.Config.Balances), scenario.Config.Owner, opts...)
	if err != nil {
		return nil, fmt.Errorf("harness: construct engine: %w", err)
	}

	result := NewResult()
	ctx := context.Background()

	for i, step := range scenario.Steps {
		ev := executeStep(ctx, eng, step)
		result.Trace = append(result.Trace, ev)
		checkExpect(result, i, step, ev)
	}

	status := eng.SystemStatus()
	result.TotalBurned = status.TotalBurned
	result.TotalCycles = status.TotalCycles

	return result, nil
}

// executeStep runs one step and converts its outcome into a trace event.
func executeStep(ctx context.Context, eng *engine.Engine, step Step) TraceEvent {
	ev := TraceEvent{Op: step.Op, Caller: step.Caller}

	var err error
	switch step.Op {
	case OpStepSetOracle:
		err = eng.SetOracle(ctx, step.Caller, step.Oracle)
	case OpStepSetPaused:
		err = eng.SetPaused(ctx, step.Caller, step.Paused)
	case OpStepSetCap:
		err = eng.SetMaxBurnCap(ctx, step.Caller, step.Amount)
	case OpStepManualBurn:
		var receipt *engine.BurnReceipt
		receipt, err = eng.ManualBurn(ctx, step.Caller, step.Amount)
		if err == nil {
			ev.Amount = receipt.Amount
			ev.RecordID = receipt.RecordID
			ev.Height = receipt.Height
			ev.TotalBurned = receipt.TotalBurned
		}
	case OpStepCycle:
		var res *engine.CycleResult
		res, err = eng.ExecuteDynamicBurnCycle(ctx, step.Caller, *step.Inputs)
		if err == nil {
			ev.Amount = res.Burned
			ev.RecordID = res.RecordID
			ev.TotalBurned = res.TotalBurned
			ev.Headroom = res.Headroom
		}
	}

	ev.Outcome = outcomeOf(err)
	return ev
}

// outcomeOf maps a step error to its trace outcome: "ok" on success, the
// policy code on refusal, "ERROR" for infrastructure failures.
func outcomeOf(err error) string {
	if err == nil {
		return "ok"
	}
	var pe *engine.PolicyError
	if errors.As(err, &pe) {
		return string(pe.Code)
	}
	return "ERROR"
}

// checkExpect validates a step's expect clause against its trace event.
func checkExpect(result *Result, i int, step Step, ev TraceEvent) {
	want := step.Expect
	if want == nil {
		if ev.Outcome != "ok" {
			result.AddError(fmt.Sprintf("step %d (%s): expected success, got %s", i, step.Op, ev.Outcome))
		}
		return
	}
	if ev.Outcome != want.Outcome {
		result.AddError(fmt.Sprintf("step %d (%s): expected outcome %s, got %s", i, step.Op, want.Outcome, ev.Outcome))
	}
	if want.Amount != 0 && ev.Amount != want.Amount {
		result.AddError(fmt.Sprintf("step %d (%s): expected amount %d, got %d", i, step.Op, want.Amount, ev.Amount))
	}
	if want.TotalBurned != 0 && ev.TotalBurned != want.TotalBurned {
		result.AddError(fmt.Sprintf("step %d (%s): expected total %d, got %d", i, step.Op, want.TotalBurned, ev.TotalBurned))
	}
}
