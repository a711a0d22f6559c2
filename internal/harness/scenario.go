package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/ember/internal/engine"
)

// Scenario defines a conformance test scenario.
// Scenarios validate engine behavior by executing a sequence of
// operations and asserting on outcomes, totals, and the final trace.
type Scenario struct {
	// Name uniquely identifies this scenario; it names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Config is the engine configuration for this run.
	Config ScenarioConfig `yaml:"config"`

	// Steps is the ordered operation list. Each step can carry an expect
	// clause; steps without one are assumed to succeed.
	Steps []Step `yaml:"steps"`
}

// ScenarioConfig mirrors the engine's construction-time state.
type ScenarioConfig struct {
	Owner           string            `yaml:"owner"`
	Oracle          string            `yaml:"oracle,omitempty"`
	Paused          bool              `yaml:"paused,omitempty"`
	MaxBurnPerCycle uint64            `yaml:"max_burn_per_cycle,omitempty"`
	Balances        map[string]uint64 `yaml:"balances,omitempty"`
}

// Step is one operation in a scenario.
type Step struct {
	// Op is one of: set-oracle, set-paused, set-cap, manual-burn, cycle.
	Op string `yaml:"op"`

	// Caller is the acting identity.
	Caller string `yaml:"caller"`

	// Amount is the manual-burn amount or the set-cap value.
	Amount uint64 `yaml:"amount,omitempty"`

	// Oracle is the new oracle for set-oracle.
	Oracle string `yaml:"oracle,omitempty"`

	// Paused is the new flag for set-paused.
	Paused bool `yaml:"paused,omitempty"`

	// Inputs carries the market vector for cycle steps.
	Inputs *engine.MarketInputs `yaml:"inputs,omitempty"`

	// Expect specifies the expected outcome. Nil means "must succeed".
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect specifies an expected step outcome.
type Expect struct {
	// Outcome is "ok" or a policy code (NOT_AUTHORIZED, PAUSED,
	// INVALID_AMOUNT, CAP_EXCEEDED, INSUFFICIENT_BALANCE).
	Outcome string `yaml:"outcome"`

	// Amount is the expected committed amount (burn steps only; zero
	// means "don't check").
	Amount uint64 `yaml:"amount,omitempty"`

	// TotalBurned is the expected running total after the step (zero
	// means "don't check").
	TotalBurned uint64 `yaml:"total_burned,omitempty"`
}

// Step op names.
const (
	OpStepSetOracle  = "set-oracle"
	OpStepSetPaused  = "set-paused"
	OpStepSetCap     = "set-cap"
	OpStepManualBurn = "manual-burn"
	OpStepCycle      = "cycle"
)

// LoadScenario reads and validates a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &s, nil
}

// Validate checks scenario well-formedness before execution.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if s.Config.Owner == "" {
		return fmt.Errorf("config.owner is required")
	}
	for i, step := range s.Steps {
		switch step.Op {
		case OpStepSetOracle, OpStepSetPaused, OpStepSetCap, OpStepManualBurn:
		case OpStepCycle:
			if step.Inputs == nil {
				return fmt.Errorf("step %d: cycle requires inputs", i)
			}
		default:
			return fmt.Errorf("step %d: unknown op %q", i, step.Op)
		}
		if step.Caller == "" {
			return fmt.Errorf("step %d: caller is required", i)
		}
	}
	return nil
}
