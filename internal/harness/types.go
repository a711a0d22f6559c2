package harness

// TraceEvent records one executed step and its outcome.
// Zero-valued numeric fields are omitted from the canonical trace so
// refused steps stay visually distinct from committed ones.
type TraceEvent struct {
	Op          string `json:"op"`
	Caller      string `json:"caller"`
	Outcome     string `json:"outcome"` // "ok" or a policy code
	Amount      uint64 `json:"amount,omitempty"`
	RecordID    uint64 `json:"record_id,omitempty"`
	Height      uint64 `json:"height,omitempty"`
	TotalBurned uint64 `json:"total_burned,omitempty"`
	Headroom    uint64 `json:"headroom,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	// True if every expect clause matched.
	Pass bool `json:"pass"`

	// Trace contains one event per executed step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation mismatches. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// TotalBurned and TotalCycles are the engine totals after the last
	// step.
	TotalBurned uint64 `json:"total_burned"`
	TotalCycles uint64 `json:"total_cycles"`
}

// NewResult creates a new passing result.
// Used as the starting point for scenario execution.
func NewResult() *Result {
	return &Result{
		Pass:  true,
		Trace: []TraceEvent{},
	}
}

// AddError adds an expectation mismatch and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
