package store

// Burn reasons form a fixed tag vocabulary; records never carry free-form
// reasons. The literals are part of the persisted record shape and must
// not change.
const (
	// ReasonManualBurn tags operator-triggered burns. Manual burns carry a
	// zero-filled market snapshot rather than omitting it, keeping the
	// record shape uniform across both burn paths.
	ReasonManualBurn = "manual-user-burn"

	// ReasonDynamicBurn tags formula-driven burns executed by the oracle.
	ReasonDynamicBurn = "ai-dynamic-burn-v2"
)

// BurnRecord is one immutable entry of the audit ledger.
//
// Records are created exclusively by Store.AppendBurn and never updated
// or deleted. ID is assigned by the store; callers leave it zero.
type BurnRecord struct {
	// ID is the dense, strictly increasing ledger key, starting at 1.
	ID uint64 `json:"id"`

	// Height is the chain/sequence marker at commit time.
	Height uint64 `json:"height"`

	// Amount is the destroyed amount; always positive.
	Amount uint64 `json:"amount"`

	// Actor is the caller that triggered the burn.
	Actor string `json:"actor"`

	// Reason is one of the fixed reason tags above.
	Reason string `json:"reason"`

	// Volatility, Sentiment, Liquidity snapshot the market inputs of a
	// dynamic burn; all three are zero for manual burns.
	Volatility uint64 `json:"volatility"`
	Sentiment  uint64 `json:"sentiment"`
	Liquidity  uint64 `json:"liquidity"`

	// CycleToken correlates the record with telemetry for the same
	// invocation.
	CycleToken string `json:"cycle_token"`
}

// Totals is the singleton counter pair maintained alongside the records.
//
// TotalCycles equals the number of burn records and doubles as the next
// record id; TotalBurned equals the sum of amounts over all records.
// Both are monotonically non-decreasing.
type Totals struct {
	TotalBurned uint64 `json:"total_burned"`
	TotalCycles uint64 `json:"total_cycles"`
}
