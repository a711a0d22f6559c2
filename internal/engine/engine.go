package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/roach88/ember/internal/ledger"
	"github.com/roach88/ember/internal/store"
	"github.com/roach88/ember/internal/tuning"
)

// Operation names carried on errors, telemetry, and logs.
const (
	OpSetOracle   = "set-oracle"
	OpSetPaused   = "set-paused"
	OpSetCap      = "set-max-burn-cap"
	OpManualBurn  = "manual-burn"
	OpDynamicBurn = "dynamic-burn-cycle"
)

// DefaultMaxBurnPerCycle is the per-cycle ceiling applied until the owner
// tunes it. Deliberately generous - the cap is a circuit breaker against
// formula or oracle malfunction, not a throttle.
const DefaultMaxBurnPerCycle uint64 = 1_000_000_000_000

// CycleStatusExecuted is the status tag returned by a committed cycle.
const CycleStatusExecuted = "executed"

// MarketInputs is the trusted, already-validated scalar vector an oracle
// supplies per dynamic burn cycle.
type MarketInputs struct {
	// Volatility and Sentiment are index values in 0..100.
	Volatility uint64 `json:"volatility" yaml:"volatility"`
	Sentiment  uint64 `json:"sentiment" yaml:"sentiment"`

	// Volume24h is the 24h traded volume in base token units.
	Volume24h uint64 `json:"volume_24h" yaml:"volume_24h"`

	// LiquidityDepth is the aggregated order book depth score.
	LiquidityDepth uint64 `json:"liquidity_depth" yaml:"liquidity_depth"`

	// MovingAveragePrice is accepted and carried on telemetry but never
	// consulted by the formula. It is an informational pass-through kept
	// for record-shape compatibility, not dead input promoted to a
	// multiplier.
	MovingAveragePrice uint64 `json:"moving_average_price" yaml:"moving_average_price"`
}

// CycleResult is the bundle returned to the oracle after a committed
// dynamic burn cycle.
type CycleResult struct {
	Burned      uint64 `json:"burned"`
	TotalBurned uint64 `json:"total_burned"`
	Headroom    uint64 `json:"headroom"`
	Status      string `json:"status"`
	RecordID    uint64 `json:"record_id"`
	CycleToken  string `json:"cycle_token"`
}

// BurnReceipt is returned after a committed manual burn.
type BurnReceipt struct {
	RecordID    uint64 `json:"record_id"`
	Amount      uint64 `json:"amount"`
	TotalBurned uint64 `json:"total_burned"`
	Height      uint64 `json:"height"`
	CycleToken  string `json:"cycle_token"`
}

// Status is the read-only system snapshot exposed to operators.
type Status struct {
	Paused          bool   `json:"paused"`
	Owner           string `json:"owner"`
	Oracle          string `json:"oracle"`
	MaxBurnPerCycle uint64 `json:"max_burn_per_cycle"`
	TotalBurned     uint64 `json:"total_burned"`
	TotalCycles     uint64 `json:"total_cycles"`
}

// Engine is the single-writer burn policy orchestrator.
//
// All mutable state (config and totals) lives behind one mutex; every
// operation runs to completion under it. The owner identity is fixed at
// construction and never changes afterwards.
//
// INVARIANTS:
//   - owner never changes after New
//   - totals.TotalCycles equals the audit store's record count
//   - totals.TotalBurned equals the sum of recorded amounts
//   - a failed invocation leaves no state change behind
type Engine struct {
	mu sync.Mutex

	// Config. owner is immutable; the rest is owner-writable.
	owner           string
	oracle          string
	paused          bool
	maxBurnPerCycle uint64

	totals store.Totals
	tables tuning.Tables

	audit    *store.Store
	supply   ledger.Ledger
	heights  HeightSource
	emitter  Emitter
	tokenGen CycleTokenGenerator
	logger   *slog.Logger
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithOracle sets the initial oracle identity. Without it no caller can
// execute dynamic burn cycles until the owner calls SetOracle.
func WithOracle(oracle string) Option {
	return func(e *Engine) { e.oracle = oracle }
}

// WithPaused sets the initial pause flag (default: active).
func WithPaused(paused bool) Option {
	return func(e *Engine) { e.paused = paused }
}

// WithMaxBurnPerCycle sets the initial per-cycle ceiling.
func WithMaxBurnPerCycle(cap uint64) Option {
	return func(e *Engine) { e.maxBurnPerCycle = cap }
}

// WithTables replaces the default multiplier tables.
func WithTables(tables tuning.Tables) Option {
	return func(e *Engine) { e.tables = tables }
}

// WithHeightSource replaces the default logical clock.
func WithHeightSource(h HeightSource) Option {
	return func(e *Engine) { e.heights = h }
}

// WithEmitter sets the telemetry emitter (default: discard).
func WithEmitter(em Emitter) Option {
	return func(e *Engine) { e.emitter = em }
}

// WithCycleTokens replaces the UUIDv7 token generator.
// Tests use a FixedGenerator for deterministic traces.
func WithCycleTokens(g CycleTokenGenerator) Option {
	return func(e *Engine) { e.tokenGen = g }
}

// WithLogger sets the structured logger (default: discard).
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// New creates an Engine over the given audit store and token ledger.
//
// owner is the deploying identity and is immutable for the life of the
// engine. Totals are loaded from the audit store, so an engine reopened
// over an existing ledger resumes with consistent counters and the next
// record id follows densely from the last.
func New(audit *store.Store, supply ledger.Ledger, owner string, opts ...Option) (*Engine, error) {
	if owner == "" {
		return nil, errors.New("engine: owner identity required")
	}
	if audit == nil {
		return nil, errors.New("engine: audit store required")
	}
	if supply == nil {
		return nil, errors.New("engine: token ledger required")
	}

	tables, err := tuning.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("engine: load default tables: %w", err)
	}

	e := &Engine{
		owner:           owner,
		maxBurnPerCycle: DefaultMaxBurnPerCycle,
		tables:          tables,
		audit:           audit,
		supply:          supply,
		heights:         NewLogicalClock(),
		emitter:         NopEmitter{},
		tokenGen:        UUIDv7Generator{},
		logger:          slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}

	totals, err := audit.ReadTotals(context.Background())
	if err != nil {
		return nil, fmt.Errorf("engine: load totals: %w", err)
	}
	e.totals = totals

	return e, nil
}

// gate snapshots the authorization-relevant config.
// Must be called with e.mu held.
func (e *Engine) gate() AccessGate {
	return AccessGate{Owner: e.owner, Oracle: e.oracle, Paused: e.paused}
}

// SetOracle updates the oracle identity. Owner only; available while
// paused - pausing must never lock the owner out of rotating a
// compromised oracle.
func (e *Engine) SetOracle(ctx context.Context, caller, newOracle string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.gate().RequireOwner(OpSetOracle, caller); err != nil {
		return err
	}

	previous := e.oracle
	e.oracle = newOracle

	e.emitter.Emit(ctx, Event{
		Name: EventOracleUpdated,
		Fields: map[string]any{
			"caller":          caller,
			"previous_oracle": previous,
			"new_oracle":      newOracle,
		},
	})
	e.logger.Info("oracle updated", "caller", caller, "new_oracle", newOracle)
	return nil
}

// SetPaused toggles the global pause flag. Owner only. While paused both
// burn paths fail with Paused regardless of caller; administrative calls
// keep working.
func (e *Engine) SetPaused(ctx context.Context, caller string, paused bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.gate().RequireOwner(OpSetPaused, caller); err != nil {
		return err
	}

	e.paused = paused

	e.emitter.Emit(ctx, Event{
		Name: EventPauseToggled,
		Fields: map[string]any{
			"caller": caller,
			"paused": paused,
		},
	})
	e.logger.Info("pause flag updated", "caller", caller, "paused", paused)
	return nil
}

// SetMaxBurnCap updates the per-cycle ceiling. Owner only; available
// while paused. The next cycle reads the fresh value - there is no
// staleness window.
func (e *Engine) SetMaxBurnCap(ctx context.Context, caller string, cap uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.gate().RequireOwner(OpSetCap, caller); err != nil {
		return err
	}

	previous := e.maxBurnPerCycle
	e.maxBurnPerCycle = cap

	e.emitter.Emit(ctx, Event{
		Name: EventCapUpdated,
		Fields: map[string]any{
			"caller":       caller,
			"previous_cap": previous,
			"new_cap":      cap,
		},
	})
	e.logger.Info("burn cap updated", "caller", caller, "cap", cap)
	return nil
}

// ManualBurn destroys amount from the caller's own balance and records
// the burn with a zero-filled market snapshot.
//
// Order of effects: pause gate -> amount check -> external destroy ->
// totals advance + audit append (one store transaction) -> telemetry.
// A refused destroy aborts with no state change.
func (e *Engine) ManualBurn(ctx context.Context, caller string, amount uint64) (*BurnReceipt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.gate().RequireActive(OpManualBurn); err != nil {
		return nil, err
	}
	if amount == 0 {
		return nil, NewInvalidAmountError(OpManualBurn)
	}

	if err := e.destroy(ctx, OpManualBurn, caller, amount); err != nil {
		return nil, err
	}

	token := e.tokenGen.Generate()
	height := e.heights.CurrentHeight()
	id, err := e.commit(ctx, store.BurnRecord{
		Height:     height,
		Amount:     amount,
		Actor:      caller,
		Reason:     store.ReasonManualBurn,
		CycleToken: token,
	})
	if err != nil {
		return nil, err
	}

	e.emitter.Emit(ctx, Event{
		Name: EventManualBurn,
		Fields: map[string]any{
			"caller":       caller,
			"amount":       amount,
			"record_id":    id,
			"height":       height,
			"total_burned": e.totals.TotalBurned,
			"cycle_token":  token,
		},
	})
	e.logger.Info("manual burn committed",
		"caller", caller, "amount", amount, "record_id", id)

	return &BurnReceipt{
		RecordID:    id,
		Amount:      amount,
		TotalBurned: e.totals.TotalBurned,
		Height:      height,
		CycleToken:  token,
	}, nil
}

// ExecuteDynamicBurnCycle runs one formula-driven burn cycle.
//
// Preconditions in order: active, caller is the oracle. The computed
// amount is validated against the current cap, destroyed from the
// oracle's balance, recorded with the market snapshot, and reported via
// telemetry carrying the raw inputs, all three resolved multipliers, and
// the final amount - off-chain reconciliation needs the multipliers
// themselves, not just the result.
func (e *Engine) ExecuteDynamicBurnCycle(ctx context.Context, caller string, in MarketInputs) (*CycleResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	gate := e.gate()
	if err := gate.RequireActive(OpDynamicBurn); err != nil {
		return nil, err
	}
	if err := gate.RequireOracle(OpDynamicBurn, caller); err != nil {
		return nil, err
	}

	bd := ComputeBurn(e.tables, in.Volatility, in.Sentiment, in.Volume24h, in.LiquidityDepth)

	cap := SafetyCap{Max: e.maxBurnPerCycle}
	if err := cap.Validate(OpDynamicBurn, bd.Amount); err != nil {
		return nil, err
	}

	if err := e.destroy(ctx, OpDynamicBurn, caller, bd.Amount); err != nil {
		return nil, err
	}

	token := e.tokenGen.Generate()
	height := e.heights.CurrentHeight()
	id, err := e.commit(ctx, store.BurnRecord{
		Height:     height,
		Amount:     bd.Amount,
		Actor:      caller,
		Reason:     store.ReasonDynamicBurn,
		Volatility: in.Volatility,
		Sentiment:  in.Sentiment,
		Liquidity:  in.LiquidityDepth,
		CycleToken: token,
	})
	if err != nil {
		return nil, err
	}

	e.emitter.Emit(ctx, Event{
		Name: EventDynamicBurn,
		Fields: map[string]any{
			"caller":               caller,
			"volatility":           in.Volatility,
			"sentiment":            in.Sentiment,
			"volume_24h":           in.Volume24h,
			"liquidity_depth":      in.LiquidityDepth,
			"moving_average_price": in.MovingAveragePrice,
			"base":                 bd.Base,
			"volatility_mult":      bd.VolatilityMult,
			"sentiment_factor":     bd.SentimentFactor,
			"liquidity_dampener":   bd.LiquidityDampener,
			"amount":               bd.Amount,
			"record_id":            id,
			"height":               height,
			"total_burned":         e.totals.TotalBurned,
			"cycle_token":          token,
		},
	})
	e.logger.Info("dynamic burn cycle committed",
		"caller", caller, "amount", bd.Amount, "record_id", id,
		"volatility_mult", bd.VolatilityMult,
		"sentiment_factor", bd.SentimentFactor,
		"liquidity_dampener", bd.LiquidityDampener)

	return &CycleResult{
		Burned:      bd.Amount,
		TotalBurned: e.totals.TotalBurned,
		Headroom:    cap.Headroom(bd.Amount),
		Status:      CycleStatusExecuted,
		RecordID:    id,
		CycleToken:  token,
	}, nil
}

// destroy calls the external token ledger and maps a balance refusal to
// the matching PolicyError. Must be called with e.mu held.
func (e *Engine) destroy(ctx context.Context, op, caller string, amount uint64) error {
	err := e.supply.Destroy(ctx, amount, caller)
	if err == nil {
		return nil
	}
	var ib *ledger.InsufficientBalanceError
	if errors.As(err, &ib) {
		return NewInsufficientBalanceError(op, caller, ib)
	}
	return fmt.Errorf("%s: token destroy: %w", op, err)
}

// commit appends the record and advances the in-memory totals from the
// store's answer. The store performs the totals advance and the insert
// in one transaction, so persisted state cannot diverge even if this
// process dies mid-call. Must be called with e.mu held.
func (e *Engine) commit(ctx context.Context, rec store.BurnRecord) (uint64, error) {
	id, err := e.audit.AppendBurn(ctx, rec)
	if err != nil {
		// The destroy already happened; an append failure means the audit
		// database itself is broken. Surface it loudly - operators must
		// reconcile from the token ledger before resuming.
		e.logger.Error("audit append failed after destroy",
			"amount", rec.Amount, "actor", rec.Actor, "error", err)
		return 0, fmt.Errorf("audit append: %w", err)
	}
	e.totals.TotalCycles = id
	e.totals.TotalBurned += rec.Amount
	return id, nil
}

// TotalBurned returns the cumulative burned amount.
func (e *Engine) TotalBurned() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.totals.TotalBurned
}

// BurnHistory returns the ledger record with the given id, or nil if the
// id was never assigned.
func (e *Engine) BurnHistory(ctx context.Context, id uint64) (*store.BurnRecord, error) {
	return e.audit.GetBurn(ctx, id)
}

// SystemStatus returns a consistent snapshot of config and totals.
func (e *Engine) SystemStatus() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Status{
		Paused:          e.paused,
		Owner:           e.owner,
		Oracle:          e.oracle,
		MaxBurnPerCycle: e.maxBurnPerCycle,
		TotalBurned:     e.totals.TotalBurned,
		TotalCycles:     e.totals.TotalCycles,
	}
}
