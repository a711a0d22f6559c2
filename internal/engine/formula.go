package engine

import (
	"github.com/holiman/uint256"

	"github.com/roach88/ember/internal/tuning"
)

// Formula constants. The base rate is expressed in basis points of 24h
// volume; the three multiplier tables are x100-scaled, so the final
// product is divided by 100^3.
const (
	// BaseRateBps is the base burn rate: 5 bps = 0.05% of 24h volume.
	BaseRateBps = 5

	// bpsDenominator converts basis points to a fraction.
	bpsDenominator = 10_000

	// factorDenominator collapses the three x100-scaled factors.
	factorDenominator = 1_000_000
)

// Breakdown is the full decomposition of one formula evaluation.
//
// The resolved multipliers - not just the final amount - are carried on
// telemetry so off-chain reconciliation can re-derive every burn.
type Breakdown struct {
	Base              uint64 `json:"base"`
	VolatilityMult    uint64 `json:"volatility_mult"`
	SentimentFactor   uint64 `json:"sentiment_factor"`
	LiquidityDampener uint64 `json:"liquidity_dampener"`
	Amount            uint64 `json:"amount"`
}

// ComputeBurn evaluates the burn formula:
//
//	base  = floor(volume24h * 5 / 10000)
//	final = floor(base * volMult * sentFactor * liqDampener / 1_000_000)
//
// The function is pure and total: same inputs always produce the same
// breakdown, there is no error path, and the amount may be 0 (which the
// SafetyCap rejects before commit).
//
// All intermediate products run in 256-bit width, so the full uint64
// input domain cannot overflow. Every division truncates toward zero;
// rounding always favors burning less. With the default tables the final
// amount always fits in uint64 (at most volume24h * 5/10000 * 2.4); a
// retuned policy extreme enough to exceed uint64 saturates at MaxUint64
// and is then rejected by any sane cap.
func ComputeBurn(tables tuning.Tables, volatility, sentiment, volume24h, liquidityDepth uint64) Breakdown {
	bd := Breakdown{
		VolatilityMult:    tables.Volatility.Lookup(volatility),
		SentimentFactor:   tables.Sentiment.Lookup(sentiment),
		LiquidityDampener: tables.Liquidity.Lookup(liquidityDepth),
	}

	// base = volume24h * 5 / 10000, wide to survive the *5.
	base := new(uint256.Int).SetUint64(volume24h)
	base.Mul(base, uint256.NewInt(BaseRateBps))
	base.Div(base, uint256.NewInt(bpsDenominator))
	bd.Base = base.Uint64()

	final := new(uint256.Int).Set(base)
	final.Mul(final, uint256.NewInt(bd.VolatilityMult))
	final.Mul(final, uint256.NewInt(bd.SentimentFactor))
	final.Mul(final, uint256.NewInt(bd.LiquidityDampener))
	final.Div(final, uint256.NewInt(factorDenominator))
	if final.IsUint64() {
		bd.Amount = final.Uint64()
	} else {
		bd.Amount = ^uint64(0)
	}

	return bd
}
