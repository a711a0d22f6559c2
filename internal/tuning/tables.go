// Package tuning holds the burn formula's tiered multiplier tables.
//
// The volatility, sentiment, and liquidity lookups are ordered
// range-to-value tables rather than nested conditionals: each tier maps an
// inclusive upper bound to a x100-scaled factor, and values above the last
// bound resolve to the table's `above` factor. Tables are expressed in CUE
// and schema-validated on load, so the policy can be re-tuned without
// touching the engine.
package tuning

import "fmt"

// Tier maps an inclusive upper bound to a x100-scaled factor.
// An input v resolves to the first tier with v <= UpTo.
type Tier struct {
	UpTo   uint64 `json:"up_to"`
	Factor uint64 `json:"factor"`
}

// Table is an ordered tier table with a factor for values above the last
// bound. Tiers must be sorted by strictly increasing UpTo.
type Table struct {
	Name  string `json:"-"`
	Tiers []Tier `json:"tiers"`
	Above uint64 `json:"above"`
}

// Lookup resolves v to its x100-scaled factor.
//
// The first tier whose inclusive upper bound covers v wins; v beyond every
// tier resolves to Above. Lookup is pure and total.
func (t Table) Lookup(v uint64) uint64 {
	for _, tier := range t.Tiers {
		if v <= tier.UpTo {
			return tier.Factor
		}
	}
	return t.Above
}

// Validate checks structural soundness of the table: strictly increasing
// bounds and strictly positive factors.
func (t Table) Validate() error {
	if t.Above == 0 {
		return fmt.Errorf("table %s: above factor must be positive", t.Name)
	}
	var prev uint64
	for i, tier := range t.Tiers {
		if tier.Factor == 0 {
			return fmt.Errorf("table %s: tier %d factor must be positive", t.Name, i)
		}
		if i > 0 && tier.UpTo <= prev {
			return fmt.Errorf("table %s: tier %d bound %d not above previous bound %d",
				t.Name, i, tier.UpTo, prev)
		}
		prev = tier.UpTo
	}
	return nil
}

// Tables bundles the three multiplier tables consumed by the burn formula.
type Tables struct {
	Volatility Table `json:"volatility"`
	Sentiment  Table `json:"sentiment"`
	Liquidity  Table `json:"liquidity"`
}

// Validate checks every table in the bundle.
func (t Tables) Validate() error {
	for _, table := range []Table{t.Volatility, t.Sentiment, t.Liquidity} {
		if err := table.Validate(); err != nil {
			return err
		}
	}
	return nil
}
