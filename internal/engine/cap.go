package engine

// SafetyCap validates a computed burn amount against the per-cycle
// ceiling before any token destruction happens.
//
// The cap is a snapshot of maxBurnPerCycle taken under the engine mutex
// at call time - the owner may retune it between cycles and the next
// cycle sees the fresh value, with no staleness window.
//
// Two rejections exist, both terminal for the invocation:
//   - a zero amount (the formula may legitimately produce 0, e.g. for a
//     zero 24h volume; committing a zero-amount record is never allowed)
//   - an amount above the ceiling
type SafetyCap struct {
	Max uint64
}

// Validate gates an amount. Never mutates; purely a check before commit.
func (c SafetyCap) Validate(op string, amount uint64) error {
	if amount == 0 {
		return NewInvalidAmountError(op)
	}
	if amount > c.Max {
		return NewCapExceededError(op, amount, c.Max)
	}
	return nil
}

// Headroom returns cap - amount, saturating at zero. Reported back to the
// oracle after each cycle so it can see how close the policy runs to the
// ceiling.
func (c SafetyCap) Headroom(amount uint64) uint64 {
	if amount >= c.Max {
		return 0
	}
	return c.Max - amount
}
