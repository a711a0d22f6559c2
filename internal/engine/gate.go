package engine

// AccessGate evaluates caller identity against the two configured roles
// and the global pause flag.
//
// A gate is a point-in-time snapshot of the authorization-relevant config:
// the engine builds one per operation under its mutex, so every
// precondition in a single invocation sees one consistent view. The
// queries are pure; the Require helpers turn a failed query into the
// matching typed PolicyError, never a silent no-op.
type AccessGate struct {
	Owner  string
	Oracle string
	Paused bool
}

// IsOwner reports whether caller is the configured owner.
func (g AccessGate) IsOwner(caller string) bool {
	return caller != "" && caller == g.Owner
}

// IsOracle reports whether caller is the configured oracle.
//
// The owner holds no implicit oracle privilege: with no oracle configured
// nobody passes, the owner included.
func (g AccessGate) IsOracle(caller string) bool {
	return caller != "" && caller == g.Oracle
}

// IsActive reports whether the engine accepts burn operations.
func (g AccessGate) IsActive() bool {
	return !g.Paused
}

// RequireActive returns a Paused error unless the engine is active.
func (g AccessGate) RequireActive(op string) error {
	if !g.IsActive() {
		return NewPausedError(op)
	}
	return nil
}

// RequireOwner returns a NotAuthorized error unless caller is the owner.
func (g AccessGate) RequireOwner(op, caller string) error {
	if !g.IsOwner(caller) {
		return NewNotAuthorizedError(op, caller, "owner")
	}
	return nil
}

// RequireOracle returns a NotAuthorized error unless caller is the oracle.
func (g AccessGate) RequireOracle(op, caller string) error {
	if !g.IsOracle(caller) {
		return NewNotAuthorizedError(op, caller, "oracle")
	}
	return nil
}
