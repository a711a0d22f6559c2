// Package engine implements the ember dynamic burn engine.
//
// The engine is the heart of ember - it converts a small vector of
// market-condition scalars into a bounded token-destruction amount, gated
// by role-based authorization and a global pause flag, with every
// execution permanently recorded in an append-only audit ledger.
//
// ARCHITECTURE:
//
// Single-Writer State Machine:
// Each invocation runs to completion under one mutex guarding the whole
// mutable state set (config, totals). This ensures:
// - Dense, gap-free audit record ids
// - totalBurned always equals the sum of recorded amounts
// - No interleaving between configuration reads and burn commits
//
// Burn Pipeline:
// 1. AccessGate checks caller identity and the pause flag
// 2. The formula computes the amount from tiered multiplier tables
// 3. SafetyCap validates the amount against the configured ceiling
// 4. The external token ledger destroys the amount (atomic, may refuse)
// 5. Totals are advanced and the audit store appends the record
// 6. A telemetry event is emitted for off-chain observers
//
// Steps 5-6 run only if step 4 succeeds. A failed destroy aborts the
// invocation with no state change (checks-effects-interactions).
//
// CRITICAL PATTERNS:
//
// Typed Failures:
// Every precondition failure is a PolicyError with a stable code
// (NOT_AUTHORIZED, PAUSED, INVALID_AMOUNT, CAP_EXCEEDED,
// INSUFFICIENT_BALANCE). No generic/opaque failure mode exists for
// these cases; callers branch on codes, never on message text.
//
// Deterministic Arithmetic:
// The formula is pure integer math. Intermediate products are computed
// in 256-bit width (github.com/holiman/uint256) so the full uint64 input
// domain cannot overflow, and every division truncates toward zero - a
// deliberate conservative bias against over-burning.
package engine
