// Package store provides SQLite-backed durable storage for the burn
// audit ledger.
//
// The store implements an append-only record log with:
//   - Burn Records: one immutable row per successful burn, keyed by a
//     dense, strictly increasing id starting at 1
//   - Totals: a singleton row carrying total_burned and total_cycles
//
// # Critical Patterns
//
// Atomic Append:
//   - The totals advance and the record insert happen in one transaction,
//     with id assigned from total_cycles. The persisted ledger can never
//     show a gap, a reused id, or totals that disagree with the records.
//
// Append-Only:
//   - No UPDATE or DELETE path exists for burn_records. Once written, a
//     record is the permanent historical account of that burn.
//
// Verifiable:
//   - Verify replays the whole ledger and re-derives the invariants
//     (dense ids, totals reconciliation, positive amounts, non-decreasing
//     heights) so operators can audit a database file offline.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
