// Package harness runs conformance scenarios against a real burn engine.
//
// A scenario is a YAML document: an engine configuration plus an ordered
// list of operations with expected outcomes. The harness executes the
// scenario against a fresh engine over a temporary SQLite audit store,
// with deterministic heights and fixed cycle tokens, and produces a
// trace of every operation and its outcome.
//
// Traces are compared two ways:
//   - per-step expect clauses (outcome code, committed amount, totals)
//   - golden files (testdata/golden/{name}.golden) via goldie, asserting
//     the byte-exact canonical trace
//
// Determinism is the point: the same scenario always produces the same
// trace, so goldens double as a regression net over the whole pipeline -
// gate, formula, cap, ledger, and totals.
package harness
