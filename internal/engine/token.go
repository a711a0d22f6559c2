package engine

import (
	"sync"

	"github.com/google/uuid"
)

// CycleTokenGenerator generates unique correlation tokens for mutating
// operations. The token ties together the telemetry event, the audit
// record, and the caller's response for one invocation.
// Implemented by UUIDv7Generator (production) and FixedGenerator (tests).
type CycleTokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 cycle tokens.
//
// UUIDv7 embeds a timestamp in the most significant bits, making tokens
// sortable by creation time - helpful when correlating telemetry with
// ledger history.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined cycle tokens for testing.
//
// This enables deterministic test execution and golden trace comparison:
// tests provide a known sequence of tokens and assert exact output.
//
// Thread-safety: FixedGenerator is safe for concurrent use via internal
// mutex.
type FixedGenerator struct {
	mu     sync.Mutex
	tokens []string
	idx    int
}

// NewFixedGenerator creates a generator that returns tokens in order.
func NewFixedGenerator(tokens ...string) *FixedGenerator {
	return &FixedGenerator{tokens: tokens}
}

// Generate returns the next predetermined token.
//
// Panics if all tokens have been consumed. This is a fail-fast approach
// to catch test misconfiguration (test triggered more mutations than
// expected).
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.tokens) {
		panic("FixedGenerator: all tokens exhausted")
	}
	token := g.tokens[g.idx]
	g.idx++
	return token
}
