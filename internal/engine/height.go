package engine

import "sync/atomic"

// HeightSource provides the chain/sequence marker stamped on burn
// records. Heights must be monotonically non-decreasing across calls;
// the engine uses them only as record timestamps, never for ordering
// decisions.
type HeightSource interface {
	CurrentHeight() uint64
}

// LogicalClock is a monotonic in-process height source.
//
// Each observation advances the clock by one, so two burns committed by
// the same process never share a height. Standalone deployments without
// a real chain use this; chain-backed deployments implement HeightSource
// against their block height instead.
//
// Thread-safety: LogicalClock is safe for concurrent use (atomic
// operations). The engine's single-writer design means only one
// goroutine typically calls CurrentHeight().
type LogicalClock struct {
	seq atomic.Uint64
}

// NewLogicalClock creates a clock starting at 0.
func NewLogicalClock() *LogicalClock {
	return &LogicalClock{}
}

// NewLogicalClockAt creates a clock starting at a specific height.
// Used to resume above the last persisted record height after restart.
func NewLogicalClockAt(start uint64) *LogicalClock {
	c := &LogicalClock{}
	c.seq.Store(start)
	return c
}

// CurrentHeight returns the next height and advances the clock.
// Calls are linearizable - each call returns a unique, increasing value.
func (c *LogicalClock) CurrentHeight() uint64 {
	return c.seq.Add(1)
}

// Current returns the clock position without advancing it.
func (c *LogicalClock) Current() uint64 {
	return c.seq.Load()
}
