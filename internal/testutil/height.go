package testutil

import "sync"

// DeterministicHeights provides a thread-safe monotonic height source
// for tests.
//
// Unlike engine.LogicalClock, DeterministicHeights can be reset for test
// reuse. This enables the same scenario to run multiple times with
// identical record heights.
//
// Thread-safety: All methods are safe for concurrent use via internal
// mutex.
type DeterministicHeights struct {
	mu     sync.Mutex
	height uint64
}

// NewDeterministicHeights creates a height source starting at 0.
//
// The first call to CurrentHeight() returns 1.
func NewDeterministicHeights() *DeterministicHeights {
	return &DeterministicHeights{}
}

// CurrentHeight increments and returns the next height.
// Implements engine.HeightSource.
func (h *DeterministicHeights) CurrentHeight() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.height++
	return h.height
}

// Current returns the current height without advancing.
func (h *DeterministicHeights) Current() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.height
}

// Reset resets the source to 0.
//
// Used for test reuse. After Reset(), the next CurrentHeight() returns 1.
func (h *DeterministicHeights) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.height = 0
}
