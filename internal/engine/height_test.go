package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogicalClock_Advances(t *testing.T) {
	clock := NewLogicalClock()

	assert.Equal(t, uint64(0), clock.Current())
	assert.Equal(t, uint64(1), clock.CurrentHeight())
	assert.Equal(t, uint64(2), clock.CurrentHeight())
	assert.Equal(t, uint64(2), clock.Current())
}

func TestLogicalClock_ResumesAboveStart(t *testing.T) {
	clock := NewLogicalClockAt(41)

	assert.Equal(t, uint64(41), clock.Current())
	assert.Equal(t, uint64(42), clock.CurrentHeight())
}

func TestLogicalClock_ConcurrentUniqueness(t *testing.T) {
	clock := NewLogicalClock()

	const goroutines = 16
	const perGoroutine = 100

	var (
		mu   sync.Mutex
		seen = make(map[uint64]bool)
		wg   sync.WaitGroup
	)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				h := clock.CurrentHeight()
				mu.Lock()
				assert.False(t, seen[h], "height %d issued twice", h)
				seen[h] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, goroutines*perGoroutine)
	assert.Equal(t, uint64(goroutines*perGoroutine), clock.Current())
}
