package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeterministicHeights_Sequence(t *testing.T) {
	h := NewDeterministicHeights()

	assert.Equal(t, uint64(0), h.Current())
	assert.Equal(t, uint64(1), h.CurrentHeight())
	assert.Equal(t, uint64(2), h.CurrentHeight())
	assert.Equal(t, uint64(3), h.CurrentHeight())
	assert.Equal(t, uint64(3), h.Current())
}

func TestDeterministicHeights_Reset(t *testing.T) {
	h := NewDeterministicHeights()
	h.CurrentHeight()
	h.CurrentHeight()

	h.Reset()
	assert.Equal(t, uint64(0), h.Current())
	assert.Equal(t, uint64(1), h.CurrentHeight())
}
