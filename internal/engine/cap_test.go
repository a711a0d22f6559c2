package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafetyCap_Validate(t *testing.T) {
	cap := SafetyCap{Max: 1000}

	tests := []struct {
		name   string
		amount uint64
		check  func(error) bool
	}{
		{"zero amount", 0, IsInvalidAmount},
		{"within cap", 500, nil},
		{"exactly at cap", 1000, nil},
		{"one over cap", 1001, IsCapExceeded},
		{"far over cap", ^uint64(0), IsCapExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cap.Validate(OpDynamicBurn, tt.amount)
			if tt.check == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, tt.check(err))
		})
	}
}

func TestSafetyCap_ValidateZeroBeatsCapCheck(t *testing.T) {
	// With a zero cap a zero amount is still InvalidAmount, not CapExceeded.
	cap := SafetyCap{Max: 0}
	err := cap.Validate(OpDynamicBurn, 0)
	require.Error(t, err)
	assert.True(t, IsInvalidAmount(err))
}

func TestSafetyCap_Headroom(t *testing.T) {
	cap := SafetyCap{Max: 1000}

	assert.Equal(t, uint64(1000), cap.Headroom(0))
	assert.Equal(t, uint64(400), cap.Headroom(600))
	assert.Equal(t, uint64(0), cap.Headroom(1000))
	assert.Equal(t, uint64(0), cap.Headroom(5000), "saturates instead of wrapping")
}
