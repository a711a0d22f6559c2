package tuning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultTables(t *testing.T) Tables {
	t.Helper()
	tables, err := LoadDefault()
	require.NoError(t, err)
	return tables
}

// TestLookup_VolatilityBoundaries pins the inclusive/exclusive boundary
// semantics: 40 and 75 close their tiers, 76 opens the turbulent tier.
func TestLookup_VolatilityBoundaries(t *testing.T) {
	table := defaultTables(t).Volatility

	tests := []struct {
		volatility uint64
		want       uint64
	}{
		{0, 100},
		{40, 100},
		{41, 150},
		{75, 150},
		{76, 200},
		{100, 200},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, table.Lookup(tt.volatility), "volatility=%d", tt.volatility)
	}
}

// TestLookup_SentimentBoundaries: neutral is 40..60 inclusive both ends.
func TestLookup_SentimentBoundaries(t *testing.T) {
	table := defaultTables(t).Sentiment

	tests := []struct {
		sentiment uint64
		want      uint64
	}{
		{0, 120},
		{39, 120},
		{40, 100},
		{60, 100},
		{61, 90},
		{100, 90},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, table.Lookup(tt.sentiment), "sentiment=%d", tt.sentiment)
	}
}

// TestLookup_LiquidityBoundaries: 200 is the exclusive low-liquidity
// threshold - exactly 200 is not dampened.
func TestLookup_LiquidityBoundaries(t *testing.T) {
	table := defaultTables(t).Liquidity

	assert.Equal(t, uint64(50), table.Lookup(0))
	assert.Equal(t, uint64(50), table.Lookup(199))
	assert.Equal(t, uint64(100), table.Lookup(200))
	assert.Equal(t, uint64(100), table.Lookup(1_000_000))
}

func TestLookup_EmptyTableFallsThrough(t *testing.T) {
	table := Table{Name: "flat", Above: 100}
	assert.Equal(t, uint64(100), table.Lookup(0))
	assert.Equal(t, uint64(100), table.Lookup(^uint64(0)))
}

func TestTableValidate(t *testing.T) {
	tests := []struct {
		name    string
		table   Table
		wantErr string
	}{
		{
			name:  "valid",
			table: Table{Name: "t", Tiers: []Tier{{UpTo: 10, Factor: 50}, {UpTo: 20, Factor: 100}}, Above: 200},
		},
		{
			name:    "zero above factor",
			table:   Table{Name: "t", Above: 0},
			wantErr: "above factor must be positive",
		},
		{
			name:    "zero tier factor",
			table:   Table{Name: "t", Tiers: []Tier{{UpTo: 10, Factor: 0}}, Above: 100},
			wantErr: "factor must be positive",
		},
		{
			name:    "non-increasing bounds",
			table:   Table{Name: "t", Tiers: []Tier{{UpTo: 20, Factor: 50}, {UpTo: 20, Factor: 60}}, Above: 100},
			wantErr: "not above previous bound",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
