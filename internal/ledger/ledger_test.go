package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemory_Destroy(t *testing.T) {
	l := NewInMemory(map[string]uint64{"alice": 1000, "bob": 500})
	ctx := context.Background()

	require.NoError(t, l.Destroy(ctx, 300, "alice"))
	assert.Equal(t, uint64(700), l.BalanceOf("alice"))
	assert.Equal(t, uint64(500), l.BalanceOf("bob"))
	assert.Equal(t, uint64(1200), l.TotalSupply())
}

func TestInMemory_DestroyExactBalance(t *testing.T) {
	l := NewInMemory(map[string]uint64{"alice": 1000})

	require.NoError(t, l.Destroy(context.Background(), 1000, "alice"))
	assert.Equal(t, uint64(0), l.BalanceOf("alice"))
	assert.Equal(t, uint64(0), l.TotalSupply())
}

func TestInMemory_DestroyInsufficient(t *testing.T) {
	l := NewInMemory(map[string]uint64{"alice": 100})

	err := l.Destroy(context.Background(), 101, "alice")
	require.Error(t, err)

	var ib *InsufficientBalanceError
	require.ErrorAs(t, err, &ib)
	assert.Equal(t, "alice", ib.Account)
	assert.Equal(t, uint64(100), ib.Balance)
	assert.Equal(t, uint64(101), ib.Requested)

	// No partial state change on refusal.
	assert.Equal(t, uint64(100), l.BalanceOf("alice"))
	assert.Equal(t, uint64(100), l.TotalSupply())
}

func TestInMemory_UnknownAccount(t *testing.T) {
	l := NewInMemory(map[string]uint64{"alice": 100})

	assert.Equal(t, uint64(0), l.BalanceOf("nobody"))

	err := l.Destroy(context.Background(), 1, "nobody")
	var ib *InsufficientBalanceError
	require.ErrorAs(t, err, &ib)
	assert.Equal(t, uint64(0), ib.Balance)
}

func TestNewInMemory_CopiesSeedMap(t *testing.T) {
	seed := map[string]uint64{"alice": 100}
	l := NewInMemory(seed)

	seed["alice"] = 999_999
	assert.Equal(t, uint64(100), l.BalanceOf("alice"))
}

func TestInsufficientBalanceError_Message(t *testing.T) {
	err := &InsufficientBalanceError{Account: "alice", Balance: 5, Requested: 10}
	assert.Contains(t, err.Error(), "alice")
	assert.Contains(t, err.Error(), "5 < 10")
}
