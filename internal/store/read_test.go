package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRecords(t *testing.T, s *Store, n int) {
	t.Helper()
	ctx := context.Background()
	for i := 1; i <= n; i++ {
		_, err := s.AppendBurn(ctx, BurnRecord{
			Height: uint64(i), Amount: uint64(i * 10), Actor: "alice",
			Reason: ReasonManualBurn, CycleToken: "tok",
		})
		require.NoError(t, err)
	}
}

func TestGetBurn_Missing(t *testing.T) {
	s := openTestStore(t)

	rec, err := s.GetBurn(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestReadHistory_All(t *testing.T) {
	s := openTestStore(t)
	seedRecords(t, s, 4)

	records, err := s.ReadHistory(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Len(t, records, 4)
	for i, rec := range records {
		assert.Equal(t, uint64(i+1), rec.ID, "ascending id order")
	}
}

func TestReadHistory_Window(t *testing.T) {
	s := openTestStore(t)
	seedRecords(t, s, 10)

	records, err := s.ReadHistory(context.Background(), 4, 3)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, uint64(4), records[0].ID)
	assert.Equal(t, uint64(6), records[2].ID)
}

func TestReadHistory_EmptyIsNotNil(t *testing.T) {
	s := openTestStore(t)

	records, err := s.ReadHistory(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}
