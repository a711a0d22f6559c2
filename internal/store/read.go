package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetBurn returns the burn record with the given id, or nil if no such
// record exists. Pure lookup - never mutates.
func (s *Store) GetBurn(ctx context.Context, id uint64) (*BurnRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, height, amount, actor, reason, volatility, sentiment, liquidity, cycle_token
		FROM burn_records
		WHERE id = ?
	`, int64(id))

	rec, err := scanBurnRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get burn %d: %w", id, err)
	}
	return &rec, nil
}

// ReadHistory returns up to limit burn records starting at fromID, in
// ascending id order. A limit of 0 means no limit.
//
// Returns an empty slice (not nil) when no records match.
func (s *Store) ReadHistory(ctx context.Context, fromID uint64, limit int) ([]BurnRecord, error) {
	query := `
		SELECT id, height, amount, actor, reason, volatility, sentiment, liquidity, cycle_token
		FROM burn_records
		WHERE id >= ?
		ORDER BY id ASC
	`
	args := []any{int64(fromID)}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	defer rows.Close()

	records := []BurnRecord{}
	for rows.Next() {
		rec, err := scanBurnRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("read history: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read history: iterate: %w", err)
	}

	return records, nil
}

// ReadTotals returns the singleton totals row.
func (s *Store) ReadTotals(ctx context.Context) (Totals, error) {
	var burned, cycles int64
	err := s.db.QueryRowContext(ctx, `
		SELECT total_burned, total_cycles FROM totals WHERE id = 1
	`).Scan(&burned, &cycles)
	if err != nil {
		return Totals{}, fmt.Errorf("read totals: %w", err)
	}
	return Totals{TotalBurned: uint64(burned), TotalCycles: uint64(cycles)}, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBurnRecord(row rowScanner) (BurnRecord, error) {
	var (
		rec                                               BurnRecord
		id, height, amount, volatility, sentiment, liquid int64
	)
	err := row.Scan(&id, &height, &amount, &rec.Actor, &rec.Reason,
		&volatility, &sentiment, &liquid, &rec.CycleToken)
	if err != nil {
		return BurnRecord{}, err
	}
	rec.ID = uint64(id)
	rec.Height = uint64(height)
	rec.Amount = uint64(amount)
	rec.Volatility = uint64(volatility)
	rec.Sentiment = uint64(sentiment)
	rec.Liquidity = uint64(liquid)
	return rec, nil
}
