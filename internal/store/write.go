package store

import (
	"context"
	"fmt"
)

// AppendBurn appends a burn record to the ledger and returns its id.
//
// The append is atomic: inside one transaction the totals row advances
// (total_cycles += 1, total_burned += amount) and the record is inserted
// with id = new total_cycles. Ids are therefore dense, strictly
// increasing integers starting at 1 - never reused, never skipped - and
// total_burned always equals the sum of recorded amounts.
//
// The record's ID field is ignored on input; the assigned id is returned.
// Records with a zero amount are rejected by the schema CHECK constraint;
// the engine validates the amount before calling.
func (s *Store) AppendBurn(ctx context.Context, rec BurnRecord) (uint64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("append burn: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var id int64
	err = tx.QueryRowContext(ctx, `
		UPDATE totals
		SET total_cycles = total_cycles + 1,
		    total_burned = total_burned + ?
		WHERE id = 1
		RETURNING total_cycles
	`, int64(rec.Amount)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("append burn: advance totals: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO burn_records
		(id, height, amount, actor, reason, volatility, sentiment, liquidity, cycle_token)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		id,
		int64(rec.Height),
		int64(rec.Amount),
		rec.Actor,
		rec.Reason,
		int64(rec.Volatility),
		int64(rec.Sentiment),
		int64(rec.Liquidity),
		rec.CycleToken,
	)
	if err != nil {
		return 0, fmt.Errorf("append burn: insert record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("append burn: commit: %w", err)
	}

	return uint64(id), nil
}
