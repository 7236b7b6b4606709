package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// LoadBaseline returns the stored drift histogram for name, or (nil, false)
// if none has been saved yet.
func (s *Store) LoadBaseline(ctx context.Context, name string) ([]float64, bool, error) {
	var histJSON string
	err := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT hist FROM worker_drift_baseline WHERE name = ?`,
	), name).Scan(&histJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load baseline: %w", err)
	}
	var hist []float64
	if err := json.Unmarshal([]byte(histJSON), &hist); err != nil {
		return nil, false, fmt.Errorf("load baseline: parse hist: %w", err)
	}
	return hist, true, nil
}

// SaveBaseline inserts or replaces the stored drift histogram for name.
func (s *Store) SaveBaseline(ctx context.Context, name string, hist []float64) error {
	histJSON, err := json.Marshal(hist)
	if err != nil {
		return fmt.Errorf("save baseline: encode hist: %w", err)
	}
	_, err = s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO worker_drift_baseline (name, hist) VALUES (?, ?)
		ON CONFLICT (name) DO UPDATE SET hist = excluded.hist
	`), name, string(histJSON))
	if err != nil {
		return fmt.Errorf("save baseline: %w", err)
	}
	return nil
}
