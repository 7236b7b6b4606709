package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// CacheLookup returns the cached phoneme sequence for a (childID, word)
// pair, or (nil, false) on a cache miss.
func (s *Store) CacheLookup(ctx context.Context, childID, word string) ([]string, bool, error) {
	var phonemesJSON string
	err := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT phonemes FROM child_g2p_cache WHERE child_id = ? AND word = ?`,
	), childID, strings.ToLower(word)).Scan(&phonemesJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache lookup: %w", err)
	}
	var phonemes []string
	if err := json.Unmarshal([]byte(phonemesJSON), &phonemes); err != nil {
		return nil, false, fmt.Errorf("cache lookup: parse phonemes: %w", err)
	}
	return phonemes, true, nil
}

// CacheStore writes a (childID, word) -> phonemes entry, overwriting any
// existing entry for the same pair.
func (s *Store) CacheStore(ctx context.Context, childID, word string, phonemes []string) error {
	phonemesJSON, err := json.Marshal(phonemes)
	if err != nil {
		return fmt.Errorf("cache store: encode phonemes: %w", err)
	}
	_, err = s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO child_g2p_cache (child_id, word, phonemes) VALUES (?, ?, ?)
		ON CONFLICT (child_id, word) DO UPDATE SET phonemes = excluded.phonemes
	`), childID, strings.ToLower(word), string(phonemesJSON))
	if err != nil {
		return fmt.Errorf("cache store: %w", err)
	}
	return nil
}
