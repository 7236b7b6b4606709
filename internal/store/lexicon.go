package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// FetchChildLexicon reads a child's child_lexicon row. It returns
// (nil, nil) if no row exists — read-only from the core's perspective; the
// core never creates or migrates this table.
func (s *Store) FetchChildLexicon(ctx context.Context, childID string) (*ChildLexiconRow, error) {
	var phonemesJSON, wordsJSON sql.NullString
	err := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT phonemes, words FROM child_lexicon WHERE child_id = ?`,
	), childID).Scan(&phonemesJSON, &wordsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch child lexicon: %w", err)
	}

	row := &ChildLexiconRow{ChildID: childID}
	if phonemesJSON.Valid && phonemesJSON.String != "" {
		if err := json.Unmarshal([]byte(phonemesJSON.String), &row.Phonemes); err != nil {
			return nil, fmt.Errorf("fetch child lexicon: parse phonemes: %w", err)
		}
	}
	if wordsJSON.Valid && wordsJSON.String != "" {
		if err := json.Unmarshal([]byte(wordsJSON.String), &row.Words); err != nil {
			return nil, fmt.Errorf("fetch child lexicon: parse words: %w", err)
		}
	}
	return row, nil
}
