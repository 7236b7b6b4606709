// Package lexicon resolves the target phoneme sequence used for
// teacher-forced alignment: a child's own lexicon row first, then a
// worker-wide default lexicon, then nothing (falling back to unconstrained
// greedy decoding).
package lexicon

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"strings"

	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/store"
)

// ChildLexiconStore fetches a child's lexicon row. internal/store.Store
// satisfies this directly.
type ChildLexiconStore interface {
	FetchChildLexicon(ctx context.Context, childID string) (*store.ChildLexiconRow, error)
}

// WordsResolver turns words into phonemes — internal/g2p.Resolver
// satisfies this.
type WordsResolver interface {
	Resolve(ctx context.Context, words []string, childID string) ([]string, error)
}

// Source resolves the target phoneme sequence for a submission.
type Source struct {
	Store          ChildLexiconStore // may be nil
	Words          WordsResolver     // may be nil
	DefaultLexicon string            // comma-separated phonemes, or a file path
}

// Resolve returns the target phoneme sequence for childID, trying the
// child's own lexicon row first and falling back to the worker-wide
// default. A nil/empty result means no lexicon-constrained target is
// available and the caller should fall back to unconstrained decoding.
func (s *Source) Resolve(ctx context.Context, childID string) ([]string, error) {
	if childID != "" && s.Store != nil {
		row, err := s.Store.FetchChildLexicon(ctx, childID)
		if err != nil {
			slog.Warn("fetch child lexicon failed, falling back to default", "child_id", childID, "error", err)
			row = nil
		}
		if row != nil {
			if len(row.Phonemes) > 0 {
				return row.Phonemes, nil
			}
			if len(row.Words) > 0 && s.Words != nil {
				return s.Words.Resolve(ctx, row.Words, childID)
			}
		}
	}
	if s.DefaultLexicon == "" {
		return nil, nil
	}
	return loadDefault(s.DefaultLexicon)
}

// loadDefault reads the default lexicon from a file if DefaultLexicon
// names an existing file (a JSON array of phonemes, or else one phoneme
// per line or comma/whitespace-separated), otherwise treats it as an
// inline comma-separated list.
func loadDefault(spec string) ([]string, error) {
	if data, err := os.ReadFile(spec); err == nil {
		var fromJSON []string
		if json.Unmarshal(data, &fromJSON) == nil {
			return fromJSON, nil
		}
		return splitPhonemes(string(data)), nil
	}
	return splitPhonemes(spec), nil
}

func splitPhonemes(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r' || r == '\t' || r == ' '
	})
	var out []string
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
