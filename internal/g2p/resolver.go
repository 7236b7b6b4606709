package g2p

import (
	"context"
	"log/slog"
	"strings"
)

// Cache is the per-child write-through cache a Resolver consults before
// calling out to a Backend. internal/store.Store satisfies this.
type Cache interface {
	CacheLookup(ctx context.Context, childID, word string) ([]string, bool, error)
	CacheStore(ctx context.Context, childID, word string, phonemes []string) error
}

// Resolver dispatches phoneme resolution by language, and by per-child
// cache when a child is known, mirroring the original worker's
// multilingual_g2p/g2p_for_child routing.
type Resolver struct {
	Backend  Backend
	Language string
	Cache    Cache
}

// Resolve turns words into a phoneme sequence for the given child (may be
// empty for an anonymous submission). "fa" and "de" are handled by their
// dedicated char-map backends regardless of cache or Backend; anything
// else goes through the cache-then-Backend path.
func (r *Resolver) Resolve(ctx context.Context, words []string, childID string) ([]string, error) {
	switch strings.ToLower(r.Language) {
	case "fa":
		return Persian(words), nil
	case "de":
		return German(words), nil
	}
	if childID != "" && r.Cache != nil {
		return r.forChild(ctx, words, childID)
	}
	return r.Backend.Phonemes(ctx, words)
}

// forChild resolves one word at a time against the cache, batches the
// misses through Backend, distributes the returned flat phoneme list back
// across the miss words (the backend has no per-word boundary marker), and
// writes the new mappings back to the cache before returning the full
// sequence in original word order.
func (r *Resolver) forChild(ctx context.Context, words []string, childID string) ([]string, error) {
	var cleaned []string
	for _, w := range words {
		if strings.TrimSpace(w) != "" {
			cleaned = append(cleaned, w)
		}
	}
	if len(cleaned) == 0 {
		return nil, nil
	}

	mapping := make(map[string][]string, len(cleaned))
	var miss []string
	for _, w := range cleaned {
		ph, ok, err := r.Cache.CacheLookup(ctx, childID, w)
		if err != nil {
			slog.Warn("g2p cache lookup failed, treating as miss", "child_id", childID, "word", w, "error", err)
			miss = append(miss, w)
			continue
		}
		if ok {
			mapping[w] = ph
		} else {
			miss = append(miss, w)
		}
	}

	if len(miss) > 0 {
		flat, err := r.Backend.Phonemes(ctx, miss)
		if err != nil {
			return nil, err
		}
		// ceil(len(flat)/len(miss)) per word, the last word absorbing the
		// remainder (the backend has no per-word boundary marker).
		perWord := (len(flat) + len(miss) - 1) / len(miss)
		if perWord < 1 {
			perWord = 1
		}
		idx := 0
		for i, w := range miss {
			var slice []string
			if i == len(miss)-1 {
				slice = flat[idx:]
			} else {
				end := idx + perWord
				if end > len(flat) {
					end = len(flat)
				}
				slice = flat[idx:end]
				idx = end
			}
			if len(slice) == 0 {
				slice = flat
			}
			mapping[w] = slice
			if err := r.Cache.CacheStore(ctx, childID, w, slice); err != nil {
				slog.Warn("g2p cache store failed, returning uncached result", "child_id", childID, "word", w, "error", err)
			}
		}
	}

	var seq []string
	for _, w := range cleaned {
		seq = append(seq, mapping[w]...)
	}
	return seq, nil
}
