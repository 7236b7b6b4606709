package scoring

import (
	"sort"

	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/decoder"
	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/vocab"
)

// padPhonemes fills out a weakest-phoneme list shorter than 3 entries.
var padPhonemes = []string{"R", "S"}

// CurriculumUpdate holds the values to upsert into a child's curriculum row.
type CurriculumUpdate struct {
	FocusPhonemes []string
	Difficulty    int
}

// BuildCurriculumUpdate aggregates per-phoneme confidence across segments,
// drops the blank symbol and any phoneme not in vocab (defensive filter),
// and ranks the three weakest (lowest mean confidence) phonemes, padding
// with {"R","S"} (skipping any already listed) if fewer than three
// distinct phonemes were observed.
func BuildCurriculumUpdate(segments []decoder.Segment, score int, vocabulary *vocab.Vocabulary) CurriculumUpdate {
	agg := map[string][]float64{}
	for _, s := range segments {
		if id, ok := vocabulary.Index(s.Phoneme); !ok || id == vocab.Blank {
			continue
		}
		agg[s.Phoneme] = append(agg[s.Phoneme], s.Confidence)
	}

	type ranked struct {
		phoneme string
		mean    float64
	}
	items := make([]ranked, 0, len(agg))
	for p, confs := range agg {
		var sum float64
		for _, c := range confs {
			sum += c
		}
		items = append(items, ranked{phoneme: p, mean: sum / float64(len(confs))})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].mean != items[j].mean {
			return items[i].mean < items[j].mean
		}
		return items[i].phoneme < items[j].phoneme
	})

	weak := make([]string, 0, 3)
	for i := 0; i < len(items) && i < 3; i++ {
		weak = append(weak, items[i].phoneme)
	}
	for _, p := range padPhonemes {
		if len(weak) >= 3 {
			break
		}
		if _, seen := agg[p]; !seen {
			weak = append(weak, p)
		}
	}

	difficulty := 2
	if score < 70 {
		difficulty = 1
	}

	return CurriculumUpdate{FocusPhonemes: weak, Difficulty: difficulty}
}
