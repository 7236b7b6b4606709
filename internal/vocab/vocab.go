// Package vocab owns the process-global phoneme vocabulary: an ordered
// symbol list with O(1) index<->symbol lookup, immutable after startup.
package vocab

import (
	"encoding/json"
	"fmt"
	"os"
)

// Blank is the CTC blank symbol's vocabulary index.
const Blank = 0

// defaultSymbols is the built-in 40-entry ARPAbet-style set, index 0 is
// always the blank symbol.
var defaultSymbols = []string{
	"<blank>", "AA", "AE", "AH", "AO", "AW", "AY", "B", "CH", "D",
	"DH", "EH", "ER", "EY", "F", "G", "HH", "IH", "IY", "JH",
	"K", "L", "M", "N", "NG", "OW", "OY", "P", "R", "S",
	"SH", "T", "TH", "UH", "UW", "V", "W", "Y", "Z", "ZH",
}

// Vocabulary is an immutable, bidirectional symbol<->index table.
type Vocabulary struct {
	symbols []string
	index   map[string]int
}

// Load builds a Vocabulary from a JSON array file at path, or the built-in
// default when path is empty. A path that cannot be read or parsed is an
// error.
func Load(path string) (*Vocabulary, error) {
	symbols := defaultSymbols
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("vocab: read %s: %w", path, err)
		}
		var fromFile []string
		if err := json.Unmarshal(data, &fromFile); err != nil {
			return nil, fmt.Errorf("vocab: parse %s: %w", path, err)
		}
		symbols = fromFile
	}
	return newVocabulary(symbols), nil
}

// Default returns the built-in 40-entry vocabulary.
func Default() *Vocabulary {
	return newVocabulary(defaultSymbols)
}

func newVocabulary(symbols []string) *Vocabulary {
	idx := make(map[string]int, len(symbols))
	for i, s := range symbols {
		idx[s] = i
	}
	return &Vocabulary{symbols: symbols, index: idx}
}

// Size returns the vocabulary length, V.
func (v *Vocabulary) Size() int {
	return len(v.symbols)
}

// Symbol returns the symbol at id, or "" if out of range.
func (v *Vocabulary) Symbol(id int) string {
	if id < 0 || id >= len(v.symbols) {
		return ""
	}
	return v.symbols[id]
}

// Index returns the id for symbol, and whether it was found. Unknown
// symbols map silently to Blank at call sites that need a fallback.
func (v *Vocabulary) Index(symbol string) (int, bool) {
	id, ok := v.index[symbol]
	return id, ok
}

// IndexOrBlank returns the id for symbol, or Blank when the symbol is not
// in the vocabulary — per spec, out-of-vocabulary target phonemes map
// silently to blank, which in alignment has the effect of never advancing.
func (v *Vocabulary) IndexOrBlank(symbol string) int {
	if id, ok := v.index[symbol]; ok {
		return id
	}
	return Blank
}

// Symbols returns a copy of the ordered symbol list.
func (v *Vocabulary) Symbols() []string {
	out := make([]string, len(v.symbols))
	copy(out, v.symbols)
	return out
}
