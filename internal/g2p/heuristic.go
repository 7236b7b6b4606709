package g2p

import "context"

// demoLexicon covers a handful of common early-vocabulary words outright;
// everything else falls through to the letter-by-letter heuristic.
var demoLexicon = map[string][]string{
	"cat":  {"K", "AE", "T"},
	"dog":  {"D", "AO", "G"},
	"mama": {"M", "AA", "M", "AA"},
	"papa": {"P", "AA", "P", "AA"},
	"car":  {"K", "AA", "R"},
	"ball": {"B", "AO", "L"},
}

var vowelPhonemes = map[byte]string{
	'a': "AH", 'e': "EH", 'i': "IH", 'o': "AO", 'u': "UH",
}

var consonantPhonemes = map[byte]string{
	'b': "B", 'c': "K", 'd': "D", 'f': "F", 'g': "G", 'h': "HH", 'j': "JH",
	'k': "K", 'l': "L", 'm': "M", 'n': "N", 'p': "P", 'q': "K", 'r': "R",
	's': "S", 't': "T", 'v': "V", 'w': "W", 'x': "K", 'y': "Y", 'z': "Z",
}

// Heuristic maps words to phonemes without any external model: a lookup
// against demoLexicon, then a per-letter vowel/consonant fallback for
// anything unlisted. It never fails and is the fallback every other
// backend in this package reaches for on error.
func Heuristic(words []string) []string {
	var seq []string
	for _, w := range words {
		letters := onlyLetters(w)
		if ph, ok := demoLexicon[letters]; ok {
			seq = append(seq, ph...)
			continue
		}
		for i := 0; i < len(letters); i++ {
			ch := letters[i]
			if ph, ok := vowelPhonemes[ch]; ok {
				seq = append(seq, ph)
				continue
			}
			if ph, ok := consonantPhonemes[ch]; ok {
				seq = append(seq, ph)
				continue
			}
			seq = append(seq, "S")
		}
	}
	return seq
}

func onlyLetters(w string) string {
	b := make([]byte, 0, len(w))
	for i := 0; i < len(w); i++ {
		c := w[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c >= 'a' && c <= 'z' {
			b = append(b, c)
		}
	}
	return string(b)
}

// HeuristicBackend is the built-in, dependency-free Backend.
type HeuristicBackend struct{}

func (HeuristicBackend) Phonemes(_ context.Context, words []string) ([]string, error) {
	return Heuristic(words), nil
}
