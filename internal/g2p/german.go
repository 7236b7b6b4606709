package g2p

import "strings"

var germanVowels = map[byte]string{
	'a': "AA", 'e': "EH", 'i': "IH", 'o': "AO", 'u': "UH",
}

var germanConsonants = map[byte]string{
	'b': "B", 'c': "K", 'd': "D", 'f': "F", 'g': "G", 'h': "HH", 'j': "JH",
	'k': "K", 'l': "L", 'm': "M", 'n': "N", 'p': "P", 'q': "K", 'r': "R",
	's': "S", 't': "T", 'v': "V", 'w': "V", 'x': "K", 'y': "Y", 'z': "Z",
}

var umlautReplacer = strings.NewReplacer(
	"ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss",
)

// German maps German words to phonemes, expanding umlauts and eszett first
// and then applying a per-letter vowel/consonant map.
func German(words []string) []string {
	var seq []string
	for _, w := range words {
		expanded := umlautReplacer.Replace(strings.ToLower(w))
		for i := 0; i < len(expanded); i++ {
			ch := expanded[i]
			if ph, ok := germanVowels[ch]; ok {
				seq = append(seq, ph)
				continue
			}
			if ch < 'a' || ch > 'z' {
				continue
			}
			if ph, ok := germanConsonants[ch]; ok {
				seq = append(seq, ph)
				continue
			}
			seq = append(seq, "S")
		}
	}
	return seq
}
