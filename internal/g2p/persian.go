package g2p

var persianMap = map[rune]string{
	'ا': "AA", 'آ': "AA", 'ب': "B", 'پ': "P", 'ت': "T", 'ث': "S", 'ج': "JH",
	'چ': "CH", 'ح': "HH", 'خ': "KH", 'د': "D", 'ذ': "Z", 'ر': "R", 'ز': "Z",
	'ژ': "ZH", 'س': "S", 'ش': "SH", 'ص': "S", 'ض': "Z", 'ط': "T", 'ظ': "Z",
	'ع': "AH", 'غ': "GH", 'ف': "F", 'ق': "G", 'ک': "K", 'گ': "G", 'ل': "L",
	'م': "M", 'ن': "N", 'و': "V", 'ه': "HH", 'ی': "Y",
}

// Persian maps Persian-script words to phonemes character by character,
// defaulting unmapped characters to the open-vowel AH.
func Persian(words []string) []string {
	var seq []string
	for _, w := range words {
		for _, ch := range w {
			if ph, ok := persianMap[ch]; ok {
				seq = append(seq, ph)
				continue
			}
			seq = append(seq, "AH")
		}
	}
	return seq
}
