// Package scoring turns decoded phoneme segments and an emotion label into
// an overall quality score, weakness tag, and recommendation text.
package scoring

import "github.com/yasserebrahimi/hearloveen-ai-worker/internal/decoder"

// negativeEmotions are penalised in the composite score.
var negativeEmotions = map[string]bool{
	"sad": true, "angry": true, "frustrated": true,
}

// Composite computes the overall 0-100 score for a submission. An empty
// segment list always scores 0.
func Composite(segments []decoder.Segment, emotion string) int {
	if len(segments) == 0 {
		return 0
	}

	var sum float64
	for _, s := range segments {
		sum += s.Confidence
	}
	mean := sum / float64(len(segments))

	base := int(60 + 40*mean)
	if negativeEmotions[emotion] {
		base -= 10
	}

	return clamp(base, 0, 100)
}

// Weakness returns the weakness tag and fixed recommendation text for a score.
func Weakness(score int) (tag, recommendation string) {
	if score < 75 {
		return "articulation", "Slow down and repeat target words; emphasize endings."
	}
	return "prosody", "Vary pitch and stress; try call-and-response games."
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
