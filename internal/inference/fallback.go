package inference

import (
	"context"
	"math"
	"math/rand"

	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/decoder"
	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/vocab"
)

// FallbackBackend produces deterministic, blank-heavy logits and an
// energy-based emotion guess when no ONNX model is staged. It keeps the
// worker able to process submissions — and to be tested — without GPU
// model files on disk.
type FallbackBackend struct {
	Vocabulary *vocab.Vocabulary
	rng        *rand.Rand
}

// NewFallback builds a FallbackBackend with a fixed seed, so its output is
// stable across runs and in tests.
func NewFallback(vocabulary *vocab.Vocabulary) *FallbackBackend {
	return &FallbackBackend{Vocabulary: vocabulary, rng: rand.New(rand.NewSource(1))}
}

func (f *FallbackBackend) ASRLogits(_ context.Context, samples []float32, sampleRate int) (decoder.Matrix, error) {
	hopSamples := int(float64(sampleRate) * decoder.HopSeconds)
	if hopSamples < 1 {
		hopSamples = 1
	}
	frames := len(samples) / hopSamples
	if frames < 1 {
		frames = 1
	}
	v := f.Vocabulary.Size()

	var meanAbs float64
	for _, s := range samples {
		meanAbs += math.Abs(float64(s))
	}
	if len(samples) > 0 {
		meanAbs /= float64(len(samples))
	}

	biasIdx := 8
	if biasIdx >= v {
		biasIdx = v - 1
	}

	logits := make(decoder.Matrix, frames)
	for t := 0; t < frames; t++ {
		row := make([]float32, v)
		for i := range row {
			row[i] = float32(f.rng.NormFloat64() * 0.1)
		}
		row[0] += 4.0 // bias heavily toward blank
		if biasIdx >= 0 {
			row[biasIdx] += float32(meanAbs * 5.0)
		}
		logits[t] = row
	}
	return logits, nil
}

func (f *FallbackBackend) Emotion(_ context.Context, samples []float32, _ int) (string, error) {
	var meanAbs float64
	for _, s := range samples {
		meanAbs += math.Abs(float64(s))
	}
	if len(samples) > 0 {
		meanAbs /= float64(len(samples))
	}
	if meanAbs > 0.1 {
		return "happy", nil
	}
	return "neutral", nil
}

func (f *FallbackBackend) Close() error { return nil }
