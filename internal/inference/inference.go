// Package inference wraps the two acoustic models a submission runs
// through: a phoneme-level ASR model producing per-frame CTC logits, and a
// speech-emotion-recognition (SER) model producing an emotion label. Both
// are pluggable: a real ONNX Runtime backend for production, and a
// deterministic fallback for environments with no model files staged.
package inference

import (
	"context"

	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/decoder"
)

// Backend runs acoustic inference over a decoded mono waveform.
type Backend interface {
	// ASRLogits returns per-frame, per-phoneme unnormalized logits.
	ASRLogits(ctx context.Context, samples []float32, sampleRate int) (decoder.Matrix, error)
	// Emotion returns one of the EmotionLabels.
	Emotion(ctx context.Context, samples []float32, sampleRate int) (string, error)
	Close() error
}

// EmotionLabels is the fixed label set SER output indices map onto.
var EmotionLabels = []string{"neutral", "happy", "sad", "angry", "frustrated"}
