package inference

import (
	"context"
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/decoder"
)

// ONNXBackend runs the ASR and SER models through ONNX Runtime. Model
// paths are optional independently: a missing path leaves that session
// nil and ASRLogits/Emotion falls through to a FallbackBackend instance
// held for exactly that purpose.
type ONNXBackend struct {
	asrSession ortSession
	serSession ortSession
	fallback   *FallbackBackend

	mu sync.Mutex // ONNX Runtime sessions are not safe for concurrent Run calls
}

// ortSession is the subset of ort.DynamicAdvancedSession this package
// calls, so tests can substitute a fake without a real ONNX Runtime.
type ortSession interface {
	Run(inputs, outputs []ort.Value) error
	Destroy() error
}

// ONNXConfig names the shared library and model files to load.
type ONNXConfig struct {
	SharedLibraryPath string
	ASRModelPath      string // empty disables the ASR session
	SERModelPath      string // empty disables the SER session
}

// NewONNXBackend initializes the ONNX Runtime environment and opens
// whichever of ASRModelPath/SERModelPath are non-empty. fallback handles
// any call to the disabled side.
func NewONNXBackend(cfg ONNXConfig, fallback *FallbackBackend) (*ONNXBackend, error) {
	if cfg.SharedLibraryPath != "" {
		ort.SetSharedLibraryPath(cfg.SharedLibraryPath)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("onnx: initialize environment: %w", err)
	}

	b := &ONNXBackend{fallback: fallback}

	if cfg.ASRModelPath != "" {
		sess, err := openDynamicSession(cfg.ASRModelPath)
		if err != nil {
			ort.DestroyEnvironment()
			return nil, fmt.Errorf("onnx: open asr model: %w", err)
		}
		b.asrSession = sess
	}
	if cfg.SERModelPath != "" {
		sess, err := openDynamicSession(cfg.SERModelPath)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("onnx: open ser model: %w", err)
		}
		b.serSession = sess
	}
	return b, nil
}

func openDynamicSession(modelPath string) (*ort.DynamicAdvancedSession, error) {
	inputInfo, outputInfo, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("inspect model: %w", err)
	}
	inputNames := make([]string, len(inputInfo))
	for i, info := range inputInfo {
		inputNames[i] = info.Name
	}
	outputNames := make([]string, len(outputInfo))
	for i, info := range outputInfo {
		outputNames[i] = info.Name
	}
	return ort.NewDynamicAdvancedSession(modelPath, inputNames, outputNames, nil)
}

func (b *ONNXBackend) ASRLogits(ctx context.Context, samples []float32, sampleRate int) (decoder.Matrix, error) {
	if b.asrSession == nil {
		return b.fallback.ASRLogits(ctx, samples, sampleRate)
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	input, err := ort.NewTensor(ort.NewShape(1, int64(len(samples))), samples)
	if err != nil {
		return nil, fmt.Errorf("onnx: build asr input tensor: %w", err)
	}
	defer input.Destroy()

	outputs := []ort.Value{nil}
	if err := b.asrSession.Run([]ort.Value{input}, outputs); err != nil {
		return nil, fmt.Errorf("onnx: run asr session: %w", err)
	}
	out, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("onnx: unexpected asr output tensor type")
	}
	defer out.Destroy()

	shape := out.GetShape()
	if len(shape) < 2 {
		return nil, fmt.Errorf("onnx: asr output has unexpected rank %d", len(shape))
	}
	frames := int(shape[len(shape)-2])
	vocabSize := int(shape[len(shape)-1])
	data := out.GetData()

	logits := make(decoder.Matrix, frames)
	for t := 0; t < frames; t++ {
		row := make([]float32, vocabSize)
		copy(row, data[t*vocabSize:(t+1)*vocabSize])
		logits[t] = row
	}
	return logits, nil
}

func (b *ONNXBackend) Emotion(ctx context.Context, samples []float32, sampleRate int) (string, error) {
	if b.serSession == nil {
		return b.fallback.Emotion(ctx, samples, sampleRate)
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	input, err := ort.NewTensor(ort.NewShape(1, int64(len(samples))), samples)
	if err != nil {
		return "", fmt.Errorf("onnx: build ser input tensor: %w", err)
	}
	defer input.Destroy()

	outputs := []ort.Value{nil}
	if err := b.serSession.Run([]ort.Value{input}, outputs); err != nil {
		return "", fmt.Errorf("onnx: run ser session: %w", err)
	}
	out, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return "", fmt.Errorf("onnx: unexpected ser output tensor type")
	}
	defer out.Destroy()

	data := out.GetData()
	best, bestIdx := float32(0), 0
	for i, v := range data {
		if i == 0 || v > best {
			best = v
			bestIdx = i
		}
	}
	return EmotionLabels[bestIdx%len(EmotionLabels)], nil
}

// ASRLoaded reports whether an ASR model session is active, as opposed to
// falling through to the deterministic fallback backend.
func (b *ONNXBackend) ASRLoaded() bool { return b.asrSession != nil }

// SERLoaded reports whether an SER (emotion) model session is active, as
// opposed to falling through to the deterministic fallback backend.
func (b *ONNXBackend) SERLoaded() bool { return b.serSession != nil }

func (b *ONNXBackend) Close() error {
	if b.asrSession != nil {
		b.asrSession.Destroy()
	}
	if b.serSession != nil {
		b.serSession.Destroy()
	}
	ort.DestroyEnvironment()
	return nil
}
