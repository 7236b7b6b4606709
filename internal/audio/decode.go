// Package audio decodes submitted utterance audio into mono float32 PCM.
package audio

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-audio/wav"
)

// ErrEmptyAudio is returned when the fetched blob has no bytes.
var ErrEmptyAudio = errors.New("empty audio input")

// Waveform is mono float32 PCM at a declared sample rate.
type Waveform struct {
	Samples    []float32
	SampleRate int
}

// Decode parses WAV bytes into a mono Waveform, averaging channels when the
// source is multi-channel. Sample rate is whatever the file declares.
func Decode(data []byte) (Waveform, error) {
	if len(data) == 0 {
		return Waveform{}, ErrEmptyAudio
	}

	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return Waveform{}, fmt.Errorf("decode audio: not a valid WAV file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Waveform{}, fmt.Errorf("decode audio: read PCM: %w", err)
	}

	channels := int(dec.NumChans)
	if channels < 1 {
		channels = 1
	}
	bitDepth := int(dec.BitDepth)
	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := float32(int(1) << (bitDepth - 1))

	samples := mixDown(buf.Data, channels, scale)

	return Waveform{
		Samples:    samples,
		SampleRate: int(dec.SampleRate),
	}, nil
}

// mixDown collapses interleaved multi-channel integer PCM to mono float32
// in [-1, 1] by averaging the channels of each frame.
func mixDown(pcm []int, channels int, scale float32) []float32 {
	frames := len(pcm) / channels
	out := make([]float32, frames)
	for i := 0; i < frames; i++ {
		var sum float32
		for c := 0; c < channels; c++ {
			sum += float32(pcm[i*channels+c]) / scale
		}
		out[i] = sum / float32(channels)
	}
	return out
}
