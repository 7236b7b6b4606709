// Package g2p turns words into phoneme sequences when a submission has no
// audio-aligned transcript of its own, so teacher-forced alignment still has
// a target. Backends range from a bundled heuristic to external G2P
// binaries; callers pick one with config.G2PBackend.
package g2p

import "context"

// Backend converts a list of words into a flat phoneme sequence.
type Backend interface {
	Phonemes(ctx context.Context, words []string) ([]string, error)
}
