package g2p

import "context"

// EnglishBackend is the default backend. No pure-Go CMUdict/g2p_en binding
// ships in this module, so it resolves every word through Heuristic; the
// external binary backends below are the way to plug in a real G2P model.
type EnglishBackend struct{}

func (EnglishBackend) Phonemes(ctx context.Context, words []string) ([]string, error) {
	return HeuristicBackend{}.Phonemes(ctx, words)
}
