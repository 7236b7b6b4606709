package g2p

import (
	"context"
	"log/slog"
	"os/exec"
	"strings"
)

// ExternalBackend shells out to a locally installed G2P binary (Phonetisaurus,
// Sequitur) and falls back to Heuristic whenever the binary is missing,
// unconfigured, or errors — a submission should never fail because a
// sidecar G2P tool is down.
type ExternalBackend struct {
	Name      string
	BinPath   string
	ModelPath string
	buildArgs func(modelPath string) []string
	parse     func(output string) []string
}

// NewPhonetisaurus builds an ExternalBackend wired to phonetisaurus-g2p's
// CLI contract: tab-separated "word\tphoneme phoneme ..." lines on stdout.
func NewPhonetisaurus(binPath, modelPath string) ExternalBackend {
	if binPath == "" {
		binPath = "phonetisaurus-g2p"
	}
	return ExternalBackend{
		Name:      "phonetisaurus",
		BinPath:   binPath,
		ModelPath: modelPath,
		buildArgs: func(model string) []string { return []string{"--model=" + model} },
		parse:     parseTabSeparated,
	}
}

// NewSequitur builds an ExternalBackend wired to sequitur-g2p's CLI
// contract: whitespace-separated phonemes per line, one line per word.
func NewSequitur(binPath, modelPath string) ExternalBackend {
	if binPath == "" {
		binPath = "sequitur-g2p"
	}
	return ExternalBackend{
		Name:      "sequitur",
		BinPath:   binPath,
		ModelPath: modelPath,
		buildArgs: func(model string) []string { return []string{"-m", model, "-x", " ", "-e", ""} },
		parse:     parseWhitespaceSeparated,
	}
}

func (b ExternalBackend) Phonemes(ctx context.Context, words []string) ([]string, error) {
	if b.ModelPath == "" {
		return Heuristic(words), nil
	}
	cmd := exec.CommandContext(ctx, b.BinPath, b.buildArgs(b.ModelPath)...)
	cmd.Stdin = strings.NewReader(strings.Join(words, "\n"))
	out, err := cmd.Output()
	if err != nil {
		slog.Warn("external g2p backend failed, using heuristic fallback", "backend", b.Name, "error", err)
		return Heuristic(words), nil
	}
	phonemes := b.parse(string(out))
	if len(phonemes) == 0 {
		return Heuristic(words), nil
	}
	return phonemes, nil
}

func parseTabSeparated(output string) []string {
	var phonemes []string
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			continue
		}
		for _, p := range strings.Fields(parts[1]) {
			phonemes = append(phonemes, strings.ToUpper(strings.TrimSpace(p)))
		}
	}
	return phonemes
}

func parseWhitespaceSeparated(output string) []string {
	var phonemes []string
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		for _, p := range strings.Fields(line) {
			phonemes = append(phonemes, strings.ToUpper(strings.TrimSpace(p)))
		}
	}
	return phonemes
}
