package worker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/audio"
	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/blobfetch"
	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/decoder"
	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/drift"
	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/inference"
	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/lexicon"
	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/metrics"
	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/scoring"
	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/store"
	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/vocab"
)

const driftBaselineName = "phoneme_hist"

// Handler runs one submission through the full pipeline: fetch, decode,
// infer, align, score, persist. A returned error means the message should
// be abandoned; nil means it should be completed.
type Handler struct {
	Blob       *blobfetch.Client
	Backend    inference.Backend
	Vocabulary *vocab.Vocabulary
	Lexicon    *lexicon.Source
	Store      *store.Store
}

func (h *Handler) Handle(ctx context.Context, body []byte) error {
	start := time.Now()
	metrics.RequestsTotal.Inc()
	defer func() { metrics.ProcessingSeconds.Observe(time.Since(start).Seconds()) }()

	payload, err := ParsePayload(body)
	if err != nil {
		metrics.ErrorsTotal.Inc()
		return err
	}

	raw, err := h.Blob.Fetch(ctx, payload.BlobURL)
	if err != nil {
		metrics.ErrorsTotal.Inc()
		return fmt.Errorf("fetch blob for submission %s: %w", payload.SubmissionID, err)
	}

	wave, err := audio.Decode(raw)
	if err != nil {
		metrics.ErrorsTotal.Inc()
		return fmt.Errorf("decode audio for submission %s: %w", payload.SubmissionID, err)
	}

	logits, err := h.Backend.ASRLogits(ctx, wave.Samples, wave.SampleRate)
	if err != nil {
		metrics.ErrorsTotal.Inc()
		return fmt.Errorf("run asr for submission %s: %w", payload.SubmissionID, err)
	}

	frameIDs, probs := decoder.GreedyDecode(logits)
	segments := decoder.GreedySegments(frameIDs, probs, h.Vocabulary.Symbol)

	targetPhonemes, err := h.Lexicon.Resolve(ctx, payload.ChildID)
	if err != nil {
		metrics.ErrorsTotal.Inc()
		return fmt.Errorf("resolve lexicon for child %s: %w", payload.ChildID, err)
	}
	if len(targetPhonemes) > 0 {
		targetIDs := make([]int, len(targetPhonemes))
		for i, p := range targetPhonemes {
			targetIDs[i] = h.Vocabulary.IndexOrBlank(p)
		}
		assign := decoder.ViterbiAlign(logits, targetIDs)
		segments = decoder.TeacherForcedSegments(assign, probs,
			func(idx int) string {
				if idx >= 0 && idx < len(targetPhonemes) {
					return targetPhonemes[idx]
				}
				return fmt.Sprintf("IDX%d", idx)
			},
			func(idx int) int { return targetIDs[idx] },
		)
	}

	emotion, err := h.Backend.Emotion(ctx, wave.Samples, wave.SampleRate)
	if err != nil {
		metrics.ErrorsTotal.Inc()
		return fmt.Errorf("run ser for submission %s: %w", payload.SubmissionID, err)
	}

	score := scoring.Composite(segments, emotion)
	weakness, recommendation := scoring.Weakness(score)

	h.recordDrift(ctx, frameIDs, payload.SubmissionID, payload.ChildID)

	curriculum := scoring.BuildCurriculumUpdate(segments, score, h.Vocabulary)
	err = h.Store.SaveSubmission(ctx,
		store.FeedbackReport{
			SubmissionID:   payload.SubmissionID,
			Score:          score,
			Weakness:       weakness,
			Recommendation: recommendation,
		},
		store.CurriculumRow{
			ChildID:          payload.ChildID,
			FocusPhonemesCSV: strings.Join(curriculum.FocusPhonemes, ","),
			Difficulty:       curriculum.Difficulty,
		},
	)
	if err != nil {
		metrics.ErrorsTotal.Inc()
		return fmt.Errorf("persist report for submission %s: %w", payload.SubmissionID, err)
	}
	return nil
}

// recordDrift updates the phoneme-distribution baseline and, once a
// baseline exists, the drift gauge. Drift bookkeeping failures are logged
// and swallowed — drift monitoring is an observability concern, not a
// condition that should abandon an otherwise-processed submission.
func (h *Handler) recordDrift(ctx context.Context, frameIDs []int, submissionID, childID string) {
	hist := drift.Histogram(frameIDs, h.Vocabulary.Size())
	baseline, ok, err := h.Store.LoadBaseline(ctx, driftBaselineName)
	if err != nil {
		slog.Warn("load drift baseline failed", "submission_id", submissionID, "child_id", childID, "error", err)
		return
	}
	if !ok {
		if err := h.Store.SaveBaseline(ctx, driftBaselineName, hist); err != nil {
			slog.Warn("save drift baseline failed", "submission_id", submissionID, "child_id", childID, "error", err)
		}
		return
	}
	kl := drift.KLDivergence(hist, baseline)
	metrics.PhonemeKL.Set(kl)
	updated := drift.EMAUpdate(baseline, hist)
	if err := h.Store.SaveBaseline(ctx, driftBaselineName, updated); err != nil {
		slog.Warn("save drift baseline failed", "submission_id", submissionID, "child_id", childID, "error", err)
	}
}
