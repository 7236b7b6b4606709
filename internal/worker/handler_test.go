package worker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/blobfetch"
	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/inference"
	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/lexicon"
	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/store"
	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/vocab"
)

func encodeWAV(t *testing.T, samples []int, sampleRate int) []byte {
	t.Helper()
	buf := &writerSeeker{}
	enc := wav.NewEncoder(buf, sampleRate, 16, 1, 1)
	ib := &audio.IntBuffer{
		Format: &audio.Format{SampleRate: sampleRate, NumChannels: 1},
		Data:   samples,
	}
	if err := enc.Write(ib); err != nil {
		t.Fatalf("write wav: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder: %v", err)
	}
	return buf.data
}

// writerSeeker is a minimal in-memory io.WriteSeeker for go-audio/wav's
// encoder, which seeks back to patch header sizes on Close.
type writerSeeker struct {
	data []byte
	pos  int
}

func (w *writerSeeker) Write(p []byte) (int, error) {
	if w.pos+len(p) > len(w.data) {
		grown := make([]byte, w.pos+len(p))
		copy(grown, w.data)
		w.data = grown
	}
	copy(w.data[w.pos:], p)
	w.pos += len(p)
	return len(p), nil
}

func (w *writerSeeker) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case 0:
		w.pos = int(offset)
	case 1:
		w.pos += int(offset)
	case 2:
		w.pos = len(w.data) + int(offset)
	}
	return int64(w.pos), nil
}

func newTestHandler(t *testing.T) (*Handler, *httptest.Server) {
	t.Helper()
	samples := make([]int, 1600)
	for i := range samples {
		samples[i] = 1000
	}
	wavBytes := encodeWAV(t, samples, 16000)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(wavBytes)
	}))
	t.Cleanup(srv.Close)

	s, err := store.Open("")
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	v := vocab.Default()
	h := &Handler{
		Blob:       blobfetch.New(1),
		Backend:    inference.NewFallback(v),
		Vocabulary: v,
		Lexicon:    &lexicon.Source{},
		Store:      s,
	}
	return h, srv
}

func TestHandlerProcessesSubmissionEndToEnd(t *testing.T) {
	h, srv := newTestHandler(t)

	externalSchemaForWorkerTest(t, h.Store)

	payload := SubmissionPayload{
		SubmissionID: "sub-1",
		ChildID:      "child-1",
		BlobURL:      srv.URL,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	if err := h.Handle(context.Background(), body); err != nil {
		t.Fatalf("Handle: %v", err)
	}
}

func TestHandlerRejectsMissingFields(t *testing.T) {
	h, _ := newTestHandler(t)
	body, _ := json.Marshal(SubmissionPayload{SubmissionID: "sub-1"})
	if err := h.Handle(context.Background(), body); err == nil {
		t.Fatal("expected error for missing childId/blobUrl")
	}
}

// externalSchemaForWorkerTest mirrors internal/store's own test helper,
// creating the externally-owned tables SaveSubmission writes to.
func externalSchemaForWorkerTest(t *testing.T, s *store.Store) {
	t.Helper()
	stmts := []string{
		`CREATE TABLE "FeedbackReports" (
			"Id" TEXT PRIMARY KEY,
			"SubmissionId" TEXT NOT NULL,
			"Score0_100" INTEGER NOT NULL,
			"Weakness" TEXT NOT NULL,
			"Recommendation" TEXT NOT NULL,
			"CreatedAtUtc" DATETIME NOT NULL
		)`,
		`CREATE TABLE "ChildCurricula" (
			"Id" TEXT PRIMARY KEY,
			"ChildId" TEXT NOT NULL UNIQUE,
			"FocusPhonemesCsv" TEXT NOT NULL,
			"Difficulty" INTEGER NOT NULL,
			"SuccessStreak" INTEGER NOT NULL,
			"UpdatedAtUtc" DATETIME NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.Exec(context.Background(), stmt); err != nil {
			t.Fatalf("create external schema: %v", err)
		}
	}
}
