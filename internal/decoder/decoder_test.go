package decoder

import (
	"math"
	"testing"
)

func logitsFor(ids []int, vocabSize int, bias float32) Matrix {
	m := make(Matrix, len(ids))
	for t, id := range ids {
		row := make([]float32, vocabSize)
		for i := range row {
			row[i] = -bias
		}
		row[id] = bias
		m[t] = row
	}
	return m
}

func TestGreedyDecodeCollapsesRunsAndDropsBlank(t *testing.T) {
	// frames: blank, A, A, blank, B, B, B
	ids := []int{0, 1, 1, 0, 2, 2, 2}
	logits := logitsFor(ids, 4, 5)
	frameIDs, probs := GreedyDecode(logits)

	symbol := func(id int) string { return []string{"<blank>", "A", "B", "C"}[id] }
	segs := GreedySegments(frameIDs, probs, symbol)

	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d: %+v", len(segs), segs)
	}
	if segs[0].Phoneme != "A" || segs[1].Phoneme != "B" {
		t.Fatalf("unexpected phoneme order: %+v", segs)
	}
	for _, s := range segs {
		if !(s.StartSec < s.EndSec) {
			t.Errorf("segment %+v violates start < end", s)
		}
		if s.Confidence < 0 || s.Confidence > 1 {
			t.Errorf("segment %+v confidence out of [0,1]", s)
		}
	}
}

func TestGreedyDecodeEmptyLogitsYieldsEmptySegments(t *testing.T) {
	frameIDs, probs := GreedyDecode(Matrix{})
	segs := GreedySegments(frameIDs, probs, func(id int) string { return "" })
	if len(segs) != 0 {
		t.Fatalf("expected no segments for empty logits, got %d", len(segs))
	}
}

func TestViterbiAlignAdvancesAtMostN(t *testing.T) {
	// 10 frames, target sequence of length 3 (ids 1,2,3 in a 4-symbol vocab).
	ids := []int{1, 1, 1, 2, 2, 2, 3, 3, 3, 3}
	logits := logitsFor(ids, 4, 5)
	target := []int{1, 2, 3}

	assign := ViterbiAlign(logits, target)
	if len(assign) != len(ids) {
		t.Fatalf("expected length %d, got %d", len(ids), len(assign))
	}

	distinct := map[int]bool{}
	for _, a := range assign {
		if a >= 0 {
			distinct[a] = true
		}
	}
	if len(distinct) > len(target) {
		t.Fatalf("expected at most %d distinct advances, got %d", len(target), len(distinct))
	}

	// Alignment should recover the target order for this clean signal.
	var seen []int
	last := -2
	for _, a := range assign {
		if a >= 0 && a != last {
			seen = append(seen, a)
			last = a
		}
	}
	if len(seen) != 3 || seen[0] != 0 || seen[1] != 1 || seen[2] != 2 {
		t.Fatalf("expected ordered advance through target indices, got %v", seen)
	}
}

func TestViterbiOutOfVocabTargetNeverAdvances(t *testing.T) {
	ids := []int{1, 1, 1, 1}
	logits := logitsFor(ids, 3, 5) // vocab size 3: ids 0,1,2 valid
	target := []int{5}             // out of range -> treated as never matching

	assign := ViterbiAlign(logits, target)
	for _, a := range assign {
		if a != -1 {
			t.Fatalf("expected no advances for out-of-vocab target, got assign=%v", assign)
		}
	}
}

func TestKLSelfIsZero(t *testing.T) {
	p := []float64{1, 2, 3, 4}
	kl := klDivergenceForTest(p, p)
	if math.Abs(kl) > 1e-6 {
		t.Fatalf("KL(p||p) should be ~0, got %v", kl)
	}
}

// klDivergenceForTest mirrors internal/drift's KL formula locally;
// internal/drift has its own equivalent test.
func klDivergenceForTest(p, q []float64) float64 {
	const eps = 1e-8
	n := len(p)
	pp := make([]float64, n)
	qq := make([]float64, n)
	var sp, sq float64
	for i := 0; i < n; i++ {
		pp[i] = p[i] + eps
		qq[i] = q[i] + eps
		sp += pp[i]
		sq += qq[i]
	}
	var kl float64
	for i := 0; i < n; i++ {
		pn := pp[i] / sp
		qn := qq[i] / sq
		kl += pn * (math.Log(pn) - math.Log(qn))
	}
	return kl
}
