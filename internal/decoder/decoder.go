// Package decoder implements greedy CTC decoding, Viterbi teacher-forced
// alignment, and phoneme segment grouping over acoustic-model logits.
package decoder

import "math"

// HopSeconds is the fixed frame hop of the logits matrix.
const HopSeconds = 0.02

// blankID is the CTC blank symbol's vocabulary index.
const blankID = 0

// blankSentinel marks a frame with no phoneme assignment.
const blankSentinel = -1

// Matrix is a [T frames, V vocabulary] logits matrix, row-major.
type Matrix [][]float32

// Segment is a contiguous run of frames assigned to one phoneme.
type Segment struct {
	Phoneme    string
	StartSec   float64
	EndSec     float64
	Confidence float64
}

// softmaxRows computes row-wise softmax, stabilised by subtracting each
// row's max before exponentiating.
func softmaxRows(logits Matrix) [][]float64 {
	out := make([][]float64, len(logits))
	for t, row := range logits {
		max32 := float32(math.Inf(-1))
		for _, v := range row {
			if v > max32 {
				max32 = v
			}
		}
		sum := 0.0
		exp := make([]float64, len(row))
		for i, v := range row {
			e := math.Exp(float64(v - max32))
			exp[i] = e
			sum += e
		}
		if sum > 0 {
			for i := range exp {
				exp[i] /= sum
			}
		}
		out[t] = exp
	}
	return out
}

// GreedyDecode performs the per-frame step of greedy CTC decoding: argmax
// of the row-wise softmax for every frame. Returns the frame-id assignment
// and the softmax probabilities; collapsing consecutive-equal runs and
// dropping blanks happens downstream in GreedySegments.
func GreedyDecode(logits Matrix) (frameIDs []int, probs [][]float64) {
	probs = softmaxRows(logits)
	frameIDs = make([]int, len(logits))
	for t, p := range probs {
		best := 0
		bestP := -1.0
		for i, v := range p {
			if v > bestP {
				bestP = v
				best = i
			}
		}
		frameIDs[t] = best
	}
	return frameIDs, probs
}

// ViterbiAlign computes the maximum-probability forced alignment of logits
// against a known target sequence of vocabulary ids. It returns a
// length-T assignment where each entry is either a target-sequence index
// (0..N-1) or blankSentinel. Ties between staying on blank and advancing
// prefer the stay transition (deterministic ordering), matching the
// original's self-loop-free trellis: only a blank self-loop and an
// advance transition are modeled, never a self-loop on the emitted label.
func ViterbiAlign(logits Matrix, targetIDs []int) []int {
	T := len(logits)
	N := len(targetIDs)
	probs := softmaxRows(logits)

	const negInf = math.MaxFloat64 * -1

	dp := make([][]float64, T+1)
	bp := make([][]bool, T+1) // true = arrived via advance
	for t := range dp {
		dp[t] = make([]float64, N+1)
		bp[t] = make([]bool, N+1)
		for n := range dp[t] {
			dp[t][n] = negInf
		}
	}
	dp[0][0] = 0

	for t := 1; t <= T; t++ {
		blankProb := probs[t-1][blankID]
		logBlank := math.Log(math.Max(blankProb, 1e-8))

		for n := 0; n <= N; n++ {
			// Stay-on-blank from (t-1, n).
			stay := dp[t-1][n] + logBlank
			dp[t][n] = stay

			// Advance from (t-1, n-1).
			if n >= 1 {
				pid := targetIDs[n-1]
				p := 0.0
				if pid >= 0 && pid < len(probs[t-1]) {
					p = probs[t-1][pid]
				}
				advance := dp[t-1][n-1] + math.Log(math.Max(p, 1e-8))
				if advance > dp[t][n] {
					dp[t][n] = advance
					bp[t][n] = true
				}
			}
		}
	}

	// Pick n* = argmax_n dp[T, n].
	best := 0
	bestVal := dp[T][0]
	for n := 1; n <= N; n++ {
		if dp[T][n] > bestVal {
			bestVal = dp[T][n]
			best = n
		}
	}

	assign := make([]int, T)
	for i := range assign {
		assign[i] = blankSentinel
	}

	n := best
	for t := T; t > 0; t-- {
		if bp[t][n] {
			assign[t-1] = n - 1
			n--
		}
	}

	return assign
}

// GroupSegments walks a FrameAssignment (either the greedy frameIDs, where
// blankID marks "no phoneme", or a Viterbi assignment, where
// blankSentinel does) and produces contiguous-run Segments. symbolFor
// resolves an assignment entry (vocab id, or target-sequence index) to its
// phoneme symbol; probAt resolves the per-frame probability of that
// entry's phoneme for confidence averaging.
func GroupSegments(assign []int, isBlank func(int) bool, symbolFor func(int) string, probAt func(frame, entry int) float64) []Segment {
	var segs []Segment
	i := 0
	T := len(assign)
	for i < T {
		entry := assign[i]
		j := i + 1
		for j < T && assign[j] == entry {
			j++
		}
		if !isBlank(entry) {
			sum := 0.0
			for f := i; f < j; f++ {
				sum += probAt(f, entry)
			}
			conf := 0.0
			if j > i {
				conf = sum / float64(j-i)
			}
			segs = append(segs, Segment{
				Phoneme:    symbolFor(entry),
				StartSec:   round3(float64(i) * HopSeconds),
				EndSec:     round3(float64(j) * HopSeconds),
				Confidence: round3(conf),
			})
		}
		i = j
	}
	return segs
}

// GreedySegments groups a greedy-decode frame-id assignment into segments,
// dropping blank runs, using symbolFor to resolve vocabulary ids to
// phoneme symbols.
func GreedySegments(frameIDs []int, probs [][]float64, symbolFor func(id int) string) []Segment {
	return GroupSegments(
		frameIDs,
		func(id int) bool { return id == blankID },
		symbolFor,
		func(frame, id int) float64 { return probs[frame][id] },
	)
}

// TeacherForcedSegments groups a Viterbi assignment (target-sequence
// indices, or blankSentinel) into segments. targetPhoneme resolves a
// target-sequence index to its phoneme symbol; targetVocabID resolves it
// to a vocabulary id for confidence lookup in probs.
func TeacherForcedSegments(assign []int, probs [][]float64, targetPhoneme func(idx int) string, targetVocabID func(idx int) int) []Segment {
	return GroupSegments(
		assign,
		func(idx int) bool { return idx == blankSentinel },
		targetPhoneme,
		func(frame, idx int) float64 { return probs[frame][targetVocabID(idx)] },
	)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
