// Package drift maintains a rolling phoneme-distribution baseline and
// scores each submission's histogram against it by KL divergence.
package drift

import "math"

// alpha is the exponential-moving-average smoothing factor applied to the
// baseline on every update.
const alpha = 0.01

// eps floors probabilities away from zero before taking logs.
const eps = 1e-8

// Histogram builds a phoneme-ID histogram of length vocabSize from a
// FrameAssignment, excluding the blank index (0).
func Histogram(frameIDs []int, vocabSize int) []float64 {
	h := make([]float64, vocabSize)
	for _, id := range frameIDs {
		if id > 0 && id < vocabSize {
			h[id]++
		}
	}
	return h
}

// KLDivergence computes KL(p || q), adding eps to both histograms and
// normalising each to a probability distribution first. The shorter
// vector is zero-padded before combining.
func KLDivergence(p, q []float64) float64 {
	n := len(p)
	if len(q) > n {
		n = len(q)
	}
	pp := make([]float64, n)
	qq := make([]float64, n)
	var sp, sq float64
	for i := 0; i < n; i++ {
		if i < len(p) {
			pp[i] = p[i] + eps
		} else {
			pp[i] = eps
		}
		if i < len(q) {
			qq[i] = q[i] + eps
		} else {
			qq[i] = eps
		}
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

// EMAUpdate combines a baseline with a new observation: new[i] = (1-alpha)
// * base[i] + alpha * h[i], zero-padding the shorter vector first.
func EMAUpdate(base, h []float64) []float64 {
	n := len(base)
	if len(h) > n {
		n = len(h)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var b, v float64
		if i < len(base) {
			b = base[i]
		}
		if i < len(h) {
			v = h[i]
		}
		out[i] = (1-alpha)*b + alpha*v
	}
	return out
}
