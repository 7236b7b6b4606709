// Package metrics exposes the worker's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "requests_total",
		Help: "Total submission messages processed",
	})

	ErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "errors_total",
		Help: "Total submissions that failed and were abandoned",
	})

	ProcessingSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "processing_seconds",
		Help:    "End-to-end per-submission processing latency",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
	})

	PhonemeKL = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "phoneme_kl",
		Help: "KL divergence of the latest submission's phoneme histogram vs the rolling baseline",
	})
)
