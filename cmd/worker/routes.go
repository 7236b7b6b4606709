package main

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/inference"
)

// registerRoutes wires the worker's small HTTP surface: liveness/readiness
// and Prometheus scraping. The worker's real work happens on the queue
// loop, not through HTTP.
func registerRoutes(mux *http.ServeMux, backend inference.Backend) {
	mux.HandleFunc("/health", handleHealth(backend))
	mux.Handle("/metrics", promhttp.Handler())
}

func handleHealth(backend inference.Backend) http.HandlerFunc {
	onnx, onnxBacked := backend.(*inference.ONNXBackend)
	return func(w http.ResponseWriter, r *http.Request) {
		asrLoaded, serLoaded := false, false
		if onnxBacked {
			asrLoaded, serLoaded = onnx.ASRLoaded(), onnx.SERLoaded()
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status":     "ok",
			"asr_loaded": asrLoaded,
			"ser_loaded": serLoaded,
		})
	}
}
