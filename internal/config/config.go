// Package config collects worker tuning from the environment into one
// struct built once at startup and passed explicitly into constructors.
package config

import (
	"runtime"

	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/env"
)

// Config holds every environment-driven knob for the worker.
type Config struct {
	QueueName  string
	BrokerURL  string
	StorageURL string

	ASRModelPath     string
	SERModelPath     string
	OnnxLibraryPath  string
	PhonemeListPath  string
	DefaultLexicon   string
	G2PBackend       string
	G2PModelPath     string
	G2PLanguage      string
	MaxInFlight      int
	HTTPAddr         string
	BatchSize        int
	BatchMaxWaitSecs int
}

// Load reads all worker configuration from the environment.
func Load() Config {
	return Config{
		QueueName:        env.Str("WORKER_QUEUE_NAME", "audio-submitted"),
		BrokerURL:        env.Str("WORKER_BROKER_URL", ""),
		StorageURL:       env.Str("WORKER_STORAGE_URL", ""),
		ASRModelPath:     env.Str("WORKER_ASR_MODEL_PATH", ""),
		SERModelPath:     env.Str("WORKER_SER_MODEL_PATH", ""),
		OnnxLibraryPath:  env.Str("WORKER_ONNX_LIBRARY_PATH", ""),
		PhonemeListPath:  env.Str("WORKER_PHONEME_LIST_PATH", ""),
		DefaultLexicon:   env.Str("WORKER_DEFAULT_LEXICON", ""),
		G2PBackend:       env.Str("WORKER_G2P_BACKEND", "english"),
		G2PModelPath:     env.Str("WORKER_G2P_MODEL_PATH", ""),
		G2PLanguage:      env.Str("WORKER_G2P_LANGUAGE", "auto"),
		MaxInFlight:      env.Int("WORKER_MAX_IN_FLIGHT", runtime.NumCPU()),
		HTTPAddr:         env.Str("WORKER_HTTP_ADDR", ":8000"),
		BatchSize:        env.Int("WORKER_BATCH_SIZE", 5),
		BatchMaxWaitSecs: env.Int("WORKER_BATCH_MAX_WAIT_SECS", 5),
	}
}
