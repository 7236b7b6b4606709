package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/blobfetch"
	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/config"
	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/g2p"
	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/inference"
	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/lexicon"
	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/queue"
	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/store"
	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/vocab"
	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/worker"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg := config.Load()

	vocabulary, err := loadVocabulary(cfg.PhonemeListPath)
	if err != nil {
		slog.Error("load vocabulary", "error", err)
		os.Exit(1)
	}

	st, err := store.Open(cfg.StorageURL)
	if err != nil {
		slog.Error("open store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	backend, closeBackend := initBackend(cfg, vocabulary)
	defer closeBackend()

	resolver := &g2p.Resolver{
		Backend:  g2pBackend(cfg),
		Language: cfg.G2PLanguage,
		Cache:    st,
	}

	lex := &lexicon.Source{
		Store:          st,
		Words:          resolver,
		DefaultLexicon: cfg.DefaultLexicon,
	}

	handler := &worker.Handler{
		Blob:       blobfetch.New(cfg.MaxInFlight),
		Backend:    backend,
		Vocabulary: vocabulary,
		Lexicon:    lex,
		Store:      st,
	}

	receiver, err := initReceiver(cfg)
	if err != nil {
		slog.Error("open queue receiver", "error", err)
		os.Exit(1)
	}

	loop := &worker.Loop{
		Receiver:     receiver,
		Handler:      handler,
		BatchSize:    cfg.BatchSize,
		BatchMaxWait: time.Duration(cfg.BatchMaxWaitSecs) * time.Second,
		MaxInFlight:  cfg.MaxInFlight,
	}

	ctx, cancel := context.WithCancel(context.Background())

	mux := http.NewServeMux()
	registerRoutes(mux, backend)
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: mux}

	go func() {
		slog.Info("http server starting", "addr", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("http server failed", "error", err)
		}
	}()

	go func() {
		slog.Info("worker loop starting", "queue", cfg.QueueName, "maxInFlight", cfg.MaxInFlight)
		if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
			slog.Error("worker loop stopped unexpectedly", "error", err)
		}
	}()

	awaitShutdown(cancel, httpSrv, receiver)
}

func awaitShutdown(cancel context.CancelFunc, httpSrv *http.Server, receiver queue.Receiver) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("shutting down", "signal", sig)

	cancel()

	ctx, done := context.WithTimeout(context.Background(), 30*time.Second)
	defer done()

	if err := receiver.Close(ctx); err != nil {
		slog.Warn("queue receiver close", "error", err)
	}
	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Warn("http server shutdown", "error", err)
	}
	slog.Info("worker stopped")
}

func loadVocabulary(path string) (*vocab.Vocabulary, error) {
	if path == "" {
		return vocab.Default(), nil
	}
	return vocab.Load(path)
}

func initBackend(cfg config.Config, vocabulary *vocab.Vocabulary) (inference.Backend, func()) {
	fallback := inference.NewFallback(vocabulary)
	if cfg.ASRModelPath == "" && cfg.SERModelPath == "" {
		slog.Info("no onnx models configured, using deterministic fallback backend")
		return fallback, func() {}
	}
	onnxBackend, err := inference.NewONNXBackend(inference.ONNXConfig{
		SharedLibraryPath: cfg.OnnxLibraryPath,
		ASRModelPath:      cfg.ASRModelPath,
		SERModelPath:      cfg.SERModelPath,
	}, fallback)
	if err != nil {
		slog.Warn("onnx backend init failed, using fallback backend", "error", err)
		return fallback, func() {}
	}
	return onnxBackend, func() { onnxBackend.Close() }
}

func g2pBackend(cfg config.Config) g2p.Backend {
	switch cfg.G2PBackend {
	case "phonetisaurus":
		return g2p.NewPhonetisaurus("", cfg.G2PModelPath)
	case "sequitur":
		return g2p.NewSequitur("", cfg.G2PModelPath)
	default:
		return g2p.EnglishBackend{}
	}
}

func initReceiver(cfg config.Config) (queue.Receiver, error) {
	if cfg.BrokerURL == "" {
		slog.Warn("no broker configured, queue receiver is idle")
		return queue.NewMemoryReceiver(), nil
	}
	return queue.NewAMQPReceiver(cfg.BrokerURL, cfg.QueueName, cfg.MaxInFlight)
}
