package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/yasserebrahimi/hearloveen-ai-worker/internal/queue"
)

// Loop pulls batches from a queue.Receiver and dispatches each message to
// a Handler, bounding concurrent in-flight messages with a semaphore.
type Loop struct {
	Receiver     queue.Receiver
	Handler      *Handler
	BatchSize    int
	BatchMaxWait time.Duration
	MaxInFlight  int
}

// Run pulls and processes batches until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	sem := make(chan struct{}, l.MaxInFlight)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msgs, err := l.Receiver.Receive(ctx, l.BatchSize, l.BatchMaxWait)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Error("queue receive failed", "error", err)
			continue
		}
		if len(msgs) == 0 {
			continue
		}

		for _, m := range msgs {
			msg := m
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}
			go func() {
				defer func() { <-sem }()
				l.process(ctx, msg)
			}()
		}
	}
}

func (l *Loop) process(ctx context.Context, msg queue.Message) {
	if err := l.Handler.Handle(ctx, msg.Body); err != nil {
		slog.Error("message processing failed", "error", err)
		if abErr := msg.Abandon(ctx); abErr != nil {
			slog.Error("abandon failed", "error", abErr)
		}
		return
	}
	if err := msg.Complete(ctx); err != nil {
		slog.Error("complete failed", "error", err)
	}
}
