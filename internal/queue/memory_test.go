package queue

import (
	"context"
	"testing"
	"time"
)

func TestMemoryReceiverBatchesUpToMaxCount(t *testing.T) {
	r := NewMemoryReceiver([]byte("a"), []byte("b"), []byte("c"))
	msgs, err := r.Receive(context.Background(), 2, time.Second)
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}

	msgs2, err := r.Receive(context.Background(), 2, time.Second)
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if len(msgs2) != 1 {
		t.Fatalf("expected 1 remaining message, got %d", len(msgs2))
	}
}

func TestMemoryReceiverEmptyReturnsNoMessages(t *testing.T) {
	r := NewMemoryReceiver()
	msgs, err := r.Receive(context.Background(), 5, time.Second)
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("expected no messages, got %d", len(msgs))
	}
}

func TestMemoryReceiverTracksCompleteAndAbandon(t *testing.T) {
	r := NewMemoryReceiver([]byte("x"), []byte("y"))
	msgs, err := r.Receive(context.Background(), 2, time.Second)
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if err := msgs[0].Complete(context.Background()); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if err := msgs[1].Abandon(context.Background()); err != nil {
		t.Fatalf("Abandon: %v", err)
	}
	if len(r.Completed) != 1 || string(r.Completed[0]) != "x" {
		t.Fatalf("unexpected Completed: %v", r.Completed)
	}
	if len(r.Abandoned) != 1 || string(r.Abandoned[0]) != "y" {
		t.Fatalf("unexpected Abandoned: %v", r.Abandoned)
	}
}
