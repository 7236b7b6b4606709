package queue

import (
	"context"
	"sync"
	"time"
)

// MemoryReceiver is an in-process Receiver backed by a slice, for tests
// and local runs with no broker. Completed/abandoned message bodies are
// recorded for assertions.
type MemoryReceiver struct {
	mu        sync.Mutex
	pending   [][]byte
	Completed [][]byte
	Abandoned [][]byte
}

// NewMemoryReceiver seeds the receiver with the given message bodies, in
// order.
func NewMemoryReceiver(bodies ...[]byte) *MemoryReceiver {
	return &MemoryReceiver{pending: bodies}
}

func (m *MemoryReceiver) Receive(ctx context.Context, maxCount int, maxWait time.Duration) ([]Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.pending) == 0 {
		return nil, nil
	}
	n := maxCount
	if n > len(m.pending) {
		n = len(m.pending)
	}
	batch := m.pending[:n]
	m.pending = m.pending[n:]

	msgs := make([]Message, len(batch))
	for i, body := range batch {
		b := body
		msgs[i] = Message{
			Body: b,
			Complete: func(context.Context) error {
				m.mu.Lock()
				m.Completed = append(m.Completed, b)
				m.mu.Unlock()
				return nil
			},
			Abandon: func(context.Context) error {
				m.mu.Lock()
				m.Abandoned = append(m.Abandoned, b)
				m.mu.Unlock()
				return nil
			},
		}
	}
	return msgs, nil
}

func (m *MemoryReceiver) Close(context.Context) error { return nil }
