package queue

import (
	"context"
	"sync"
	"time"
)

// MemoryQueue is an in-process FIFO shared by the webhook and the workers
type MemoryQueue struct {
	mu          sync.Mutex
	items       [][]byte
	notify      chan struct{}
	pollTimeout time.Duration
}

// NewMemoryQueue creates a new MemoryQueue
func NewMemoryQueue(pollTimeout time.Duration) *MemoryQueue {
	return &MemoryQueue{
		notify:      make(chan struct{}, 1),
		pollTimeout: pollTimeout,
	}
}

// Push implements deps.UpdateQueue interface
func (q *MemoryQueue) Push(_ context.Context, raw []byte) error {
	q.mu.Lock()
	q.items = append(q.items, raw)
	q.mu.Unlock()

	q.signal()
	return nil
}

// Pop implements deps.UpdateQueue interface
func (q *MemoryQueue) Pop(ctx context.Context) ([]byte, error) {
	timer := time.NewTimer(q.pollTimeout)
	defer timer.Stop()

	for {
		if raw, ok := q.take(); ok {
			return raw, nil
		}

		select {
		case <-q.notify:
		case <-timer.C:
			return nil, ErrEmpty
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Len returns the number of queued documents
func (q *MemoryQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *MemoryQueue) take() ([]byte, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return nil, false
	}

	raw := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]

	// Wake another waiter if work remains
	if len(q.items) > 0 {
		q.signal()
	}

	return raw, true
}

func (q *MemoryQueue) signal() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}
