package action

import (
	"errors"
	"sync"
)

// ErrClosed is returned by Send after the queue has been closed. A producer
// observing it means the consumer exited while producers were still live,
// which is a programming error; callers treat it as fatal.
var ErrClosed = errors.New("action queue closed")

// Queue is an unbounded multi-producer, single-consumer FIFO of actions.
// Send never blocks and TryRecv never blocks; there is no waiting receive
// because the orchestrator only drains between events. The zero value is
// not usable; call NewQueue.
type Queue struct {
	mu     sync.Mutex
	items  []Action
	closed bool
}

// NewQueue returns an empty open queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Send appends a to the queue. It fails only when the queue is closed.
func (q *Queue) Send(a Action) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrClosed
	}
	q.items = append(q.items, a)
	return nil
}

// TryRecv removes and returns the oldest action. ok is false when the queue
// is empty.
func (q *Queue) TryRecv() (a Action, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil, false
	}
	a = q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return a, true
}

// Len reports the number of queued actions.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close marks the queue closed. Subsequent Sends fail with ErrClosed;
// already queued actions remain receivable.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
}
