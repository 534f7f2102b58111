package event

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Push after Close, and by Pop once a closed queue
// has been drained.
var ErrClosed = errors.New("event queue closed")

// Queue is an unbounded multi-producer, single-consumer FIFO.
//
// Push never blocks, so a slow consumer cannot stall a producer. Events from
// one producer are popped in the order that producer pushed them; there is
// no ordering across producers beyond arrival order.
type Queue struct {
	mu     sync.Mutex
	items  []Event
	closed bool

	// ready holds at most one token, set whenever items becomes non-empty
	// or the queue closes.
	ready chan struct{}
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{
		ready: make(chan struct{}, 1),
	}
}

// Push appends an event. It returns ErrClosed if the queue has been closed.
func (q *Queue) Push(ev Event) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	q.items = append(q.items, ev)
	q.mu.Unlock()

	q.signal()
	return nil
}

// Pop removes and returns the oldest event, blocking until one is
// available. It returns ctx.Err() if ctx is done first, and ErrClosed once
// the queue is closed and empty. Only one goroutine may call Pop.
func (q *Queue) Pop(ctx context.Context) (Event, error) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			ev := q.items[0]
			q.items[0] = nil
			q.items = q.items[1:]
			q.mu.Unlock()
			return ev, nil
		}
		closed := q.closed
		q.mu.Unlock()

		if closed {
			return nil, ErrClosed
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-q.ready:
		}
	}
}

// Close stops the queue from accepting events. Events already queued can
// still be popped. Close is idempotent.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	q.signal()
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *Queue) signal() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}
