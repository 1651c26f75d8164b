package queue

import "sync"

// Queue is an unbounded multi-producer single-consumer FIFO. Push never
// blocks and messages are delivered in the order each sender enqueued
// them; Next blocks only while the queue is empty.
type Queue struct {
	mu     sync.Mutex
	items  []any
	head   int
	closed bool
	wake   chan struct{}
}

// New creates an empty queue
func New() *Queue {
	return &Queue{wake: make(chan struct{}, 1)}
}

// Push enqueues a message. It reports false once the queue is closed.
func (q *Queue) Push(msg any) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.items = append(q.items, msg)

	// wake a blocked Next; a pending token is enough, Next rechecks
	select {
	case q.wake <- struct{}{}:
	default:
	}
	return true
}

// Next dequeues the oldest message, blocking while the queue is empty.
// It reports false once the queue is closed and fully drained.
func (q *Queue) Next() (any, bool) {
	for {
		q.mu.Lock()
		if msg, ok := q.pop(); ok {
			q.mu.Unlock()
			return msg, true
		}
		if q.closed {
			q.mu.Unlock()
			return nil, false
		}
		q.mu.Unlock()
		<-q.wake
	}
}

// TryNext dequeues without blocking. It reports false when the queue is
// empty.
func (q *Queue) TryNext() (any, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pop()
}

// Len reports how many messages are waiting.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

// Closed reports whether Close has been called.
func (q *Queue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Close stops the queue accepting new messages. Messages already queued
// remain readable.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// pop removes the head item. Callers hold q.mu.
func (q *Queue) pop() (any, bool) {
	if q.head >= len(q.items) {
		return nil, false
	}
	msg := q.items[q.head]
	q.items[q.head] = nil
	q.head++

	// reuse the backing array once drained
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}
	return msg, true
}
