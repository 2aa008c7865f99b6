// Package conc holds the concurrent pipeline primitives that move decoded
// messages from the network thread to consumer callbacks: an SPSC queue, a
// single drain link and a broadcast fan-out link.
package conc

import "sync/atomic"

type node[T any] struct {
	next atomic.Pointer[node[T]]
	val  T
}

// Queue is an unbounded single-producer/single-consumer queue. Push and
// Pop never block and never contend on a lock; order is FIFO. Exactly one
// goroutine may push and exactly one may pop.
type Queue[T any] struct {
	head *node[T] // consumer side
	tail *node[T] // producer side
}

func NewQueue[T any]() *Queue[T] {
	stub := &node[T]{}
	return &Queue[T]{head: stub, tail: stub}
}

// Push enqueues one item. Bounded only by available memory.
func (q *Queue[T]) Push(val T) {
	n := &node[T]{val: val}
	q.tail.next.Store(n)
	q.tail = n
}

// Pop dequeues one item, reporting false when the queue is empty.
func (q *Queue[T]) Pop() (T, bool) {
	next := q.head.next.Load()
	if next == nil {
		var zero T
		return zero, false
	}
	val := next.val
	var zero T
	next.val = zero // drop the reference so drained items can be collected
	q.head = next
	return val, true
}
