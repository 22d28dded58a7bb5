package util

import (
	"runtime"
	"sync/atomic"
)

// node is a single element of the queue
type node[T any] struct {
	value *T
	next  atomic.Pointer[node[T]]
}

// LockFreeMPSC is a lock-free multi-producer single-consumer queue.
//
//   - Push may be called from any number of goroutines
//   - Pop and Drain must only be called by one goroutine at a time
//   - Items pushed concurrently are ordered by completion of their push
//
// Unlike a channel the queue is unbounded and never blocks, the consumer polls it.
type LockFreeMPSC[T any] struct {
	head   atomic.Pointer[node[T]] // sentinel, head.next is the oldest item
	tail   atomic.Pointer[node[T]]
	size   atomic.Int64
	closed atomic.Bool
}

// NewLockFreeMPSC creates an empty queue
func NewLockFreeMPSC[T any]() *LockFreeMPSC[T] {
	sentinel := &node[T]{}
	q := &LockFreeMPSC[T]{}
	q.head.Store(sentinel)
	q.tail.Store(sentinel)
	return q
}

// Push appends value to the queue.
// Returns false if value is nil or the queue is closed.
func (q *LockFreeMPSC[T]) Push(value *T) bool {
	if value == nil || q.closed.Load() {
		return false
	}

	newNode := &node[T]{value: value}
	var backoff uint8

	for {
		tail := q.tail.Load()
		next := tail.next.Load()

		if next == nil {
			if tail.next.CompareAndSwap(nil, newNode) {
				// another producer may already have moved the tail, that is fine
				q.tail.CompareAndSwap(tail, newNode)
				q.size.Add(1)
				return true
			}
		} else {
			// help a producer that appended but did not move the tail yet
			q.tail.CompareAndSwap(tail, next)
		}

		// spin while contention is low, yield once it grows
		if backoff < 10 {
			backoff++
			for i := 0; i < 1<<backoff; i++ {
				runtime.Gosched()
			}
		}
		runtime.Gosched()
	}
}

// Pop removes and returns the oldest item without blocking
func (q *LockFreeMPSC[T]) Pop() (*T, bool) {
	head := q.head.Load()
	next := head.next.Load()
	if next == nil {
		return nil, false
	}

	value := next.value
	q.head.Store(next)
	// next is the new sentinel, release the value for the gc
	next.value = nil
	q.size.Add(-1)
	return value, true
}

// Drain pops up to max items (all items if max <= 0)
func (q *LockFreeMPSC[T]) Drain(max int) []*T {
	var items []*T
	for max <= 0 || len(items) < max {
		value, ok := q.Pop()
		if !ok {
			break
		}
		items = append(items, value)
	}
	return items
}

// Close rejects further pushes. Items already queued can still be popped.
func (q *LockFreeMPSC[T]) Close() {
	q.closed.Store(true)
}

// IsClosed returns true if the queue is closed
func (q *LockFreeMPSC[T]) IsClosed() bool {
	return q.closed.Load()
}

// Len returns the approximate number of queued items
func (q *LockFreeMPSC[T]) Len() int {
	if n := q.size.Load(); n > 0 {
		return int(n)
	}
	return 0
}
