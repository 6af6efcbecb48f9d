package event

import "sync"

// Queue is an unbounded FIFO for deferred work: lifecycle messages waiting
// for a safe delivery point, teardown tasks waiting for the event loop.
// Entries are recycled through a free list so steady-state traffic does not
// allocate.
//
// The zero value is ready to use.
type Queue[T any] struct {
	mu    sync.Mutex
	head  *entry[T]
	tail  *entry[T]
	free  *entry[T]
	count int
}

type entry[T any] struct {
	v    T
	next *entry[T]
}

func (q *Queue[T]) Push(v T) {
	q.mu.Lock()
	e := q.free
	if e == nil {
		e = &entry[T]{}
	} else {
		q.free = e.next
		e.next = nil
	}
	e.v = v
	if q.tail == nil {
		q.head = e
	} else {
		q.tail.next = e
	}
	q.tail = e
	q.count++
	q.mu.Unlock()
}

// Pop removes and returns the oldest entry. The second return is false when
// the queue is empty.
func (q *Queue[T]) Pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	e := q.head
	if e == nil {
		var zero T
		return zero, false
	}
	q.head = e.next
	if q.head == nil {
		q.tail = nil
	}
	q.count--

	v := e.v
	var zero T
	e.v = zero
	e.next = q.free
	q.free = e
	return v, true
}

// Drain pops entries one at a time and hands each to fn, until the queue is
// empty. fn runs without the queue lock held, so it may push further entries;
// those are drained in the same call. Returns the number delivered.
func (q *Queue[T]) Drain(fn func(T)) int {
	n := 0
	for {
		v, ok := q.Pop()
		if !ok {
			return n
		}
		fn(v)
		n++
	}
}

func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Clear discards all queued entries without delivering them.
func (q *Queue[T]) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for e := q.head; e != nil; e = e.next {
		var zero T
		e.v = zero
	}
	if q.tail != nil {
		q.tail.next = q.free
		q.free = q.head
	}
	q.head = nil
	q.tail = nil
	q.count = 0
}
