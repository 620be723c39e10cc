// Package queue implements a stable, time-ordered priority queue of events,
// adapted from trader/internal/queue/memory_queue.go's mutex-guarded slice
// shape and generalized per pytrade/events_queue.py's datetime ordering:
// instead of a job's scheduling Priority/AvailableAt fields, items are
// ordered by Event.Datetime(), with a monotonic insertion sequence breaking
// ties so that events queued at the same instant drain in put order.
package queue

import (
	"container/heap"
	"errors"
	"fmt"
	"sync"

	"github.com/aristath/backtrade/backtraderr"
	"github.com/aristath/backtrade/events"
)

// ErrEmpty is returned by Get when the queue has nothing left to drain.
var ErrEmpty = errors.New("queue is empty")

type item struct {
	event events.Event
	seq   int64
}

type itemHeap []*item

func (h itemHeap) Len() int { return len(h) }

func (h itemHeap) Less(i, j int) bool {
	ti, tj := h[i].event.Datetime(), h[j].event.Datetime()
	if ti.Equal(tj) {
		return h[i].seq < h[j].seq
	}
	return ti.Before(tj)
}

func (h itemHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *itemHeap) Push(x any) { *h = append(*h, x.(*item)) }

func (h *itemHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return it
}

// Queue is a thread-safe, time-ordered priority queue of events.
type Queue struct {
	mu   sync.Mutex
	heap itemHeap
	seq  int64
}

// New returns an empty Queue.
func New() *Queue {
	q := &Queue{}
	heap.Init(&q.heap)
	return q
}

// Put enqueues event, stamping it with the next insertion sequence number.
func (q *Queue) Put(event events.Event) error {
	if event == nil {
		return fmt.Errorf("%w: only expecting Event objects in the queue", backtraderr.ErrTypeMismatch)
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.seq++
	heap.Push(&q.heap, &item{event: event, seq: q.seq})
	return nil
}

// Get removes and returns the earliest-dated event in the queue, breaking
// ties by insertion order.
func (q *Queue) Get() (events.Event, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.heap.Len() == 0 {
		return nil, ErrEmpty
	}
	it := heap.Pop(&q.heap).(*item)
	return it.event, nil
}

// Peek returns the earliest-dated event without removing it, or false if
// the queue is empty.
func (q *Queue) Peek() (events.Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.heap.Len() == 0 {
		return nil, false
	}
	return q.heap[0].event, true
}

// Len reports the number of events currently queued.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.heap.Len()
}
