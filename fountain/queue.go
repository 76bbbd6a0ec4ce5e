package fountain

import (
	"github.com/hrissan/ur/circular"
)

// partQueue holds parts waiting to be processed by the decoder.
type partQueue interface {
	Len() int
	// false if the queue is at capacity, the part is not added
	PushBack(part *indexedPart) bool
	PopFront() *indexedPart
	Cap() int // 0 for unbounded
	Clear()
}

type growableQueue struct {
	buf circular.Buffer[*indexedPart]
}

func (q *growableQueue) Len() int { return q.buf.Len() }

func (q *growableQueue) PushBack(part *indexedPart) bool {
	q.buf.PushBack(part)
	return true
}

func (q *growableQueue) PopFront() *indexedPart { return q.buf.PopFront() }

func (q *growableQueue) Cap() int { return 0 }

func (q *growableQueue) Clear() { q.buf.Clear() }

// fixedQueue never allocates after construction. Storage is rounded up to a
// power of two, but only capacity elements are admitted.
type fixedQueue struct {
	buf      circular.BufferExt[*indexedPart]
	storage  []*indexedPart
	capacity int
}

func newFixedQueue(capacity int) *fixedQueue {
	return &fixedQueue{
		storage:  make([]*indexedPart, circular.StorageSize(capacity)),
		capacity: capacity,
	}
}

func (q *fixedQueue) Len() int { return q.buf.Len() }

func (q *fixedQueue) PushBack(part *indexedPart) bool {
	if q.buf.Len() >= q.capacity {
		return false
	}
	q.buf.PushBack(q.storage, part)
	return true
}

func (q *fixedQueue) PopFront() *indexedPart { return q.buf.PopFront(q.storage) }

func (q *fixedQueue) Cap() int { return q.capacity }

func (q *fixedQueue) Clear() { q.buf.Clear(q.storage) }
