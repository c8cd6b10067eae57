package queue

import (
	"sync"

	"github.com/Phongsakorn0/Weather-data-processor/internal/domain"
	"github.com/Phongsakorn0/Weather-data-processor/internal/ports"
)

// MemQueue is a bounded in-memory outbox that preserves FIFO ordering.
type MemQueue struct {
	mu   sync.Mutex
	data []ports.QueuedRecord
	cap  int
}

// NewMemQueue builds a queue; capacity <= 0 means unbounded.
func NewMemQueue(capacity int) *MemQueue {
	size := capacity
	if size <= 0 || size > 4096 {
		size = 4096
	}
	return &MemQueue{
		data: make([]ports.QueuedRecord, 0, size),
		cap:  capacity,
	}
}

func (q *MemQueue) Enqueue(line int, r *domain.Record) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.cap > 0 && len(q.data) >= q.cap {
		return false
	}
	q.data = append(q.data, ports.QueuedRecord{Line: line, Record: r})
	return true
}

func (q *MemQueue) DequeueBatch(max int) []ports.QueuedRecord {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.data) == 0 {
		return nil
	}
	if max <= 0 || max > len(q.data) {
		max = len(q.data)
	}
	out := make([]ports.QueuedRecord, max)
	copy(out, q.data[:max])
	q.data = append(q.data[:0], q.data[max:]...)
	return out
}

func (q *MemQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.data)
}

var _ ports.RecordQueue = (*MemQueue)(nil)
