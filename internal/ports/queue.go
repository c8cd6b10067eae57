package ports

import "github.com/Phongsakorn0/Weather-data-processor/internal/domain"

// QueuedRecord is a parsed record together with its source line index.
type QueuedRecord struct {
	Line   int
	Record *domain.Record
}

// RecordQueue buffers parsed records between the parse and forward stages.
type RecordQueue interface {
	Enqueue(line int, r *domain.Record) bool
	DequeueBatch(max int) []QueuedRecord
	Len() int
}
