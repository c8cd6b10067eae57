// Package tracker remembers which file and line were last consumed.
package tracker

import (
	"sync"

	"github.com/Phongsakorn0/Weather-data-processor/internal/domain"
)

// DataStart is the first line index after the preamble.
const DataStart = domain.PreambleLines

// Tracker is safe for concurrent use; every operation holds the lock for
// its whole read-modify-write.
type Tracker struct {
	mu     sync.Mutex
	file   string
	offset int
}

func New() *Tracker {
	return &Tracker{offset: DataStart - 1}
}

// ResolveStart returns the first line index to read from file. A file
// other than the active one becomes active and starts at DataStart.
func (t *Tracker) ResolveStart(file string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if file != "" && file == t.file {
		return t.offset + 1
	}
	t.file = file
	t.offset = DataStart - 1
	return DataStart
}

// Advance records offset as the last consumed line. Offsets behind the
// current one are ignored and reported as false.
func (t *Tracker) Advance(offset int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if offset < t.offset {
		return false
	}
	t.offset = offset
	return true
}

func (t *Tracker) Snapshot() domain.Cursor {
	t.mu.Lock()
	defer t.mu.Unlock()
	return domain.Cursor{File: t.file, Offset: t.offset}
}

// Restore seeds the tracker from a persisted cursor.
func (t *Tracker) Restore(c domain.Cursor) {
	if c.IsZero() {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.file = c.File
	t.offset = c.Offset
	if t.offset < DataStart-1 {
		t.offset = DataStart - 1
	}
}
