package ports

import (
	"context"
	"time"
)

// FileInfo identifies a candidate source file. Name is the identifier
// the tracker compares; Path is what the reader opens.
type FileInfo struct {
	Name    string
	Path    string
	ModTime time.Time
	Size    int64
}

// Scanner picks the file to ingest from the watched directory.
type Scanner interface {
	SelectLatest(ctx context.Context) (FileInfo, bool, error)
}

// LineReader loads a source file as a sequence of lines.
type LineReader interface {
	ReadLines(ctx context.Context, path string) ([]string, error)
}
