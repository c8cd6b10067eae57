package fsscan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Phongsakorn0/Weather-data-processor/internal/ports"
)

// ErrFileTooLarge is returned when a source file exceeds the read limit.
var ErrFileTooLarge = errors.New("fsscan: file exceeds size limit")

// Reader reads a whole file per call. Invalid UTF-8 is replaced rather
// than rejected.
type Reader struct {
	maxBytes int64
}

// NewReader builds a reader; maxBytes <= 0 disables the limit.
func NewReader(maxBytes int64) *Reader {
	return &Reader{maxBytes: maxBytes}
}

func (r *Reader) ReadLines(ctx context.Context, path string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var src io.Reader = f
	if r.maxBytes > 0 {
		src = io.LimitReader(f, r.maxBytes+1)
	}
	raw, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if r.maxBytes > 0 && int64(len(raw)) > r.maxBytes {
		return nil, fmt.Errorf("%w: %s larger than %d bytes", ErrFileTooLarge, path, r.maxBytes)
	}
	return splitLines(strings.ToValidUTF8(string(raw), "\uFFFD")), nil
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

var _ ports.LineReader = (*Reader)(nil)
