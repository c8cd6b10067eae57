// Package fsscan selects and reads source files from the watched directory.
package fsscan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Phongsakorn0/Weather-data-processor/internal/ports"
)

type Scanner struct {
	dir    string
	prefix string
	now    func() time.Time
}

func NewScanner(dir, prefix string) *Scanner {
	return &Scanner{dir: dir, prefix: prefix, now: time.Now}
}

func (s *Scanner) Dir() string { return s.dir }

// List returns the eligible files of the directory in listing order.
// Subdirectories and names without the configured prefix are left out,
// as are entries that vanish between listing and stat.
func (s *Scanner) List(ctx context.Context) ([]ports.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", s.dir, err)
	}

	out := make([]ports.FileInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if s.prefix != "" && !strings.HasPrefix(e.Name(), s.prefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, ports.FileInfo{
			Name:    e.Name(),
			Path:    filepath.Join(s.dir, e.Name()),
			ModTime: info.ModTime(),
			Size:    info.Size(),
		})
	}
	return out, nil
}

// SelectLatest returns the file with the smallest age at scan time. The
// first entry wins a tie.
func (s *Scanner) SelectLatest(ctx context.Context) (ports.FileInfo, bool, error) {
	files, err := s.List(ctx)
	if err != nil {
		return ports.FileInfo{}, false, err
	}
	if len(files) == 0 {
		return ports.FileInfo{}, false, nil
	}

	now := s.now()
	best := 0
	bestAge := now.Sub(files[0].ModTime)
	for i := 1; i < len(files); i++ {
		if age := now.Sub(files[i].ModTime); age < bestAge {
			best, bestAge = i, age
		}
	}
	return files[best], true, nil
}

var _ ports.Scanner = (*Scanner)(nil)
