// Package checkpoint persists the tracker cursor so a restart resumes
// where the previous process stopped.
package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Phongsakorn0/Weather-data-processor/internal/domain"
	"github.com/Phongsakorn0/Weather-data-processor/internal/ports"
)

const fileName = "cursor.json"

// File stores the cursor as a small JSON document, replaced atomically
// through a temp file and rename.
type File struct {
	mu   sync.Mutex
	path string
}

func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &File{path: filepath.Join(dir, fileName)}, nil
}

func (f *File) Load() (domain.Cursor, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Cursor{}, false, nil
		}
		return domain.Cursor{}, false, err
	}
	if len(data) == 0 {
		return domain.Cursor{}, false, nil
	}
	var c domain.Cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return domain.Cursor{}, false, fmt.Errorf("checkpoint parse: %w", err)
	}
	return c, !c.IsZero(), nil
}

func (f *File) Save(c domain.Cursor) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *File) Close() error { return nil }

var _ ports.Checkpoint = (*File)(nil)
