package ports

import "github.com/Phongsakorn0/Weather-data-processor/internal/domain"

// Checkpoint persists the tracker cursor across restarts.
type Checkpoint interface {
	Load() (domain.Cursor, bool, error)
	Save(c domain.Cursor) error
	Close() error
}
