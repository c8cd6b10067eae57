package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"

	"github.com/Phongsakorn0/Weather-data-processor/internal/domain"
	"github.com/Phongsakorn0/Weather-data-processor/internal/ports"
)

var cursorKey = []byte("tracker:cursor")

// Pebble keeps the cursor in an embedded pebble store.
type Pebble struct {
	db *pebble.DB
}

func OpenPebble(dir string) (*Pebble, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble %s: %w", dir, err)
	}
	return &Pebble{db: db}, nil
}

func (p *Pebble) Load() (domain.Cursor, bool, error) {
	val, closer, err := p.db.Get(cursorKey)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return domain.Cursor{}, false, nil
		}
		return domain.Cursor{}, false, err
	}
	defer closer.Close()

	var c domain.Cursor
	if err := json.Unmarshal(val, &c); err != nil {
		return domain.Cursor{}, false, fmt.Errorf("checkpoint parse: %w", err)
	}
	return c, !c.IsZero(), nil
}

func (p *Pebble) Save(c domain.Cursor) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return p.db.Set(cursorKey, data, pebble.Sync)
}

func (p *Pebble) Close() error {
	return p.db.Close()
}

var _ ports.Checkpoint = (*Pebble)(nil)
