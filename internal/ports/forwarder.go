package ports

import (
	"context"

	"github.com/Phongsakorn0/Weather-data-processor/internal/domain"
)

// Forwarder delivers one record to the collection endpoint. Calls are
// independent; a non-nil error means the record was not accepted.
type Forwarder interface {
	Send(ctx context.Context, r *domain.Record) error
	Name() string
}
