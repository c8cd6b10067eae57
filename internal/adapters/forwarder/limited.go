package forwarder

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/Phongsakorn0/Weather-data-processor/internal/domain"
	"github.com/Phongsakorn0/Weather-data-processor/internal/ports"
)

// Limited paces calls to the wrapped forwarder with a token bucket. It
// waits for a token; it never retries.
type Limited struct {
	next    ports.Forwarder
	limiter *rate.Limiter
}

func NewLimited(next ports.Forwarder, perSecond float64, burst int) *Limited {
	if burst <= 0 {
		burst = 1
	}
	return &Limited{next: next, limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

func (l *Limited) Name() string { return l.next.Name() + "+rate" }

func (l *Limited) Send(ctx context.Context, r *domain.Record) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return l.next.Send(ctx, r)
}

var _ ports.Forwarder = (*Limited)(nil)
