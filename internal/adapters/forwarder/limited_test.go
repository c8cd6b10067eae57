package forwarder

import (
	"context"
	"testing"
	"time"

	"github.com/Phongsakorn0/Weather-data-processor/internal/domain"
)

type countingForwarder struct {
	calls int
}

func (c *countingForwarder) Send(context.Context, *domain.Record) error {
	c.calls++
	return nil
}

func (c *countingForwarder) Name() string { return "counting" }

func TestLimitedPassesThrough(t *testing.T) {
	next := &countingForwarder{}
	l := NewLimited(next, 1000, 5)

	for i := 0; i < 5; i++ {
		if err := l.Send(context.Background(), &domain.Record{}); err != nil {
			t.Fatalf("send %d: %v", i, err)
		}
	}
	if next.calls != 5 {
		t.Fatalf("expected 5 calls, got %d", next.calls)
	}
	if l.Name() != "counting+rate" {
		t.Fatalf("unexpected name %s", l.Name())
	}
}

func TestLimitedHonoursContext(t *testing.T) {
	next := &countingForwarder{}
	l := NewLimited(next, 0.001, 1)

	if err := l.Send(context.Background(), &domain.Record{}); err != nil {
		t.Fatalf("first send should use the burst token: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := l.Send(ctx, &domain.Record{})
	if err == nil {
		t.Fatalf("expected rate limit wait to fail")
	}
	if next.calls != 1 {
		t.Fatalf("expected a single forwarded call, got %d", next.calls)
	}
}
