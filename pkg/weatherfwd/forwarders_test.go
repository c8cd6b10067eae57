package weatherfwd

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewCallbackForwarder(t *testing.T) {
	var received []Record
	fwd := NewCallbackForwarder("cb", func(_ context.Context, r Record) error {
		received = append(received, r)
		return nil
	})

	in := &Record{Pressure: 1012.5, PM25: 7, Timestamp: "2024-01-02T03:04:05Z"}
	if err := fwd.Send(context.Background(), in); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if len(received) != 1 || received[0] != *in {
		t.Fatalf("unexpected records %+v", received)
	}
	if fwd.Name() != "cb" {
		t.Fatalf("unexpected name %s", fwd.Name())
	}
}

func TestNewCallbackForwarderNilHandler(t *testing.T) {
	fwd := NewCallbackForwarder("", nil)
	if err := fwd.Send(context.Background(), &Record{}); err == nil {
		t.Fatalf("expected error when callback is nil")
	}
	if fwd.Name() != "callback" {
		t.Fatalf("expected default name, got %s", fwd.Name())
	}
}

func TestNewChannelForwarder(t *testing.T) {
	fwd, ch, closeFn := NewChannelForwarder("chan", 0)
	defer closeFn()

	errCh := make(chan error, 1)
	go func() {
		errCh <- fwd.Send(context.Background(), &Record{Temperature: 31.2})
	}()

	select {
	case r := <-ch:
		if r.Temperature != 31.2 {
			t.Fatalf("unexpected record %+v", r)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for record")
	}
	if err := <-errCh; err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := fwd.Send(ctx, &Record{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error on unread channel, got %v", err)
	}

	closeFn()
	closeFn()
	if err := fwd.Send(context.Background(), &Record{}); !errors.Is(err, ErrChannelForwarderClosed) {
		t.Fatalf("expected ErrChannelForwarderClosed, got %v", err)
	}
	if _, ok := <-ch; ok {
		t.Fatalf("expected channel to be closed")
	}
}
