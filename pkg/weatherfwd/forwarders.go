package weatherfwd

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrChannelForwarderClosed is returned when a channel forwarder is used after being closed.
var ErrChannelForwarderClosed = errors.New("weatherfwd: channel forwarder closed")

// RecordHandler receives each record the cycle forwards.
type RecordHandler func(ctx context.Context, r Record) error

// NewCallbackForwarder adapts a function into a Forwarder.
func NewCallbackForwarder(name string, fn RecordHandler) Forwarder {
	if name == "" {
		name = "callback"
	}
	return &callbackForwarder{name: name, fn: fn}
}

// NewChannelForwarder exposes records on a channel; it returns the
// forwarder, the read-only channel and a close function the caller should
// invoke during shutdown. Send blocks until the record is received or ctx
// ends.
func NewChannelForwarder(name string, buffer int) (Forwarder, <-chan Record, func()) {
	if name == "" {
		name = "channel"
	}
	if buffer < 0 {
		buffer = 0
	}
	ch := make(chan Record, buffer)
	f := &channelForwarder{
		name:   name,
		ch:     ch,
		closed: make(chan struct{}),
	}
	return f, ch, f.close
}

type callbackForwarder struct {
	name string
	fn   RecordHandler
}

func (f *callbackForwarder) Send(ctx context.Context, r *Record) error {
	if f.fn == nil {
		return fmt.Errorf("callback forwarder %q: nil handler", f.name)
	}
	if r == nil {
		return nil
	}
	return f.fn(ctx, *r)
}

func (f *callbackForwarder) Name() string { return f.name }

type channelForwarder struct {
	name   string
	ch     chan Record
	closed chan struct{}
	mu     sync.RWMutex
	done   bool
	once   sync.Once
}

func (f *channelForwarder) Send(ctx context.Context, r *Record) error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.done {
		return ErrChannelForwarderClosed
	}
	if r == nil {
		return nil
	}

	select {
	case <-f.closed:
		return ErrChannelForwarderClosed
	case <-ctx.Done():
		return ctx.Err()
	case f.ch <- *r:
		return nil
	}
}

func (f *channelForwarder) Name() string { return f.name }

// close wakes blocked senders before closing the channel under the write lock.
func (f *channelForwarder) close() {
	f.once.Do(func() {
		close(f.closed)
		f.mu.Lock()
		f.done = true
		close(f.ch)
		f.mu.Unlock()
	})
}
