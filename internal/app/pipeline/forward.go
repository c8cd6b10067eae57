package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Phongsakorn0/Weather-data-processor/internal/ports"
)

// ErrForwarderPanic marks a send whose forwarder panicked.
var ErrForwarderPanic = errors.New("pipeline: forwarder panicked")

// forward drains the outbox. Records go out in batches of Concurrency;
// a batch is sent in parallel and fully resolved before the next one
// starts, so Concurrency 1 keeps strict call order. Failures are logged
// and counted, never retried.
func (c *Cycle) forward(ctx context.Context, cycleID string) (sent, failed int) {
	width := c.pol.Concurrency
	if width < 1 {
		width = 1
	}

	for {
		batch := c.st.Outbox.DequeueBatch(width)
		if len(batch) == 0 {
			break
		}

		errs := make([]error, len(batch))
		if len(batch) == 1 {
			errs[0] = c.send(ctx, batch[0])
		} else {
			var wg sync.WaitGroup
			for i := range batch {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					errs[i] = c.send(ctx, batch[i])
				}(i)
			}
			wg.Wait()
		}

		for i, err := range errs {
			if err != nil {
				failed++
				c.obs.LogError("forward_failed", err,
					ports.Field{Key: "cycle", Value: cycleID},
					ports.Field{Key: "forwarder", Value: c.st.Forwarder.Name()},
					ports.Field{Key: "line", Value: batch[i].Line})
				continue
			}
			sent++
		}
		c.obs.SetGauge(ports.MetricOutboxLength, float64(c.st.Outbox.Len()))
	}
	return sent, failed
}

// send runs one forwarder call. A panic inside the forwarder fails only
// that record.
func (c *Cycle) send(ctx context.Context, item ports.QueuedRecord) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrForwarderPanic, r)
		}
	}()
	if c.pol.SendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.pol.SendTimeout)
		defer cancel()
	}
	start := time.Now()
	err = c.st.Forwarder.Send(ctx, item.Record)
	c.obs.ObserveLatency(ports.MetricForwardLatency, time.Since(start).Seconds())
	return err
}
