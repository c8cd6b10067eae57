package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adhocore/gronx"

	"github.com/Phongsakorn0/Weather-data-processor/internal/ports"
)

// DefaultInterval is used when neither an interval nor a cron expression is set.
const DefaultInterval = 60 * time.Second

// Runner is one unit of scheduled work.
type Runner interface {
	Run(ctx context.Context) Report
}

// Driver triggers a Runner on a fixed interval or a cron schedule. Runs
// never overlap: ticks that arrive while a run is in progress collapse
// into a single pending tick.
type Driver struct {
	runner Runner
	pol    ports.Policy
	obs    ports.Observability
	now    func() time.Time
}

func NewDriver(r Runner, pol ports.Policy, obs ports.Observability) (*Driver, error) {
	if r == nil {
		return nil, errors.New("pipeline: runner is nil")
	}
	if obs == nil {
		return nil, errors.New("pipeline: observability is nil")
	}
	if pol.Cron != "" && !gronx.IsValid(pol.Cron) {
		return nil, fmt.Errorf("pipeline: invalid cron expression %q", pol.Cron)
	}
	if pol.Cron == "" && pol.Interval <= 0 {
		pol.Interval = DefaultInterval
	}
	return &Driver{runner: r, pol: pol, obs: obs, now: time.Now}, nil
}

// Run blocks until ctx is cancelled. A failing or panicking run is logged
// and the schedule continues.
func (d *Driver) Run(ctx context.Context) error {
	if !d.pol.SkipInitial {
		d.runOnce(ctx)
	}
	if d.pol.Cron != "" {
		return d.runCron(ctx)
	}
	return d.runInterval(ctx)
}

func (d *Driver) runInterval(ctx context.Context) error {
	ticker := time.NewTicker(d.pol.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			d.runOnce(ctx)
		}
	}
}

func (d *Driver) runCron(ctx context.Context) error {
	for {
		next, err := gronx.NextTickAfter(d.pol.Cron, d.now(), false)
		if err != nil {
			return fmt.Errorf("pipeline: next cron tick: %w", err)
		}
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
			d.runOnce(ctx)
		}
	}
}

func (d *Driver) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			d.obs.LogCritical("cycle_panic", fmt.Errorf("%v", r))
		}
	}()
	d.runner.Run(ctx)
}
