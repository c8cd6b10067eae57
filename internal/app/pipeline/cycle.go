package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/Phongsakorn0/Weather-data-processor/internal/app/parser"
	"github.com/Phongsakorn0/Weather-data-processor/internal/app/tracker"
	"github.com/Phongsakorn0/Weather-data-processor/internal/domain"
	"github.com/Phongsakorn0/Weather-data-processor/internal/ports"
)

// State is the position of a cycle in its Idle→Scanning→Reading→Parsing→Forwarding loop.
type State int32

const (
	StateIdle State = iota
	StateScanning
	StateReading
	StateParsing
	StateForwarding
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScanning:
		return "scanning"
	case StateReading:
		return "reading"
	case StateParsing:
		return "parsing"
	case StateForwarding:
		return "forwarding"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Reasons a cycle ended without forwarding.
const (
	SkipScanFailed = "scan_failed"
	SkipNoFile     = "no_file"
	SkipReadFailed = "read_failed"
	SkipNothingNew = "nothing_new"
)

// Report summarises one cycle.
type Report struct {
	ID       string        `json:"id"`
	File     string        `json:"file,omitempty"`
	Start    int           `json:"start"`
	End      int           `json:"end"`
	Parsed   int           `json:"parsed"`
	Blank    int           `json:"blank"`
	Rejected int           `json:"rejected"`
	Coerced  int           `json:"coerced"`
	Sent     int           `json:"sent"`
	Failed   int           `json:"failed"`
	Skipped  string        `json:"skipped,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Stages are the collaborators of a cycle. Checkpoint is optional.
type Stages struct {
	Scanner    ports.Scanner
	Reader     ports.LineReader
	Tracker    *tracker.Tracker
	Parser     *parser.Parser
	Outbox     ports.RecordQueue
	Forwarder  ports.Forwarder
	Checkpoint ports.Checkpoint
}

// Cycle runs one scan→read→parse→forward pass per Run call. Run is not
// meant to be called concurrently; the driver serialises calls.
type Cycle struct {
	st    Stages
	pol   ports.Policy
	obs   ports.Observability
	state atomic.Int32

	mu   sync.Mutex
	last *Report
}

func NewCycle(st Stages, pol ports.Policy, obs ports.Observability) (*Cycle, error) {
	switch {
	case st.Scanner == nil:
		return nil, errors.New("pipeline: scanner is nil")
	case st.Reader == nil:
		return nil, errors.New("pipeline: line reader is nil")
	case st.Tracker == nil:
		return nil, errors.New("pipeline: tracker is nil")
	case st.Parser == nil:
		return nil, errors.New("pipeline: parser is nil")
	case st.Outbox == nil:
		return nil, errors.New("pipeline: outbox is nil")
	case st.Forwarder == nil:
		return nil, errors.New("pipeline: forwarder is nil")
	case obs == nil:
		return nil, errors.New("pipeline: observability is nil")
	}
	return &Cycle{st: st, pol: pol, obs: obs}, nil
}

func (c *Cycle) State() State { return State(c.state.Load()) }

// LastReport returns the report of the most recent finished cycle.
func (c *Cycle) LastReport() (Report, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return Report{}, false
	}
	return *c.last, true
}

func (c *Cycle) Run(ctx context.Context) (rep Report) {
	started := time.Now()
	rep.ID = uuid.NewString()
	before := c.st.Tracker.Snapshot()

	if c.pol.CycleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.pol.CycleTimeout)
		defer cancel()
	}
	defer func() {
		rep.Duration = time.Since(started)
		c.setState(StateIdle)
		c.finish(rep, before)
	}()

	c.setState(StateScanning)
	file, ok, err := c.st.Scanner.SelectLatest(ctx)
	if err != nil {
		c.obs.LogError("scan_failed", err, ports.Field{Key: "cycle", Value: rep.ID})
		rep.Skipped = SkipScanFailed
		return rep
	}
	if !ok {
		c.obs.LogInfo("no_file_selected", ports.Field{Key: "cycle", Value: rep.ID})
		rep.Skipped = SkipNoFile
		return rep
	}
	rep.File = file.Name

	c.setState(StateReading)
	lines, err := c.st.Reader.ReadLines(ctx, file.Path)
	if err != nil {
		c.obs.LogError("read_failed", err,
			ports.Field{Key: "cycle", Value: rep.ID},
			ports.Field{Key: "file", Value: file.Path})
		rep.Skipped = SkipReadFailed
		return rep
	}

	rep.Start = c.st.Tracker.ResolveStart(file.Name)

	c.setState(StateParsing)
	c.parse(lines, &rep)

	if rep.Parsed == 0 {
		c.obs.LogInfo("nothing_new",
			ports.Field{Key: "cycle", Value: rep.ID},
			ports.Field{Key: "file", Value: file.Name},
			ports.Field{Key: "start", Value: rep.Start},
			ports.Field{Key: "lines", Value: len(lines)})
		rep.Skipped = SkipNothingNew
		return rep
	}

	c.setState(StateForwarding)
	rep.Sent, rep.Failed = c.forward(ctx, rep.ID)
	return rep
}

// parse walks lines from the resolved start, queueing every record and
// advancing the tracker past it. A full outbox ends the walk; the
// remaining lines are picked up by the next cycle.
func (c *Cycle) parse(lines []string, rep *Report) {
	limit := len(lines)
	if c.pol.MaxLines > 0 && limit > c.pol.MaxLines {
		limit = c.pol.MaxLines
	}

	i := rep.Start
	for ; i < limit; i++ {
		rec, coerced, err := c.st.Parser.ParseRow(lines[i])
		if err != nil {
			rep.Rejected++
			c.obs.RecordRejected(rep.File, i, err)
			continue
		}
		if rec == nil {
			rep.Blank++
			continue
		}
		if !c.st.Outbox.Enqueue(i, rec) {
			c.obs.LogError("outbox_full", fmt.Errorf("outbox capacity %d reached at line %d", c.pol.OutboxCapacity, i),
				ports.Field{Key: "cycle", Value: rep.ID})
			break
		}
		rep.Parsed++
		rep.Coerced += coerced
		c.st.Tracker.Advance(i)
	}
	rep.End = i
	c.obs.SetGauge(ports.MetricOutboxLength, float64(c.st.Outbox.Len()))
}

func (c *Cycle) finish(rep Report, before domain.Cursor) {
	c.obs.IncCounter(ports.MetricCycles, 1)
	c.obs.ObserveLatency(ports.MetricCycleDuration, rep.Duration.Seconds())
	if rep.Skipped != "" {
		c.obs.IncCounter(ports.MetricCyclesSkipped, 1)
	}
	c.obs.IncCounter(ports.MetricRecordsParsed, float64(rep.Parsed))
	c.obs.IncCounter(ports.MetricRecordsForwarded, float64(rep.Sent))
	c.obs.IncCounter(ports.MetricForwardFailures, float64(rep.Failed))
	c.obs.IncCounter(ports.MetricFieldsCoerced, float64(rep.Coerced))

	after := c.st.Tracker.Snapshot()
	c.obs.SetGauge(ports.MetricTrackerOffset, float64(after.Offset))
	if c.st.Checkpoint != nil && after != before {
		if err := c.st.Checkpoint.Save(after); err != nil {
			c.obs.LogError("checkpoint_save_failed", err, ports.Field{Key: "cycle", Value: rep.ID})
		}
	}

	if rep.Skipped == "" {
		c.obs.LogInfo("cycle_complete",
			ports.Field{Key: "cycle", Value: rep.ID},
			ports.Field{Key: "file", Value: rep.File},
			ports.Field{Key: "start", Value: rep.Start},
			ports.Field{Key: "end", Value: rep.End},
			ports.Field{Key: "parsed", Value: rep.Parsed},
			ports.Field{Key: "blank", Value: rep.Blank},
			ports.Field{Key: "rejected", Value: rep.Rejected},
			ports.Field{Key: "coerced_fields", Value: rep.Coerced},
			ports.Field{Key: "sent", Value: rep.Sent},
			ports.Field{Key: "failed", Value: rep.Failed},
			ports.Field{Key: "duration", Value: rep.Duration.String()})
	}

	c.mu.Lock()
	c.last = &rep
	c.mu.Unlock()
}

func (c *Cycle) setState(s State) { c.state.Store(int32(s)) }
