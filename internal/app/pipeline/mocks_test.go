package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Phongsakorn0/Weather-data-processor/internal/domain"
	"github.com/Phongsakorn0/Weather-data-processor/internal/ports"
)

type mockScanner struct {
	file ports.FileInfo
	ok   bool
	err  error
}

func (m *mockScanner) SelectLatest(context.Context) (ports.FileInfo, bool, error) {
	return m.file, m.ok, m.err
}

type mockReader struct {
	lines map[string][]string
	err   error
	calls int
}

func (m *mockReader) ReadLines(_ context.Context, path string) ([]string, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	lines, ok := m.lines[path]
	if !ok {
		return nil, fmt.Errorf("no such file %s", path)
	}
	return lines, nil
}

type mockForwarder struct {
	mu      sync.Mutex
	records []*domain.Record
	failOn  map[float64]bool // by Pressure
	panicOn map[float64]bool
	delay   time.Duration
}

var errRejected = errors.New("endpoint rejected record")

func (m *mockForwarder) Send(ctx context.Context, r *domain.Record) error {
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if m.panicOn[r.Pressure] {
		panic("forwarder bug")
	}
	if m.failOn[r.Pressure] {
		return errRejected
	}
	m.mu.Lock()
	m.records = append(m.records, r)
	m.mu.Unlock()
	return nil
}

func (m *mockForwarder) Name() string { return "mock" }

func (m *mockForwarder) sent() []*domain.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.Record(nil), m.records...)
}

type mockCheckpoint struct {
	saved []domain.Cursor
	err   error
}

func (m *mockCheckpoint) Load() (domain.Cursor, bool, error) { return domain.Cursor{}, false, nil }
func (m *mockCheckpoint) Save(c domain.Cursor) error {
	m.saved = append(m.saved, c)
	return m.err
}
func (m *mockCheckpoint) Close() error { return nil }

type mockObs struct {
	mu       sync.Mutex
	infos    []string
	errors   []error
	critical []error
	rejected []int
	counters map[string]float64
	gauges   map[string]float64
}

func (m *mockObs) LogInfo(msg string, _ ...ports.Field) {
	m.mu.Lock()
	m.infos = append(m.infos, msg)
	m.mu.Unlock()
}

func (m *mockObs) LogError(_ string, err error, _ ...ports.Field) {
	m.mu.Lock()
	m.errors = append(m.errors, err)
	m.mu.Unlock()
}

func (m *mockObs) LogCritical(_ string, err error, _ ...ports.Field) {
	m.mu.Lock()
	m.critical = append(m.critical, err)
	m.mu.Unlock()
}

func (m *mockObs) IncCounter(name string, v float64) {
	m.mu.Lock()
	if m.counters == nil {
		m.counters = map[string]float64{}
	}
	m.counters[name] += v
	m.mu.Unlock()
}

func (m *mockObs) ObserveLatency(string, float64) {}

func (m *mockObs) SetGauge(name string, v float64) {
	m.mu.Lock()
	if m.gauges == nil {
		m.gauges = map[string]float64{}
	}
	m.gauges[name] = v
	m.mu.Unlock()
}

func (m *mockObs) RecordRejected(_ string, line int, _ error) {
	m.mu.Lock()
	m.rejected = append(m.rejected, line)
	m.mu.Unlock()
}

func (m *mockObs) counter(name string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[name]
}

func (m *mockObs) logged(msg string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.infos {
		if s == msg {
			return true
		}
	}
	return false
}
