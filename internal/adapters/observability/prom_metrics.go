package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/Phongsakorn0/Weather-data-processor/internal/ports"
)

type PromObs struct {
	log      *zap.Logger
	counters map[string]prometheus.Counter
	gauges   map[string]prometheus.Gauge
	histos   map[string]prometheus.Observer
}

// NewPromObs registers the forwarder metrics on reg (the default
// registerer when nil) and logs through log (a no-op logger when nil).
func NewPromObs(reg prometheus.Registerer, log *zap.Logger) *PromObs {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if log == nil {
		log = zap.NewNop()
	}

	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: help})
	}
	cycles := counter(ports.MetricCycles, "Ingest cycles run.")
	skipped := counter(ports.MetricCyclesSkipped, "Cycles that ended before forwarding (no file, read error, nothing new).")
	parsed := counter(ports.MetricRecordsParsed, "Rows turned into records.")
	forwarded := counter(ports.MetricRecordsForwarded, "Records accepted by the collection endpoint.")
	failures := counter(ports.MetricForwardFailures, "Records the forwarder failed to deliver.")
	coerced := counter(ports.MetricFieldsCoerced, "Numeric fields defaulted to zero because they did not parse.")
	rejected := counter(ports.MetricRowsRejected, "Rows skipped because they were too short.")

	offset := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: ports.MetricTrackerOffset,
		Help: "Line index of the last consumed row in the active file.",
	})
	outbox := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: ports.MetricOutboxLength,
		Help: "Records waiting in the cycle outbox.",
	})

	cycleDur := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    ports.MetricCycleDuration,
		Help:    "Wall time of one scan-read-parse-forward cycle.",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 16),
	})
	fwdLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    ports.MetricForwardLatency,
		Help:    "Latency of a single forward call.",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
	})

	reg.MustRegister(cycles, skipped, parsed, forwarded, failures, coerced, rejected, offset, outbox, cycleDur, fwdLatency)

	return &PromObs{
		log: log,
		counters: map[string]prometheus.Counter{
			ports.MetricCycles:           cycles,
			ports.MetricCyclesSkipped:    skipped,
			ports.MetricRecordsParsed:    parsed,
			ports.MetricRecordsForwarded: forwarded,
			ports.MetricForwardFailures:  failures,
			ports.MetricFieldsCoerced:    coerced,
			ports.MetricRowsRejected:     rejected,
		},
		gauges: map[string]prometheus.Gauge{
			ports.MetricTrackerOffset: offset,
			ports.MetricOutboxLength:  outbox,
		},
		histos: map[string]prometheus.Observer{
			ports.MetricCycleDuration:  cycleDur,
			ports.MetricForwardLatency: fwdLatency,
		},
	}
}

func (p *PromObs) LogInfo(msg string, fields ...ports.Field) {
	p.log.Info(msg, zapFields(fields)...)
}

func (p *PromObs) LogError(msg string, err error, fields ...ports.Field) {
	p.log.Error(msg, append(zapFields(fields), zap.Error(err))...)
}

func (p *PromObs) LogCritical(msg string, err error, fields ...ports.Field) {
	p.log.Error(msg, append(zapFields(fields), zap.Error(err), zap.Bool("critical", true))...)
}

func (p *PromObs) IncCounter(name string, v float64) {
	if c, ok := p.counters[name]; ok {
		c.Add(v)
	}
}

func (p *PromObs) ObserveLatency(name string, seconds float64) {
	if h, ok := p.histos[name]; ok {
		h.Observe(seconds)
	}
}

func (p *PromObs) SetGauge(name string, v float64) {
	if g, ok := p.gauges[name]; ok {
		g.Set(v)
	}
}

func (p *PromObs) RecordRejected(file string, line int, err error) {
	p.IncCounter(ports.MetricRowsRejected, 1)
	p.log.Warn("row_rejected", zap.String("file", file), zap.Int("line", line), zap.Error(err))
}

// Sync flushes buffered log entries.
func (p *PromObs) Sync() error {
	return p.log.Sync()
}

func zapFields(fields []ports.Field) []zap.Field {
	out := make([]zap.Field, 0, len(fields)+2)
	for _, f := range fields {
		out = append(out, zap.Any(f.Key, f.Value))
	}
	return out
}

var _ ports.Observability = (*PromObs)(nil)
