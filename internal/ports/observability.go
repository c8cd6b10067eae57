package ports

type Observability interface {
	LogInfo(msg string, fields ...Field)
	LogError(msg string, err error, fields ...Field)
	LogCritical(msg string, err error, fields ...Field)

	IncCounter(name string, v float64)
	ObserveLatency(name string, seconds float64)

	SetGauge(name string, v float64)

	RecordRejected(file string, line int, err error)
}

type Field struct {
	Key   string
	Value any
}

const (
	MetricCycles           = "weatherfwd_cycles_total"
	MetricCyclesSkipped    = "weatherfwd_cycles_skipped_total"
	MetricRecordsParsed    = "weatherfwd_records_parsed_total"
	MetricRecordsForwarded = "weatherfwd_records_forwarded_total"
	MetricForwardFailures  = "weatherfwd_forward_failures_total"
	MetricFieldsCoerced    = "weatherfwd_fields_coerced_total"
	MetricRowsRejected     = "weatherfwd_rows_rejected_total"

	MetricTrackerOffset = "weatherfwd_tracker_offset"
	MetricOutboxLength  = "weatherfwd_outbox_length"

	MetricCycleDuration  = "weatherfwd_cycle_duration_seconds"
	MetricForwardLatency = "weatherfwd_forward_latency_seconds"
)
