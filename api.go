package weatherfwd

import (
	"context"
	"time"

	"go.uber.org/zap"

	base "github.com/Phongsakorn0/Weather-data-processor/pkg/weatherfwd"
)

// Re-exported errors for convenience.
var ErrChannelForwarderClosed = base.ErrChannelForwarderClosed

// Type aliases so consumers can import the module root directly.
type (
	Config           = base.Config
	Policy           = base.Policy
	WatchConfig      = base.WatchConfig
	ForwardConfig    = base.ForwardConfig
	SQLConfig        = base.SQLConfig
	CheckpointConfig = base.CheckpointConfig
	MetricsConfig    = base.MetricsConfig
	LoggingConfig    = base.LoggingConfig
	SizeBytes        = base.SizeBytes
	Flow             = base.Flow
	FlowOption       = base.FlowOption
	StreamInOption   = base.StreamInOption
	StreamOutOption  = base.StreamOutOption
	Runtime          = base.Runtime
	RuntimeOption    = base.RuntimeOption
	Record           = base.Record
	Cursor           = base.Cursor
	Report           = base.Report
	RecordHandler    = base.RecordHandler
	Forwarder        = base.Forwarder
	Scanner          = base.Scanner
	LineReader       = base.LineReader
	FileInfo         = base.FileInfo
	RecordQueue      = base.RecordQueue
	QueuedRecord     = base.QueuedRecord
	Checkpoint       = base.Checkpoint
	Observability    = base.Observability
	Field            = base.Field
)

// Config helpers.
func LoadConfig(path string) (*Config, error) {
	return base.LoadConfig(path)
}

// Flow builder helpers.
func Conf(path string, opts ...FlowOption) (*Flow, error) {
	return base.Conf(path, opts...)
}

func ConfFromConfig(cfg *Config, opts ...FlowOption) (*Flow, error) {
	return base.ConfFromConfig(cfg, opts...)
}

func WithFlowOptions(opts ...RuntimeOption) FlowOption {
	return base.WithFlowOptions(opts...)
}

func StreamInDir(dir, prefix string) StreamInOption {
	return base.StreamInDir(dir, prefix)
}

func StreamInScanner(s Scanner) StreamInOption {
	return base.StreamInScanner(s)
}

func StreamInReader(r LineReader) StreamInOption {
	return base.StreamInReader(r)
}

func StreamInCheckpoint(c Checkpoint) StreamInOption {
	return base.StreamInCheckpoint(c)
}

func StreamOutForwarder(f Forwarder) StreamOutOption {
	return base.StreamOutForwarder(f)
}

func StreamOutCallback(name string, fn RecordHandler) StreamOutOption {
	return base.StreamOutCallback(name, fn)
}

func StreamOutObservability(obs Observability) StreamOutOption {
	return base.StreamOutObservability(obs)
}

// Runtime and options.
func NewRuntime(cfg *Config, opts ...RuntimeOption) (*Runtime, error) {
	return base.NewRuntime(cfg, opts...)
}

func WithScanner(s Scanner) RuntimeOption {
	return base.WithScanner(s)
}

func WithLineReader(r LineReader) RuntimeOption {
	return base.WithLineReader(r)
}

func WithForwarder(f Forwarder) RuntimeOption {
	return base.WithForwarder(f)
}

func WithOutbox(q RecordQueue) RuntimeOption {
	return base.WithOutbox(q)
}

func WithCheckpoint(c Checkpoint) RuntimeOption {
	return base.WithCheckpoint(c)
}

func WithObservability(obs Observability) RuntimeOption {
	return base.WithObservability(obs)
}

func WithLogger(l *zap.Logger) RuntimeOption {
	return base.WithLogger(l)
}

// Forwarder adapters.
func NewCallbackForwarder(name string, fn RecordHandler) Forwarder {
	return base.NewCallbackForwarder(name, fn)
}

func NewChannelForwarder(name string, buffer int) (Forwarder, <-chan Record, func()) {
	return base.NewChannelForwarder(name, buffer)
}

// RunOnce loads configuration from path and runs a single cycle.
func RunOnce(ctx context.Context, path string, opts ...RuntimeOption) (Report, error) {
	cfg, err := base.LoadConfig(path)
	if err != nil {
		return Report{}, err
	}
	rt, err := base.NewRuntime(cfg, opts...)
	if err != nil {
		return Report{}, err
	}
	rep := rt.RunOnce(ctx)
	return rep, rt.Shutdown(ctx)
}

func WithClock(now func() time.Time) RuntimeOption {
	return base.WithClock(now)
}
