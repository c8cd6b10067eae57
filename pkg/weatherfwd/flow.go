package weatherfwd

import (
	"context"
	"fmt"
)

// Flow is a convenience builder: Conf → StreamIN → StreamOUT → Run,
// without touching the underlying wiring.
type Flow struct {
	cfg  *Config
	opts []RuntimeOption
}

// FlowOption mutates the Flow after configuration is loaded.
type FlowOption func(*Flow)

// StreamInOption configures the scan/read side of the pipeline.
type StreamInOption func(*Flow)

// StreamOutOption configures the forward side of the pipeline.
type StreamOutOption func(*Flow)

// Conf loads configuration (path may be empty), applies FlowOption values
// and returns a Flow builder.
func Conf(path string, opts ...FlowOption) (*Flow, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return ConfFromConfig(cfg, opts...)
}

// ConfFromConfig bootstraps a Flow from an in-memory Config.
func ConfFromConfig(cfg *Config, opts ...FlowOption) (*Flow, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	f := &Flow{cfg: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f, nil
}

func (f *Flow) Config() *Config {
	if f == nil {
		return nil
	}
	return f.cfg
}

func (f *Flow) StreamIN(opts ...StreamInOption) *Flow {
	if f == nil {
		return nil
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// StreamOUT records forward-side overrides and builds a Runtime.
func (f *Flow) StreamOUT(opts ...StreamOutOption) (*Runtime, error) {
	if f == nil {
		return nil, fmt.Errorf("flow is nil")
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return NewRuntime(f.cfg, f.opts...)
}

// Run is a shortcut for StreamOUT + Runtime.Run.
func (f *Flow) Run(ctx context.Context, opts ...StreamOutOption) error {
	rt, err := f.StreamOUT(opts...)
	if err != nil {
		return err
	}
	return rt.Run(ctx)
}

// WithFlowOptions appends RuntimeOption values during Conf.
func WithFlowOptions(opts ...RuntimeOption) FlowOption {
	return func(f *Flow) {
		if f != nil {
			f.appendOptions(opts...)
		}
	}
}

// StreamInDir overrides the watched directory and file prefix.
func StreamInDir(dir, prefix string) StreamInOption {
	return func(f *Flow) {
		if f != nil && dir != "" {
			f.cfg.Watch.Dir = dir
			f.cfg.Watch.FilePrefix = prefix
		}
	}
}

func StreamInScanner(s Scanner) StreamInOption {
	return func(f *Flow) {
		if f != nil && s != nil {
			f.appendOptions(WithScanner(s))
		}
	}
}

func StreamInReader(r LineReader) StreamInOption {
	return func(f *Flow) {
		if f != nil && r != nil {
			f.appendOptions(WithLineReader(r))
		}
	}
}

func StreamInCheckpoint(c Checkpoint) StreamInOption {
	return func(f *Flow) {
		if f != nil && c != nil {
			f.appendOptions(WithCheckpoint(c))
		}
	}
}

func StreamOutForwarder(fw Forwarder) StreamOutOption {
	return func(f *Flow) {
		if f != nil && fw != nil {
			f.appendOptions(WithForwarder(fw))
		}
	}
}

// StreamOutCallback installs a forwarder built from a function.
func StreamOutCallback(name string, fn RecordHandler) StreamOutOption {
	return func(f *Flow) {
		if f != nil {
			f.appendOptions(WithForwarder(NewCallbackForwarder(name, fn)))
		}
	}
}

func StreamOutObservability(obs Observability) StreamOutOption {
	return func(f *Flow) {
		if f != nil && obs != nil {
			f.appendOptions(WithObservability(obs))
		}
	}
}

func (f *Flow) appendOptions(opts ...RuntimeOption) {
	for _, opt := range opts {
		if opt != nil {
			f.opts = append(f.opts, opt)
		}
	}
}
