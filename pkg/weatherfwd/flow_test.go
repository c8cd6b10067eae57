package weatherfwd

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

type stubScanner struct{}

func (s *stubScanner) SelectLatest(context.Context) (FileInfo, bool, error) {
	return FileInfo{}, false, nil
}

func TestConfFromConfigAndStreamBuilder(t *testing.T) {
	cfg := testConfig(t, t.TempDir())

	flow, err := ConfFromConfig(cfg, WithFlowOptions(WithLogger(zap.NewNop())))
	if err != nil {
		t.Fatalf("ConfFromConfig returned error: %v", err)
	}
	if flow.Config() != cfg {
		t.Fatalf("expected Config to be returned verbatim")
	}

	rt, err := flow.
		StreamIN(
			StreamInDir("/srv/logger", "weather_data_"),
			StreamInScanner(&stubScanner{}),
		).
		StreamOUT(
			StreamOutCallback("sink", func(context.Context, Record) error { return nil }),
			StreamOutObservability(&stubObservability{}),
		)
	if err != nil {
		t.Fatalf("StreamOUT returned error: %v", err)
	}
	if rt.forwarder.Name() != "sink" {
		t.Fatalf("expected callback forwarder to be wired, got %s", rt.forwarder.Name())
	}
	if cfg.Watch.Dir != "/srv/logger" || cfg.Watch.FilePrefix != "weather_data_" {
		t.Fatalf("expected watch dir override, got %+v", cfg.Watch)
	}

	rep := rt.RunOnce(context.Background())
	if rep.Skipped != "no_file" {
		t.Fatalf("expected stub scanner to select nothing, got %+v", rep)
	}
}

func TestFlowNilSafety(t *testing.T) {
	var f *Flow
	if f.Config() != nil || f.StreamIN() != nil {
		t.Fatalf("nil flow should stay nil")
	}
	if _, err := f.StreamOUT(); err == nil {
		t.Fatalf("expected error from nil flow")
	}
	if _, err := ConfFromConfig(nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}
