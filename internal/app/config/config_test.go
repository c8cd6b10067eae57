package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
watch:
  dir: /var/weather
  file_prefix: weather_data_
  max_file_bytes: 8MiB
policy:
  concurrency: 4
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Watch.MaxFileBytes.Int64() != 8<<20 {
		t.Fatalf("expected 8MiB, got %d", cfg.Watch.MaxFileBytes)
	}
	if cfg.Policy.Interval != 60*time.Second {
		t.Fatalf("expected interval default 60s, got %s", cfg.Policy.Interval)
	}
	if cfg.Policy.Concurrency != 4 {
		t.Fatalf("expected concurrency 4, got %d", cfg.Policy.Concurrency)
	}
	if cfg.Policy.SendTimeout != 10*time.Second || cfg.Policy.CycleTimeout != 50*time.Second {
		t.Fatalf("unexpected timeouts %s / %s", cfg.Policy.SendTimeout, cfg.Policy.CycleTimeout)
	}
	if cfg.Forward.Kind != ForwardHTTP || cfg.Forward.URL != "http://localhost:8080/weather" {
		t.Fatalf("unexpected forward defaults %+v", cfg.Forward)
	}
	if cfg.Watch.Delimiter != "," {
		t.Fatalf("expected default delimiter, got %q", cfg.Watch.Delimiter)
	}
	if cfg.Checkpoint.Backend != CheckpointNone {
		t.Fatalf("expected checkpoint disabled by default, got %s", cfg.Checkpoint.Backend)
	}
	if cfg.Metrics.Addr != ":9100" {
		t.Fatalf("expected default metrics addr :9100, got %s", cfg.Metrics.Addr)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Watch.Dir != "." {
		t.Fatalf("expected current dir default, got %s", cfg.Watch.Dir)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("WEATHERFWD_WATCH_DIR", "/mnt/logger")
	t.Setenv("WEATHERFWD_INTERVAL", "15s")
	t.Setenv("WEATHERFWD_FORWARD_URL", "https://collector.example/weather")
	t.Setenv("WEATHERFWD_MAX_FILE_BYTES", "1 MB")

	path := writeConfig(t, `
watch:
  dir: /ignored
forward:
  url: http://ignored
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Watch.Dir != "/mnt/logger" || cfg.Policy.Interval != 15*time.Second {
		t.Fatalf("env overrides not applied: %+v %+v", cfg.Watch, cfg.Policy)
	}
	if cfg.Forward.URL != "https://collector.example/weather" {
		t.Fatalf("unexpected url %s", cfg.Forward.URL)
	}
	if cfg.Watch.MaxFileBytes != 1_000_000 {
		t.Fatalf("unexpected size %d", cfg.Watch.MaxFileBytes)
	}
}

func TestLoadCronLeavesIntervalUnset(t *testing.T) {
	cfg, err := Load(writeConfig(t, "policy:\n  cron: \"* * * * *\"\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Policy.Interval != 0 {
		t.Fatalf("cron schedule should not get an interval, got %s", cfg.Policy.Interval)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"cron":       "policy:\n  cron: \"every minute\"\n",
		"kind":       "forward:\n  kind: kafka\n",
		"sql":        "forward:\n  kind: sql\n",
		"url":        "forward:\n  url: ftp://host\n",
		"checkpoint": "checkpoint:\n  backend: redis\n",
		"level":      "logging:\n  level: loud\n",
		"size":       "watch:\n  max_file_bytes: lots\n",
		"table":      "forward:\n  kind: sql\n  sql:\n    conn_string: postgres://x\n    table: \"readings; drop\"\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, data)); err == nil {
				t.Fatalf("expected %s config to be rejected", name)
			}
		})
	}
}

func TestSampleConfigMatchesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "..", "data", "config.yaml"))
	if err != nil {
		t.Fatalf("load sample config: %v", err)
	}
	if cfg.Watch.MaxFileBytes != DefaultMaxFileBytes {
		t.Fatalf("sample max_file_bytes %d differs from default %d", cfg.Watch.MaxFileBytes, DefaultMaxFileBytes)
	}
}

func TestLoadAcceptsSchemaQualifiedTable(t *testing.T) {
	cfg, err := Load(writeConfig(t, "forward:\n  kind: sql\n  sql:\n    conn_string: postgres://x\n    table: telemetry.weather_readings\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Forward.SQL.Table != "telemetry.weather_readings" {
		t.Fatalf("unexpected table %s", cfg.Forward.SQL.Table)
	}
}
