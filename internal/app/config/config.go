package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/adhocore/gronx"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/Phongsakorn0/Weather-data-processor/internal/ports"
)

// DefaultMaxFileBytes is 64MiB.
const DefaultMaxFileBytes SizeBytes = 64 << 20

// EnvPrefix marks environment variables that override file values.
const EnvPrefix = "WEATHERFWD_"

const (
	ForwardHTTP = "http"
	ForwardSQL  = "sql"

	CheckpointNone   = "none"
	CheckpointFile   = "file"
	CheckpointPebble = "pebble"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

type Config struct {
	Watch      WatchConfig      `yaml:"watch"`
	Policy     ports.Policy     `yaml:"policy"`
	Forward    ForwardConfig    `yaml:"forward"`
	Checkpoint CheckpointConfig `yaml:"checkpoint"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type WatchConfig struct {
	Dir          string    `yaml:"dir"`
	FilePrefix   string    `yaml:"file_prefix"`
	Delimiter    string    `yaml:"delimiter"`
	MaxFileBytes SizeBytes `yaml:"max_file_bytes"`
}

type ForwardConfig struct {
	Kind          string    `yaml:"kind"`
	URL           string    `yaml:"url"`
	RatePerSecond float64   `yaml:"rate_per_second"`
	Burst         int       `yaml:"burst"`
	SQL           SQLConfig `yaml:"sql"`
}

type SQLConfig struct {
	ConnString string `yaml:"conn_string"`
	Table      string `yaml:"table"`
}

type CheckpointConfig struct {
	Backend string `yaml:"backend"`
	Dir     string `yaml:"dir"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads path (skipped when empty), applies WEATHERFWD_* overrides,
// fills defaults and validates the result.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(EnvPrefix + key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get("WATCH_DIR"); ok {
		c.Watch.Dir = v
	}
	if v, ok := get("FILE_PREFIX"); ok {
		c.Watch.FilePrefix = v
	}
	if v, ok := get("MAX_FILE_BYTES"); ok {
		n, err := parseSize(v)
		if err != nil {
			return fmt.Errorf("%sMAX_FILE_BYTES: %w", EnvPrefix, err)
		}
		c.Watch.MaxFileBytes = n
	}
	if v, ok := get("INTERVAL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sINTERVAL: %w", EnvPrefix, err)
		}
		c.Policy.Interval = d
	}
	if v, ok := get("CRON"); ok {
		c.Policy.Cron = v
	}
	if v, ok := get("CONCURRENCY"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sCONCURRENCY: %w", EnvPrefix, err)
		}
		c.Policy.Concurrency = n
	}
	if v, ok := get("FORWARD_URL"); ok {
		c.Forward.URL = v
	}
	if v, ok := get("FORWARD_KIND"); ok {
		c.Forward.Kind = v
	}
	if v, ok := get("SQL_CONN_STRING"); ok {
		c.Forward.SQL.ConnString = v
	}
	if v, ok := get("CHECKPOINT_BACKEND"); ok {
		c.Checkpoint.Backend = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.Logging.Level = v
	}
	if v, ok := get("METRICS_ADDR"); ok {
		c.Metrics.Addr = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Watch.Dir == "" {
		c.Watch.Dir = "."
	}
	if c.Watch.Delimiter == "" {
		c.Watch.Delimiter = ","
	}
	if c.Watch.MaxFileBytes == 0 {
		c.Watch.MaxFileBytes = DefaultMaxFileBytes
	}
	if c.Policy.Interval == 0 && c.Policy.Cron == "" {
		c.Policy.Interval = 60 * time.Second
	}
	if c.Policy.CycleTimeout == 0 {
		c.Policy.CycleTimeout = 50 * time.Second
	}
	if c.Policy.SendTimeout == 0 {
		c.Policy.SendTimeout = 10 * time.Second
	}
	if c.Policy.Concurrency == 0 {
		c.Policy.Concurrency = 1
	}
	if c.Policy.OutboxCapacity == 0 {
		c.Policy.OutboxCapacity = 100_000
	}
	if c.Policy.MaxLines == 0 {
		c.Policy.MaxLines = 1_000_000
	}
	if c.Forward.Kind == "" {
		c.Forward.Kind = ForwardHTTP
	}
	if c.Forward.URL == "" {
		c.Forward.URL = "http://localhost:8080/weather"
	}
	if c.Forward.RatePerSecond > 0 && c.Forward.Burst == 0 {
		c.Forward.Burst = 1
	}
	if c.Forward.SQL.Table == "" {
		c.Forward.SQL.Table = "weather_readings"
	}
	if c.Checkpoint.Backend == "" {
		c.Checkpoint.Backend = CheckpointNone
	}
	if c.Checkpoint.Dir == "" {
		c.Checkpoint.Dir = "./data/checkpoint"
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = ":9100"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
}

func (c *Config) validate() error {
	if c.Policy.Cron != "" && !gronx.IsValid(c.Policy.Cron) {
		return fmt.Errorf("policy.cron %q is not a valid cron expression", c.Policy.Cron)
	}
	if c.Policy.Interval < 0 {
		return fmt.Errorf("policy.interval must be positive")
	}
	if c.Policy.Concurrency < 1 {
		return fmt.Errorf("policy.concurrency must be at least 1")
	}
	switch c.Forward.Kind {
	case ForwardHTTP:
		if !strings.HasPrefix(c.Forward.URL, "http://") && !strings.HasPrefix(c.Forward.URL, "https://") {
			return fmt.Errorf("forward.url must be an http(s) URL, got %q", c.Forward.URL)
		}
	case ForwardSQL:
		if c.Forward.SQL.ConnString == "" {
			return fmt.Errorf("forward.sql.conn_string is required for kind sql")
		}
		if !tableName.MatchString(c.Forward.SQL.Table) {
			return fmt.Errorf("forward.sql.table %q is not a plain [schema.]table name", c.Forward.SQL.Table)
		}
	default:
		return fmt.Errorf("forward.kind %q is not one of http|sql", c.Forward.Kind)
	}
	if c.Forward.RatePerSecond < 0 {
		return fmt.Errorf("forward.rate_per_second must not be negative")
	}
	switch c.Checkpoint.Backend {
	case CheckpointNone, CheckpointFile, CheckpointPebble:
	default:
		return fmt.Errorf("checkpoint.backend %q is not one of none|file|pebble", c.Checkpoint.Backend)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("logging.format %q is not one of json|console", c.Logging.Format)
	}
	return nil
}
