package weatherfwd

import (
	"github.com/Phongsakorn0/Weather-data-processor/internal/app/config"
	"github.com/Phongsakorn0/Weather-data-processor/internal/ports"
)

// Config re-exports the root configuration struct so callers can build or
// adjust it in code.
type Config = config.Config

type (
	// Policy controls scheduling, timeouts and outbox bounds.
	Policy = ports.Policy
	// WatchConfig selects the directory and file format.
	WatchConfig = config.WatchConfig
	// ForwardConfig chooses and configures the forwarder.
	ForwardConfig = config.ForwardConfig
	// SQLConfig configures the SQL forwarder.
	SQLConfig = config.SQLConfig
	// CheckpointConfig configures cursor persistence.
	CheckpointConfig = config.CheckpointConfig
	// MetricsConfig configures the metrics HTTP server.
	MetricsConfig = config.MetricsConfig
	// LoggingConfig configures the zap logger.
	LoggingConfig = config.LoggingConfig
	// SizeBytes accepts "64MB"-style values.
	SizeBytes = config.SizeBytes
)

// LoadConfig reads YAML from path (optional) plus WEATHERFWD_* overrides.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}
