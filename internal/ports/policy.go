package ports

import "time"

type Policy struct {
	Interval     time.Duration `yaml:"interval"`
	Cron         string        `yaml:"cron"`
	SkipInitial  bool          `yaml:"skip_initial"`
	CycleTimeout time.Duration `yaml:"cycle_timeout"`
	SendTimeout  time.Duration `yaml:"send_timeout"`

	Concurrency    int `yaml:"concurrency"`     // sends in flight per batch; 1 keeps call order
	OutboxCapacity int `yaml:"outbox_capacity"` // records buffered per cycle
	MaxLines       int `yaml:"max_lines"`       // upper bound on the scanned line index
}
