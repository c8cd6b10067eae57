package weatherfwd

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Phongsakorn0/Weather-data-processor/internal/adapters/checkpoint"
	"github.com/Phongsakorn0/Weather-data-processor/internal/adapters/forwarder"
	"github.com/Phongsakorn0/Weather-data-processor/internal/adapters/fsscan"
	"github.com/Phongsakorn0/Weather-data-processor/internal/adapters/observability"
	"github.com/Phongsakorn0/Weather-data-processor/internal/adapters/queue"
	"github.com/Phongsakorn0/Weather-data-processor/internal/app/config"
	"github.com/Phongsakorn0/Weather-data-processor/internal/app/parser"
	"github.com/Phongsakorn0/Weather-data-processor/internal/app/pipeline"
	"github.com/Phongsakorn0/Weather-data-processor/internal/app/tracker"
	"github.com/Phongsakorn0/Weather-data-processor/internal/ports"
)

// RuntimeOption customizes the dependencies used by Runtime.
type RuntimeOption func(*runtimeOverrides)

type runtimeOverrides struct {
	scanner       Scanner
	reader        LineReader
	forwarder     Forwarder
	outbox        RecordQueue
	checkpoint    Checkpoint
	observability Observability
	logger        *zap.Logger
	registry      *prometheus.Registry
	clock         func() time.Time
}

// WithScanner replaces the directory scanner.
func WithScanner(s Scanner) RuntimeOption {
	return func(o *runtimeOverrides) { o.scanner = s }
}

// WithLineReader replaces the whole-file line reader.
func WithLineReader(r LineReader) RuntimeOption {
	return func(o *runtimeOverrides) { o.reader = r }
}

// WithForwarder sends records somewhere other than the configured endpoint.
func WithForwarder(f Forwarder) RuntimeOption {
	return func(o *runtimeOverrides) { o.forwarder = f }
}

// WithOutbox swaps the in-memory outbox between parsing and forwarding.
func WithOutbox(q RecordQueue) RuntimeOption {
	return func(o *runtimeOverrides) { o.outbox = q }
}

// WithCheckpoint persists the tracker cursor through a caller-provided store.
func WithCheckpoint(c Checkpoint) RuntimeOption {
	return func(o *runtimeOverrides) { o.checkpoint = c }
}

// WithObservability plugs in a custom logs/metrics backend.
func WithObservability(obs Observability) RuntimeOption {
	return func(o *runtimeOverrides) { o.observability = obs }
}

// WithLogger uses an existing zap logger instead of building one from config.
func WithLogger(l *zap.Logger) RuntimeOption {
	return func(o *runtimeOverrides) { o.logger = l }
}

// WithRegistry registers metrics on reg and serves it on /metrics.
func WithRegistry(reg *prometheus.Registry) RuntimeOption {
	return func(o *runtimeOverrides) { o.registry = reg }
}

// WithClock sets the source of record timestamps.
func WithClock(now func() time.Time) RuntimeOption {
	return func(o *runtimeOverrides) { o.clock = now }
}

// Runtime wires scanner → reader → parser → outbox → forwarder around a
// single tracker and drives it on the configured schedule.
type Runtime struct {
	cfg        *Config
	obs        ports.Observability
	log        *zap.Logger
	tracker    *tracker.Tracker
	cycle      *pipeline.Cycle
	driver     *pipeline.Driver
	checkpoint ports.Checkpoint
	forwarder  ports.Forwarder
	db         *sql.DB
	metrics    http.Handler
	metricsSrv *http.Server

	runMu sync.Mutex
}

// NewRuntime bootstraps the default adapters (directory scanner, HTTP or SQL
// forwarder, in-memory outbox, optional checkpoint store, Prometheus + zap
// observability). RuntimeOption values override any of them.
func NewRuntime(cfg *Config, opts ...RuntimeOption) (*Runtime, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	var overrides runtimeOverrides
	for _, opt := range opts {
		if opt != nil {
			opt(&overrides)
		}
	}

	logger := overrides.logger
	if logger == nil {
		var err error
		logger, err = observability.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
		if err != nil {
			return nil, err
		}
	}

	metrics := promhttp.Handler()
	obs := overrides.observability
	if obs == nil {
		var reg prometheus.Registerer = prometheus.DefaultRegisterer
		if overrides.registry != nil {
			reg = overrides.registry
			metrics = promhttp.HandlerFor(overrides.registry, promhttp.HandlerOpts{})
		}
		obs = observability.NewPromObs(reg, logger)
	}

	rt := &Runtime{
		cfg:     cfg,
		obs:     obs,
		log:     logger,
		tracker: tracker.New(),
		metrics: metrics,
	}

	scn := overrides.scanner
	if scn == nil {
		scn = fsscan.NewScanner(cfg.Watch.Dir, cfg.Watch.FilePrefix)
	}
	rdr := overrides.reader
	if rdr == nil {
		rdr = fsscan.NewReader(cfg.Watch.MaxFileBytes.Int64())
	}
	outbox := overrides.outbox
	if outbox == nil {
		outbox = queue.NewMemQueue(cfg.Policy.OutboxCapacity)
	}

	fwd := overrides.forwarder
	if fwd == nil {
		var err error
		fwd, err = rt.buildForwarder()
		if err != nil {
			return nil, err
		}
	}
	if cfg.Forward.RatePerSecond > 0 {
		fwd = forwarder.NewLimited(fwd, cfg.Forward.RatePerSecond, cfg.Forward.Burst)
	}
	rt.forwarder = fwd

	cp := overrides.checkpoint
	if cp == nil {
		var err error
		cp, err = openCheckpoint(cfg.Checkpoint)
		if err != nil {
			_ = rt.closeDB()
			return nil, err
		}
	}
	rt.checkpoint = cp
	if err := rt.restore(); err != nil {
		_ = rt.Shutdown(context.Background())
		return nil, err
	}

	var popts []parser.Option
	popts = append(popts, parser.WithDelimiter(cfg.Watch.Delimiter))
	if overrides.clock != nil {
		popts = append(popts, parser.WithClock(overrides.clock))
	}

	cycle, err := pipeline.NewCycle(pipeline.Stages{
		Scanner:    scn,
		Reader:     rdr,
		Tracker:    rt.tracker,
		Parser:     parser.New(popts...),
		Outbox:     outbox,
		Forwarder:  fwd,
		Checkpoint: cp,
	}, cfg.Policy, obs)
	if err != nil {
		_ = rt.Shutdown(context.Background())
		return nil, err
	}
	rt.cycle = cycle

	driver, err := pipeline.NewDriver(serialRunner{rt: rt}, cfg.Policy, obs)
	if err != nil {
		_ = rt.Shutdown(context.Background())
		return nil, err
	}
	rt.driver = driver

	return rt, nil
}

func (r *Runtime) buildForwarder() (ports.Forwarder, error) {
	switch r.cfg.Forward.Kind {
	case config.ForwardSQL:
		db, err := sql.Open("pgx", r.cfg.Forward.SQL.ConnString)
		if err != nil {
			return nil, fmt.Errorf("open sql forwarder: %w", err)
		}
		r.db = db
		return forwarder.NewSQLForwarder(db, r.cfg.Forward.SQL.Table), nil
	default:
		return forwarder.NewHTTPForwarder(r.cfg.Forward.URL, r.cfg.Policy.SendTimeout), nil
	}
}

func openCheckpoint(cfg CheckpointConfig) (ports.Checkpoint, error) {
	switch cfg.Backend {
	case config.CheckpointFile:
		return checkpoint.NewFile(cfg.Dir)
	case config.CheckpointPebble:
		return checkpoint.OpenPebble(cfg.Dir)
	default:
		return nil, nil
	}
}

func (r *Runtime) restore() error {
	if r.checkpoint == nil {
		return nil
	}
	cur, ok, err := r.checkpoint.Load()
	if err != nil {
		return fmt.Errorf("load checkpoint: %w", err)
	}
	if !ok {
		return nil
	}
	r.tracker.Restore(cur)
	r.obs.LogInfo("checkpoint_restored",
		ports.Field{Key: "file", Value: cur.File},
		ports.Field{Key: "offset", Value: cur.Offset})
	return nil
}

// RunOnce executes a single ingest cycle and returns its report.
func (r *Runtime) RunOnce(ctx context.Context) Report {
	r.runMu.Lock()
	defer r.runMu.Unlock()
	return r.cycle.Run(ctx)
}

// Run serves metrics and drives cycles until ctx is cancelled, then
// shuts down gracefully.
func (r *Runtime) Run(ctx context.Context) error {
	if r == nil {
		return fmt.Errorf("runtime is nil")
	}
	r.startMetrics()
	r.obs.LogInfo("runtime_started",
		ports.Field{Key: "dir", Value: r.cfg.Watch.Dir},
		ports.Field{Key: "forwarder", Value: r.forwarder.Name()},
		ports.Field{Key: "interval", Value: r.cfg.Policy.Interval.String()},
		ports.Field{Key: "cron", Value: r.cfg.Policy.Cron})

	runErr := r.driver.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return errors.Join(runErr, r.Shutdown(shutdownCtx))
}

// Cursor reports the tracker position.
func (r *Runtime) Cursor() Cursor { return r.tracker.Snapshot() }

// LastReport returns the report of the most recent cycle.
func (r *Runtime) LastReport() (Report, bool) { return r.cycle.LastReport() }

// Shutdown stops the metrics server and releases the checkpoint store and
// DB connection.
func (r *Runtime) Shutdown(ctx context.Context) error {
	var errs []error

	if r.metricsSrv != nil {
		if err := r.metricsSrv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs = append(errs, err)
		}
	}

	if r.checkpoint != nil {
		if err := r.checkpoint.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if err := r.closeDB(); err != nil {
		errs = append(errs, err)
	}

	_ = r.log.Sync()
	return errors.Join(errs...)
}

func (r *Runtime) closeDB() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

func (r *Runtime) startMetrics() {
	r.metricsSrv = &http.Server{
		Addr:              r.cfg.Metrics.Addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := r.metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			r.obs.LogError("metrics_server_exited", err)
		}
	}()
}

type statusResponse struct {
	State      string  `json:"state"`
	Cursor     Cursor  `json:"cursor"`
	LastReport *Report `json:"last_report,omitempty"`
}

// Handler serves /metrics, /healthz and /status.
func (r *Runtime) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.metrics)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/status", func(w http.ResponseWriter, _ *http.Request) {
		resp := statusResponse{
			State:  r.cycle.State().String(),
			Cursor: r.Cursor(),
		}
		if rep, ok := r.LastReport(); ok {
			resp.LastReport = &rep
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})
	return mux
}

// serialRunner keeps scheduled cycles and RunOnce calls from overlapping.
type serialRunner struct{ rt *Runtime }

func (s serialRunner) Run(ctx context.Context) Report { return s.rt.RunOnce(ctx) }
