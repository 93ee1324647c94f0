package main

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/canonui/canon/internal/config"
	"github.com/canonui/canon/pkg/behavior"
	"github.com/canonui/canon/pkg/behavior/standard"
	"github.com/canonui/canon/pkg/middleware"
	"github.com/canonui/canon/pkg/reactive"
	"github.com/canonui/canon/pkg/store"
	"github.com/canonui/canon/pkg/vdom"
)

// loadConfig resolves the configuration for a command: the --config file
// or the nearest canon.yaml, environment overrides, then flag overrides.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if flags.configPath != "" {
		cfg, err = config.Load(flags.configPath)
		if err == nil {
			cfg.ApplyEnv(os.LookupEnv)
		}
	} else {
		cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return nil, err
	}

	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.Log.Format = flags.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runtime is one document with the standard behaviours attached.
type runtime struct {
	cfg       *config.Config
	logger    *slog.Logger
	doc       *vdom.Document
	reg       *behavior.Registry
	scanner   *behavior.Scanner
	behaviors *reactive.Group

	// mu serialises document access between the watcher and HTTP handlers.
	mu   sync.Mutex
	last behavior.ScanReport
}

func newRuntime(cfg *config.Config, logger *slog.Logger, doc *vdom.Document) *runtime {
	rt := &runtime{cfg: cfg, logger: logger, doc: doc}

	rt.reg = behavior.NewRegistry(store.New(),
		behavior.WithLogger(logger),
		behavior.WithMarkerPrefix(cfg.MarkerPrefix),
	)
	rt.behaviors = standard.Register(rt.reg)

	mw := []behavior.Middleware{middleware.Recover(), middleware.Logging(logger)}
	if cfg.Metrics.Enabled {
		mw = append(mw, middleware.Prometheus(middleware.WithNamespace(cfg.Metrics.Namespace)))
	}
	mw = append(mw, middleware.OpenTelemetry())

	opts := []behavior.ScannerOption{
		behavior.WithMiddleware(mw...),
		behavior.WithTelemetry(behavior.NewTelemetryWithLimit(cfg.Telemetry.Limit)),
		behavior.WithScanHook(rt.onScan),
	}
	if cfg.Root != "" {
		opts = append(opts, behavior.WithRootSelector(cfg.Root))
	}
	rt.scanner = behavior.NewScanner(rt.reg, doc, opts...)
	return rt
}

func (rt *runtime) onScan(report behavior.ScanReport) {
	rt.last = report
	if rt.cfg.Metrics.Enabled {
		middleware.RecordScan(report)
		middleware.RecordComponentStates(rt.reg.Store().Len())
	}
	rt.logger.Debug("scan complete",
		"matched", report.Matched,
		"attached", report.Attached,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)
}

// start runs the initial scan and installs the mutation observer.
func (rt *runtime) start(ctx context.Context) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.scanner.Start(ctx)
}

// replace swaps the document body and delivers the resulting mutations.
func (rt *runtime) replace(apply func(*vdom.Document) error) (behavior.ScanReport, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	before, _ := rt.scanner.Totals()
	if err := apply(rt.doc); err != nil {
		return behavior.ScanReport{}, err
	}
	rt.doc.Flush()

	// A flush may run several scans; report their sum.
	after, _ := rt.scanner.Totals()
	rt.last = behavior.ScanReport{
		Matched:  after.Matched - before.Matched,
		Attached: after.Attached - before.Attached,
		Skipped:  after.Skipped - before.Skipped,
		Failed:   after.Failed - before.Failed,
		Errors:   after.Errors[len(before.Errors):],
	}
	return rt.last, nil
}

// runtimeStatus is the JSON view of the runtime.
type runtimeStatus struct {
	Last      behavior.ScanReport        `json:"last_scan"`
	Total     behavior.ScanReport        `json:"total"`
	Scans     int                        `json:"scans"`
	States    int                        `json:"component_states"`
	Behaviors []string                   `json:"behaviors"`
	Telemetry []behavior.TelemetryRecord `json:"telemetry,omitempty"`
	Errors    []string                   `json:"errors,omitempty"`
}

func (rt *runtime) status(withTelemetry bool) runtimeStatus {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	total, scans := rt.scanner.Totals()
	s := runtimeStatus{
		Last:      rt.last,
		Total:     total,
		Scans:     scans,
		States:    rt.reg.Store().Len(),
		Behaviors: rt.reg.Attributes(),
	}
	for _, err := range rt.last.Errors {
		s.Errors = append(s.Errors, err.Error())
	}
	if withTelemetry {
		s.Telemetry = rt.scanner.Telemetry().Records()
	}
	return s
}

func (rt *runtime) close() {
	rt.scanner.Dispose()
	rt.behaviors.Dispose()
}

// render returns the document as indented HTML.
func (rt *runtime) render() (string, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return vdom.RenderToString(rt.doc.DocumentElement(), vdom.RenderConfig{Pretty: true})
}
