package middleware

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	canonerrors "github.com/canonui/canon/internal/errors"
	"github.com/canonui/canon/pkg/behavior"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "canon").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for attach duration.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "canon",
		// Attaches are short; the default buckets start at 5ms.
		Buckets:  []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .025, .1},
		Registry: prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus metrics for the runtime.
type metrics struct {
	attachTotal     *prometheus.CounterVec
	attachDuration  *prometheus.HistogramVec
	attachErrors    *prometheus.CounterVec
	scansTotal      prometheus.Counter
	scanMatched     prometheus.Counter
	scanSkipped     prometheus.Counter
	componentStates prometheus.Gauge
}

// globalMetrics is created by the first call to Prometheus().
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		attachTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "attach_total",
			Help:        "Total number of behaviour attaches",
			ConstLabels: config.ConstLabels,
		}, []string{"attribute", "kind", "status"}),

		attachDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "attach_duration_seconds",
			Help:        "Behaviour attach duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"attribute"}),

		attachErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "attach_errors_total",
			Help:        "Total number of failed behaviour attaches",
			ConstLabels: config.ConstLabels,
		}, []string{"attribute", "error_type"}),

		scansTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "scans_total",
			Help:        "Total number of document scans",
			ConstLabels: config.ConstLabels,
		}),

		scanMatched: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "scan_matched_total",
			Help:        "Total number of elements matched by scans",
			ConstLabels: config.ConstLabels,
		}),

		scanSkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "scan_skipped_total",
			Help:        "Total number of matched elements skipped as already attached or without id",
			ConstLabels: config.ConstLabels,
		}),

		componentStates: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "component_states",
			Help:        "Number of component states in the store",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Prometheus creates middleware that collects Prometheus metrics for
// behaviour attaches. Metrics are registered once per process; later calls
// reuse them and ignore their options.
func Prometheus(opts ...MetricsOption) behavior.Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return func(ctx behavior.AttachContext, next func() error) error {
		start := time.Now()
		err := next()
		m.attachDuration.WithLabelValues(ctx.Attribute).Observe(time.Since(start).Seconds())

		status := "success"
		if err != nil {
			status = "error"
			m.attachErrors.WithLabelValues(ctx.Attribute, categorizeError(err)).Inc()
		}
		m.attachTotal.WithLabelValues(ctx.Attribute, ctx.Kind.String(), status).Inc()
		return err
	}
}

// categorizeError returns a low-cardinality label for err.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, ErrPanic):
		return "panic"
	}
	switch canonerrors.KindOf(err) {
	case canonerrors.KindElementNotFound:
		return "not_found"
	case canonerrors.KindInvalidSelector, canonerrors.KindInvalidConfig:
		return "invalid"
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout"):
		return "timeout"
	case strings.Contains(msg, "not found"):
		return "not_found"
	case strings.Contains(msg, "invalid"):
		return "invalid"
	default:
		return "internal"
	}
}

// RecordScan records the outcome of one scan.
func RecordScan(report behavior.ScanReport) {
	if globalMetrics != nil {
		globalMetrics.scansTotal.Inc()
		globalMetrics.scanMatched.Add(float64(report.Matched))
		globalMetrics.scanSkipped.Add(float64(report.Skipped))
	}
}

// RecordComponentStates records the size of the component state store.
func RecordComponentStates(n int) {
	if globalMetrics != nil {
		globalMetrics.componentStates.Set(float64(n))
	}
}
