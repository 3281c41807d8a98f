package middleware

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/reconcile"
)

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vtree").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for pass duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus observer.
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
		Namespace: "vtree",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics is a reconcile.Observer that records Prometheus metrics. The
// server also records session and frame counts on it.
type Metrics struct {
	passesTotal  *prometheus.CounterVec
	passDuration *prometheus.HistogramVec
	mutations    *prometheus.CounterVec
	matches      *prometheus.CounterVec
	unmounts     prometheus.Counter
	mounts       prometheus.Counter

	activeSessions prometheus.Gauge
	frames         *prometheus.CounterVec
	wsErrors       *prometheus.CounterVec
}

var _ reconcile.Observer = (*Metrics)(nil)

// Prometheus creates the metrics observer and registers its collectors
// with the configured registry. Registering twice with the same registry
// panics, so create one per registry and share it between renderers.
func Prometheus(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	counter := func(name, help string, labels ...string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}, labels)
	}

	return &Metrics{
		passesTotal: counter("passes_total",
			"Total number of reconciliation passes", "kind", "status"),

		passDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pass_duration_seconds",
			Help:        "Reconciliation pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"kind"}),

		mutations: counter("mutations_total",
			"Host mutations applied by reconciliation", "op"),

		matches: counter("matches_total",
			"New descriptors by how they were matched", "match"),

		unmounts: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "unmounts_total",
			Help:        "Descriptors torn down",
			ConstLabels: config.ConstLabels,
		}),

		mounts: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "mounts_total",
			Help:        "Component DidMount callbacks run",
			ConstLabels: config.ConstLabels,
		}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Number of live WebSocket sessions",
			ConstLabels: config.ConstLabels,
		}),

		frames: counter("frames_total",
			"Protocol frames by direction and type", "direction", "type"),

		wsErrors: counter("websocket_errors_total",
			"Total WebSocket errors by type", "type"),
	}
}

// PassStart implements reconcile.Observer.
func (m *Metrics) PassStart(ctx context.Context, _ reconcile.PassInfo) context.Context {
	return ctx
}

// PassEnd implements reconcile.Observer.
func (m *Metrics) PassEnd(_ context.Context, info reconcile.PassInfo, stats reconcile.PassStats, err error) {
	kind := info.Kind.String()
	status := "success"
	if err != nil {
		status = "error"
	}
	m.passesTotal.WithLabelValues(kind, status).Inc()
	m.passDuration.WithLabelValues(kind).Observe(stats.Duration.Seconds())

	for op, n := range mutationCounts(stats.Mutations) {
		if n > 0 {
			m.mutations.WithLabelValues(op).Add(float64(n))
		}
	}
	for match, n := range stats.Matches {
		if n > 0 {
			m.matches.WithLabelValues(reconcile.MatchKind(match).String()).Add(float64(n))
		}
	}
	m.unmounts.Add(float64(stats.Unmounted))
	m.mounts.Add(float64(stats.Mounted))
}

// mutationCounts maps stats onto operation labels. Creates cover both
// element and text nodes.
func mutationCounts(s host.Stats) map[string]int {
	return map[string]int{
		"create":      s.Creates,
		"append":      s.Appends,
		"insert":      s.Inserts,
		"remove":      s.Removes,
		"set_attr":    s.AttrSets,
		"remove_attr": s.AttrRemoves,
		"set_text":    s.TextSets,
	}
}

// SessionOpened records a new live session.
func (m *Metrics) SessionOpened() {
	m.activeSessions.Inc()
}

// SessionClosed records the end of a live session.
func (m *Metrics) SessionClosed() {
	m.activeSessions.Dec()
}

// RecordFrame counts a protocol frame. direction is "in" or "out".
func (m *Metrics) RecordFrame(direction, frameType string) {
	m.frames.WithLabelValues(direction, frameType).Inc()
}

// RecordWebSocketError records a WebSocket error.
func (m *Metrics) RecordWebSocketError(errorType string) {
	m.wsErrors.WithLabelValues(errorType).Inc()
}
