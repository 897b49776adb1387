package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/sitekit/pkg/features/validate"
)

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "sitekit").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for submit duration.
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
		Namespace: "sitekit",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics records validation and session metrics. It implements
// validate.Observer.
type Metrics struct {
	fieldValidations *prometheus.CounterVec
	ruleFailures     *prometheus.CounterVec
	submitsTotal     *prometheus.CounterVec
	submitDuration   *prometheus.HistogramVec
	activeSessions   prometheus.Gauge
	sessionEvents    *prometheus.CounterVec
	wsErrors         *prometheus.CounterVec
}

// Prometheus creates the metrics and registers them with the configured
// registry. Registering twice with the same registry panics, as promauto does.
func Prometheus(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		fieldValidations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "field_validations_total",
			Help:        "Total number of field validations",
			ConstLabels: config.ConstLabels,
		}, []string{"form", "trigger", "outcome"}),

		ruleFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "rule_failures_total",
			Help:        "Total number of failed validation rules",
			ConstLabels: config.ConstLabels,
		}, []string{"form", "rule"}),

		submitsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "submits_total",
			Help:        "Total number of form submissions",
			ConstLabels: config.ConstLabels,
		}, []string{"form", "outcome"}),

		submitDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "submit_duration_seconds",
			Help:        "Submit validation duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"form"}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Number of live websocket sessions",
			ConstLabels: config.ConstLabels,
		}),

		sessionEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "session_events_total",
			Help:        "Total events received by live sessions",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_errors_total",
			Help:        "Total websocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),
	}
}

func outcome(valid bool) string {
	if valid {
		return "valid"
	}
	return "invalid"
}

// ObserveField implements validate.Observer.
func (m *Metrics) ObserveField(r validate.FieldResult) {
	m.fieldValidations.WithLabelValues(r.Form, string(r.Trigger), outcome(r.State.Valid)).Inc()
	for _, k := range r.State.Failed {
		m.ruleFailures.WithLabelValues(r.Form, k.String()).Inc()
	}
}

// ObserveSubmit implements validate.Observer.
func (m *Metrics) ObserveSubmit(r validate.SubmitResult) {
	m.submitsTotal.WithLabelValues(r.Form, outcome(r.Valid)).Inc()
	m.submitDuration.WithLabelValues(r.Form).Observe(r.End.Sub(r.Start).Seconds())
}

// SessionStarted records a new live session.
func (m *Metrics) SessionStarted() { m.activeSessions.Inc() }

// SessionEnded records a closed live session.
func (m *Metrics) SessionEnded() { m.activeSessions.Dec() }

// SessionEvent records an event received by a live session.
func (m *Metrics) SessionEvent(typ string) { m.sessionEvents.WithLabelValues(typ).Inc() }

// WebSocketError records a websocket error.
func (m *Metrics) WebSocketError(errorType string) { m.wsErrors.WithLabelValues(errorType).Inc() }
