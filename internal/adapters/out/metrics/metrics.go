// Package metrics exports production progress as Prometheus metrics. The
// Metrics type is a ports.ProgressionObserver, so every committed creation
// and stage transition is counted.
package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"production/internal/core/domain/model/order"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector of the service on a private registry.
type Metrics struct {
	registry *prometheus.Registry
	logger   *slog.Logger

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	OrdersCreated    *prometheus.CounterVec
	OrdersCompleted  prometheus.Counter
	StageTransitions *prometheus.CounterVec
	StageDuration    *prometheus.HistogramVec
}

// Config holds metrics configuration.
type Config struct {
	Namespace string
	// GoCollectors adds the Go runtime and process collectors.
	GoCollectors bool
}

// DefaultConfig returns the configuration used by the server.
func DefaultConfig() Config {
	return Config{Namespace: "production", GoCollectors: true}
}

// New creates and registers all collectors.
func New(cfg Config, logger *slog.Logger) *Metrics {
	if logger == nil {
		logger = slog.Default()
	}

	registry := prometheus.NewRegistry()
	if cfg.GoCollectors {
		registry.MustRegister(prometheus.NewGoCollector())
		registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	}

	m := &Metrics{
		registry: registry,
		logger:   logger.With("component", "metrics"),
	}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	m.OrdersCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "orders_created_total",
			Help:      "Total number of work orders created",
		},
		[]string{"first_stage"},
	)

	m.OrdersCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "orders_completed_total",
			Help:      "Total number of work orders that left their last stage",
		},
	)

	m.StageTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "stage_transitions_total",
			Help:      "Total number of stage exits",
		},
		[]string{"stage"},
	)

	m.StageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "stage_duration_seconds",
			Help:      "Time an order spent in a stage",
			Buckets:   []float64{60, 300, 900, 1800, 3600, 7200, 14400, 28800, 86400, 259200},
		},
		[]string{"stage"},
	)

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.OrdersCreated,
		m.OrdersCompleted,
		m.StageTransitions,
		m.StageDuration,
	)

	return m
}

// Handler returns the scrape endpoint for the private registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// OrderCreated counts a new order by the stage it starts in.
func (m *Metrics) OrderCreated(ctx context.Context, o *order.WorkOrder) {
	m.OrdersCreated.WithLabelValues(o.CurrentStage().String()).Inc()
	m.logger.DebugContext(ctx, "order created",
		"order_id", o.ID().String(),
		"number", o.Number(),
		"stage", o.CurrentStage().String(),
	)
}

// OrderAdvanced counts the exit and observes how long the stage took.
func (m *Metrics) OrderAdvanced(ctx context.Context, tr order.Transition) {
	left := tr.Left.String()
	m.StageTransitions.WithLabelValues(left).Inc()
	m.StageDuration.WithLabelValues(left).Observe(tr.Record.DurationSeconds())
	if tr.Completed {
		m.OrdersCompleted.Inc()
	}

	m.logger.DebugContext(ctx, "order advanced",
		"order_id", tr.Record.OrderID().String(),
		"left", left,
		"entered", tr.Entered.String(),
		"completed", tr.Completed,
	)
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}
