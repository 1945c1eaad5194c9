package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// CommandMetricsCollector records mediator traffic: evaluation commands and
// run queries alike
type CommandMetricsCollector struct {
	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	inFlight        prometheus.Gauge
}

// NewCommandMetricsCollector creates a new command metrics collector
func NewCommandMetricsCollector() *CommandMetricsCollector {
	return &CommandMetricsCollector{
		// Evaluations take seconds to minutes; queries are a single database read
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "request_duration_seconds",
				Help:      "Mediator request duration by request type and outcome",
				Buckets:   []float64{0.001, 0.01, 0.1, 1, 5, 15, 60, 300, 900},
			},
			[]string{"request", "kind", "status"},
		),

		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_total",
				Help:      "Total mediator requests by request type and outcome",
			},
			[]string{"request", "kind", "status"},
		),

		inFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_in_flight",
				Help:      "Mediator requests currently being handled",
			},
		),
	}
}

// Register registers all command metrics with the Prometheus registry
func (c *CommandMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}

	for _, metric := range []prometheus.Collector{c.requestDuration, c.requestsTotal, c.inFlight} {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}
	return nil
}

// RecordCommandExecution records one finished request
func (c *CommandMetricsCollector) RecordCommandExecution(name string, duration float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	kind := requestKind(name)

	c.requestDuration.WithLabelValues(name, kind, status).Observe(duration)
	c.requestsTotal.WithLabelValues(name, kind, status).Inc()
}

// requestKind classifies a request by its type name suffix
func requestKind(name string) string {
	switch {
	case strings.HasSuffix(name, "Command"):
		return "command"
	case strings.HasSuffix(name, "Query"):
		return "query"
	default:
		return "other"
	}
}
