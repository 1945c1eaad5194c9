package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// InputMetricsCollector handles puzzle input retrieval metrics
type InputMetricsCollector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration prometheus.Histogram
	retries         *prometheus.CounterVec
	rateLimitWait   prometheus.Histogram
	cacheLookups    *prometheus.CounterVec
}

// NewInputMetricsCollector creates a new input metrics collector
func NewInputMetricsCollector() *InputMetricsCollector {
	return &InputMetricsCollector{
		// Total input requests by status code
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "input",
				Name:      "requests_total",
				Help:      "Total number of puzzle input requests by status code",
			},
			[]string{"status_code"},
		),

		requestDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "input",
				Name:      "request_duration_seconds",
				Help:      "Puzzle input request duration distribution",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
			},
		),

		retries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "input",
				Name:      "retries_total",
				Help:      "Total number of puzzle input retry attempts",
			},
			[]string{"reason"},
		),

		rateLimitWait: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "input",
				Name:      "rate_limit_wait_seconds",
				Help:      "Time spent waiting for the rate limiter",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1.0, 2.0, 5.0},
			},
		),

		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "input",
				Name:      "cache_lookups_total",
				Help:      "Puzzle input cache lookups by result",
			},
			[]string{"result"},
		),
	}
}

// Register registers all input metrics with the Prometheus registry
func (c *InputMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.requestsTotal,
		c.requestDuration,
		c.retries,
		c.rateLimitWait,
		c.cacheLookups,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordInputRequest records a completed request
func (c *InputMetricsCollector) RecordInputRequest(statusCode int, duration float64) {
	c.requestsTotal.WithLabelValues(strconv.Itoa(statusCode)).Inc()
	c.requestDuration.Observe(duration)
}

// RecordInputRetry records a retry attempt
func (c *InputMetricsCollector) RecordInputRetry(reason string) {
	c.retries.WithLabelValues(reason).Inc()
}

// RecordRateLimitWait records time spent waiting for the rate limiter
func (c *InputMetricsCollector) RecordRateLimitWait(duration float64) {
	c.rateLimitWait.Observe(duration)
}

// RecordCacheLookup records a cache hit or miss
func (c *InputMetricsCollector) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.cacheLookups.WithLabelValues(result).Inc()
}
