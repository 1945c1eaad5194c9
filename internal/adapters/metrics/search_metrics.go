package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/blueprints-go/internal/domain/blueprint"
)

// SearchMetricsCollector handles blueprint search and evaluation run metrics
type SearchMetricsCollector struct {
	// Per-blueprint search metrics
	blueprintsTotal    *prometheus.CounterVec
	blueprintFailures  *prometheus.CounterVec
	statesExpanded     *prometheus.CounterVec
	statesDuplicate    *prometheus.CounterVec
	statesPruned       *prometheus.CounterVec
	peakFrontier       *prometheus.GaugeVec
	evaluationDuration *prometheus.HistogramVec
	bestScore          *prometheus.GaugeVec

	// Run metrics
	runsTotal    *prometheus.CounterVec
	runDuration  *prometheus.HistogramVec
	runAggregate *prometheus.GaugeVec
}

// NewSearchMetricsCollector creates a new search metrics collector
func NewSearchMetricsCollector() *SearchMetricsCollector {
	return &SearchMetricsCollector{
		blueprintsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "blueprints_evaluated_total",
				Help:      "Total number of blueprint evaluations by mode and status",
			},
			[]string{"mode", "status"},
		),

		blueprintFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "blueprint_failures_total",
				Help:      "Aborted blueprint evaluations by mode and blueprint",
			},
			[]string{"mode", "blueprint"},
		),

		statesExpanded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "states_expanded_total",
				Help:      "Total number of search states expanded",
			},
			[]string{"mode"},
		),

		statesDuplicate: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "states_duplicate_total",
				Help:      "Total number of dequeued states dropped as already visited",
			},
			[]string{"mode"},
		),

		statesPruned: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "states_pruned_total",
				Help:      "Total number of states discarded by the optimistic bound",
			},
			[]string{"mode"},
		),

		peakFrontier: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "peak_frontier_states",
				Help:      "Largest frontier size seen during the last search of a blueprint",
			},
			[]string{"mode", "blueprint"},
		),

		evaluationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "blueprint_evaluation_duration_seconds",
				Help:      "Blueprint search duration distribution",
				Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
			},
			[]string{"mode"},
		),

		bestScore: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "best_score",
				Help:      "Best terminal score of the last search of a blueprint",
			},
			[]string{"mode", "blueprint"},
		),

		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "runs_total",
				Help:      "Total number of evaluation runs by mode and status",
			},
			[]string{"mode", "status"},
		),

		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "run_duration_seconds",
				Help:      "Evaluation run duration distribution",
				Buckets:   []float64{0.01, 0.1, 0.5, 1.0, 5.0, 10.0, 30.0, 60.0, 120.0},
			},
			[]string{"mode"},
		),

		runAggregate: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "run_aggregate",
				Help:      "Aggregate value (quality sum or product) of the last successful run",
			},
			[]string{"mode"},
		),
	}
}

// Register registers all search metrics with the Prometheus registry
func (c *SearchMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.blueprintsTotal,
		c.blueprintFailures,
		c.statesExpanded,
		c.statesDuplicate,
		c.statesPruned,
		c.peakFrontier,
		c.evaluationDuration,
		c.bestScore,
		c.runsTotal,
		c.runDuration,
		c.runAggregate,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordBlueprintEvaluation records the search statistics of one blueprint
func (c *SearchMetricsCollector) RecordBlueprintEvaluation(mode blueprint.Mode, result blueprint.Result) {
	m := mode.String()
	id := strconv.Itoa(result.BlueprintID)

	c.blueprintsTotal.WithLabelValues(m, "success").Inc()
	c.statesExpanded.WithLabelValues(m).Add(float64(result.Stats.Expanded))
	c.statesDuplicate.WithLabelValues(m).Add(float64(result.Stats.Duplicates))
	c.statesPruned.WithLabelValues(m).Add(float64(result.Stats.Pruned))
	c.peakFrontier.WithLabelValues(m, id).Set(float64(result.Stats.PeakFrontier))
	c.evaluationDuration.WithLabelValues(m).Observe(result.Duration.Seconds())
	c.bestScore.WithLabelValues(m, id).Set(float64(result.BestScore))
}

// RecordBlueprintFailure records an aborted blueprint evaluation
func (c *SearchMetricsCollector) RecordBlueprintFailure(mode blueprint.Mode, blueprintID int) {
	c.blueprintsTotal.WithLabelValues(mode.String(), "error").Inc()
	c.blueprintFailures.WithLabelValues(mode.String(), strconv.Itoa(blueprintID)).Inc()
}

// RecordRun records the outcome of an evaluation run
func (c *SearchMetricsCollector) RecordRun(mode blueprint.Mode, aggregate int, success bool, duration float64) {
	status := "success"
	if !success {
		status = "error"
	}

	c.runsTotal.WithLabelValues(mode.String(), status).Inc()
	c.runDuration.WithLabelValues(mode.String()).Observe(duration)
	if success {
		c.runAggregate.WithLabelValues(mode.String()).Set(float64(aggregate))
	}
}
