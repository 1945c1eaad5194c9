package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/blueprints-go/internal/domain/blueprint"
)

const (
	// Namespace for all metrics
	namespace = "blueprints"
	// Subsystem for solver metrics
	subsystem = "solver"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalSearchCollector is the singleton search metrics collector
	// Set by SetGlobalSearchCollector() when metrics are enabled
	globalSearchCollector SearchMetricsRecorder

	// globalInputCollector is the singleton input retrieval metrics collector
	// Set by SetGlobalInputCollector() when metrics are enabled
	globalInputCollector InputMetricsRecorder
)

// SearchMetricsRecorder defines the interface for recording blueprint evaluation metrics
// This interface is used by application code to record metrics
type SearchMetricsRecorder interface {
	RecordBlueprintEvaluation(mode blueprint.Mode, result blueprint.Result)
	RecordBlueprintFailure(mode blueprint.Mode, blueprintID int)
	RecordRun(mode blueprint.Mode, aggregate int, success bool, duration float64)
}

// InputMetricsRecorder defines the interface for recording puzzle input retrieval metrics
type InputMetricsRecorder interface {
	RecordInputRequest(statusCode int, duration float64)
	RecordInputRetry(reason string)
	RecordRateLimitWait(duration float64)
	RecordCacheLookup(hit bool)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// Reset drops the registry and global collectors (metrics disabled)
func Reset() {
	Registry = nil
	globalSearchCollector = nil
	globalInputCollector = nil
}

// SetGlobalSearchCollector sets the global search metrics collector
func SetGlobalSearchCollector(collector SearchMetricsRecorder) {
	globalSearchCollector = collector
}

// RecordBlueprintEvaluation records a finished blueprint search globally
func RecordBlueprintEvaluation(mode blueprint.Mode, result blueprint.Result) {
	if globalSearchCollector != nil {
		globalSearchCollector.RecordBlueprintEvaluation(mode, result)
	}
}

// RecordBlueprintFailure records a blueprint whose evaluation aborted
func RecordBlueprintFailure(mode blueprint.Mode, blueprintID int) {
	if globalSearchCollector != nil {
		globalSearchCollector.RecordBlueprintFailure(mode, blueprintID)
	}
}

// RecordRun records a finished evaluation run globally
func RecordRun(mode blueprint.Mode, aggregate int, success bool, duration float64) {
	if globalSearchCollector != nil {
		globalSearchCollector.RecordRun(mode, aggregate, success, duration)
	}
}

// SetGlobalInputCollector sets the global input metrics collector
func SetGlobalInputCollector(collector InputMetricsRecorder) {
	globalInputCollector = collector
}

// RecordInputRequest records a completed puzzle input request globally
func RecordInputRequest(statusCode int, duration float64) {
	if globalInputCollector != nil {
		globalInputCollector.RecordInputRequest(statusCode, duration)
	}
}

// RecordInputRetry records a retry of the puzzle input request globally
func RecordInputRetry(reason string) {
	if globalInputCollector != nil {
		globalInputCollector.RecordInputRetry(reason)
	}
}

// RecordRateLimitWait records time spent waiting for the input rate limiter
func RecordRateLimitWait(duration float64) {
	if globalInputCollector != nil {
		globalInputCollector.RecordRateLimitWait(duration)
	}
}

// RecordCacheLookup records an input cache hit or miss
func RecordCacheLookup(hit bool) {
	if globalInputCollector != nil {
		globalInputCollector.RecordCacheLookup(hit)
	}
}
