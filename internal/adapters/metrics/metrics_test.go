package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/blueprints-go/internal/application/common"
	"github.com/andrescamacho/blueprints-go/internal/domain/blueprint"
	"github.com/andrescamacho/blueprints-go/internal/domain/search"
)

func TestSetup_RecordsThroughGlobals(t *testing.T) {
	// Arrange
	collectors, err := Setup()
	require.NoError(t, err)
	t.Cleanup(Reset)

	result := blueprint.Result{
		BlueprintID: 2,
		BestScore:   12,
		Stats:       search.Stats{Expanded: 100, Duplicates: 40, Pruned: 7, PeakFrontier: 30},
		Duration:    250 * time.Millisecond,
	}

	// Act
	RecordBlueprintEvaluation(blueprint.ModeQualitySum, result)
	RecordBlueprintFailure(blueprint.ModeQualitySum, 3)
	RecordRun(blueprint.ModeQualitySum, 33, true, 1.5)
	RecordCacheLookup(true)

	// Assert
	s := collectors.Search
	assert.Equal(t, 100.0, testutil.ToFloat64(s.statesExpanded.WithLabelValues("quality")))
	assert.Equal(t, 40.0, testutil.ToFloat64(s.statesDuplicate.WithLabelValues("quality")))
	assert.Equal(t, 7.0, testutil.ToFloat64(s.statesPruned.WithLabelValues("quality")))
	assert.Equal(t, 12.0, testutil.ToFloat64(s.bestScore.WithLabelValues("quality", "2")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.blueprintsTotal.WithLabelValues("quality", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.blueprintFailures.WithLabelValues("quality", "3")))
	assert.Equal(t, 1, testutil.CollectAndCount(s.blueprintFailures))
	assert.Equal(t, 33.0, testutil.ToFloat64(s.runAggregate.WithLabelValues("quality")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collectors.Input.cacheLookups.WithLabelValues("hit")))
	assert.True(t, IsEnabled())
	assert.Same(t, Registry, GetRegistry())
}

func TestGlobalRecorders_NoopWhenDisabled(t *testing.T) {
	Reset()

	assert.NotPanics(t, func() {
		RecordBlueprintEvaluation(blueprint.ModeTopProduct, blueprint.Result{BlueprintID: 1})
		RecordRun(blueprint.ModeTopProduct, 1, false, 0)
		RecordInputRetry("server error")
	})
	assert.False(t, IsEnabled())
	assert.NoError(t, Push(context.Background(), "http://127.0.0.1:1", "blueprints", nil))
}

func TestPush_SendsRegistryToGateway(t *testing.T) {
	// Arrange
	var gotPath, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	_, err := Setup()
	require.NoError(t, err)
	t.Cleanup(Reset)
	RecordRun(blueprint.ModeTopProduct, 56, true, 2)

	// Act
	err = Push(context.Background(), server.URL, "blueprints", map[string]string{"mode": "product"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/metrics/job/blueprints/mode/product", gotPath)
	assert.NotEmpty(t, gotBody)
}

type EvaluateBlueprintsCommand struct{}

func TestPrometheusMiddleware_RecordsCommandStatus(t *testing.T) {
	// Arrange
	collector := NewCommandMetricsCollector()
	mw := PrometheusMiddleware(collector)
	failing := func(ctx context.Context, request common.Request) (common.Response, error) {
		return nil, errors.New("boom")
	}

	// Act
	_, err := mw(context.Background(), &EvaluateBlueprintsCommand{}, failing)

	// Assert
	assert.Error(t, err)
	assert.Equal(t, 1, testutil.CollectAndCount(collector.requestsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.requestsTotal.WithLabelValues("EvaluateBlueprintsCommand", "command", "error")))
	assert.Equal(t, 0.0, testutil.ToFloat64(collector.inFlight))
}

func TestRequestKind(t *testing.T) {
	assert.Equal(t, "command", requestKind("EvaluateBlueprintsCommand"))
	assert.Equal(t, "query", requestKind("ListRunsQuery"))
	assert.Equal(t, "other", requestKind("pingRequest"))
}
