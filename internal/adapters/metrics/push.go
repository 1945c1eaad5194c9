package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus/push"
)

// Push sends the current registry to a Prometheus Pushgateway.
// The CLI is a batch job, so metrics are pushed once at exit instead of scraped.
// Does nothing when metrics are disabled or url is empty.
func Push(ctx context.Context, url, job string, grouping map[string]string) error {
	registry := GetRegistry()
	if registry == nil || url == "" {
		return nil
	}

	pusher := push.New(url, job).Gatherer(registry)
	for name, value := range grouping {
		pusher = pusher.Grouping(name, value)
	}

	if err := pusher.AddContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", url, err)
	}
	return nil
}
