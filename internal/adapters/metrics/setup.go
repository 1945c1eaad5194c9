package metrics

import "fmt"

// Collectors groups the collectors created by Setup
type Collectors struct {
	Search   *SearchMetricsCollector
	Input    *InputMetricsCollector
	Commands *CommandMetricsCollector
}

// Setup initializes the registry, registers every collector and installs the
// global recorders. Call once at startup when metrics are enabled.
func Setup() (*Collectors, error) {
	InitRegistry()

	c := &Collectors{
		Search:   NewSearchMetricsCollector(),
		Input:    NewInputMetricsCollector(),
		Commands: NewCommandMetricsCollector(),
	}

	if err := c.Search.Register(); err != nil {
		return nil, fmt.Errorf("failed to register search metrics: %w", err)
	}
	if err := c.Input.Register(); err != nil {
		return nil, fmt.Errorf("failed to register input metrics: %w", err)
	}
	if err := c.Commands.Register(); err != nil {
		return nil, fmt.Errorf("failed to register command metrics: %w", err)
	}

	SetGlobalSearchCollector(c.Search)
	SetGlobalInputCollector(c.Input)

	return c, nil
}
