package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/andrescamacho/blueprints-go/internal/domain/blueprint"
)

// writeRunText prints a run as an aligned table followed by the aggregate
func writeRunText(w io.Writer, run *blueprint.EvaluationRun, saved bool) {
	fmt.Fprintf(w, "Run %s (%s mode, %d minutes)\n", run.ID(), run.Mode(), run.TimeBudget())
	fmt.Fprintln(w, strings.Repeat("=", 64))
	fmt.Fprintf(w, "%-10s %-6s %-8s %-12s %-12s %-10s\n", "BLUEPRINT", "BEST", "QUALITY", "EXPANDED", "DUPLICATES", "TIME")

	for _, res := range run.Results() {
		fmt.Fprintf(w, "%-10d %-6d %-8d %-12d %-12d %-10s\n",
			res.BlueprintID,
			res.BestScore,
			res.Quality(),
			res.Stats.Expanded,
			res.Stats.Duplicates,
			res.Duration.Round(time.Millisecond),
		)
	}

	fmt.Fprintln(w, strings.Repeat("-", 64))
	label := "Quality sum"
	if run.Mode() == blueprint.ModeTopProduct {
		label = "Product"
	}
	fmt.Fprintf(w, "%s: %d\n", label, run.Aggregate())
	fmt.Fprintf(w, "States expanded: %d in %s\n", run.StatesExpanded(), run.Duration().Round(time.Millisecond))
	if saved {
		fmt.Fprintf(w, "Saved as %s\n", run.ID())
	}
}

// writeRunList prints one line per saved run, newest first
func writeRunList(w io.Writer, runs []*blueprint.EvaluationRun) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No saved runs")
		return
	}

	fmt.Fprintf(w, "%-28s %-8s %-8s %-11s %-12s %s\n", "ID", "MODE", "MINUTES", "BLUEPRINTS", "AGGREGATE", "STARTED")
	for _, run := range runs {
		fmt.Fprintf(w, "%-28s %-8s %-8d %-11d %-12d %s\n",
			run.ID(),
			run.Mode(),
			run.TimeBudget(),
			len(run.Results()),
			run.Aggregate(),
			run.StartedAt().Local().Format("2006-01-02 15:04:05"),
		)
	}
}
