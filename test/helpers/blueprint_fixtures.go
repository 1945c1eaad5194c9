package helpers

import (
	"testing"

	"github.com/andrescamacho/blueprints-go/internal/domain/blueprint"
	"github.com/andrescamacho/blueprints-go/internal/domain/production"
)

// SampleInput is the two-blueprint example from the puzzle statement
const SampleInput = `Blueprint 1:
  Each ore robot costs 4 ore.
  Each clay robot costs 2 ore.
  Each obsidian robot costs 3 ore and 14 clay.
  Each geode robot costs 2 ore and 7 obsidian.

Blueprint 2:
  Each ore robot costs 2 ore.
  Each clay robot costs 3 ore.
  Each obsidian robot costs 3 ore and 8 clay.
  Each geode robot costs 3 ore and 12 obsidian.
`

// SampleCostsOne returns the cost table of sample blueprint 1
func SampleCostsOne() map[string]map[string]int {
	return map[string]map[string]int{
		"ore":      {"ore": 4},
		"clay":     {"ore": 2},
		"obsidian": {"ore": 3, "clay": 14},
		"geode":    {"ore": 2, "obsidian": 7},
	}
}

// SampleCostsTwo returns the cost table of sample blueprint 2
func SampleCostsTwo() map[string]map[string]int {
	return map[string]map[string]int{
		"ore":      {"ore": 2},
		"clay":     {"ore": 3},
		"obsidian": {"ore": 3, "clay": 8},
		"geode":    {"ore": 3, "obsidian": 12},
	}
}

// CheapCosts returns a small table that keeps unpruned searches fast
func CheapCosts() map[string]map[string]int {
	return map[string]map[string]int{
		"clay":     {"ore": 1},
		"obsidian": {"ore": 1, "clay": 2},
		"geode":    {"ore": 1, "obsidian": 2},
	}
}

// NewTestCostTable builds a cost table over the default catalog or fails the test
func NewTestCostTable(t testing.TB, raw map[string]map[string]int) *production.CostTable {
	t.Helper()
	table, err := production.NewCostTable(production.DefaultCatalog, raw)
	if err != nil {
		t.Fatalf("failed to build cost table: %v", err)
	}
	return table
}

// NewTestBlueprint builds a blueprint over the default catalog or fails the test
func NewTestBlueprint(t testing.TB, id int, raw map[string]map[string]int) blueprint.Blueprint {
	t.Helper()
	bp, err := blueprint.NewBlueprint(id, NewTestCostTable(t, raw))
	if err != nil {
		t.Fatalf("failed to build blueprint %d: %v", id, err)
	}
	return bp
}

// SampleBlueprints returns both sample blueprints in input order
func SampleBlueprints(t testing.TB) []blueprint.Blueprint {
	t.Helper()
	return []blueprint.Blueprint{
		NewTestBlueprint(t, 1, SampleCostsOne()),
		NewTestBlueprint(t, 2, SampleCostsTwo()),
	}
}
