package blueprint

import (
	"github.com/andrescamacho/blueprints-go/internal/domain/production"
)

// Blueprint is one problem instance: a numbered cost table.
// ID is the 1-based number used to weight the quality score.
type Blueprint struct {
	ID    int
	Costs *production.CostTable
}

// NewBlueprint validates and creates a blueprint
func NewBlueprint(id int, costs *production.CostTable) (Blueprint, error) {
	if id < 1 {
		return Blueprint{}, &ErrInvalidBlueprint{ID: id, Reason: "id must be >= 1"}
	}
	if costs == nil {
		return Blueprint{}, &ErrInvalidBlueprint{ID: id, Reason: "missing cost table"}
	}
	return Blueprint{ID: id, Costs: costs}, nil
}

// Catalog returns the resource catalog of the blueprint's cost table
func (b Blueprint) Catalog() *production.Catalog {
	return b.Costs.Catalog()
}
