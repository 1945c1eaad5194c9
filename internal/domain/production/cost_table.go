package production

import (
	"fmt"
	"sort"
)

// CostTable holds, for each producible kind, the resources consumed to add one
// unit of production rate for that kind. It is immutable once built and may be
// shared between concurrent evaluations.
type CostTable struct {
	catalog    *Catalog
	recipes    [MaxKinds]Quantities
	producible [MaxKinds]bool
	ceilings   [MaxKinds]int32
}

// NewCostTable validates a name-keyed cost table against the catalog.
//
// raw maps a producible kind to its ingredients, e.g.
//
//	{"clay": {"ore": 2}, "geode": {"ore": 2, "obsidian": 7}}
//
// Unknown kind names, negative quantities and a missing output recipe are
// reported as *ErrMalformedCostTable; nothing is returned for a malformed table.
func NewCostTable(catalog *Catalog, raw map[string]map[string]int) (*CostTable, error) {
	if catalog == nil {
		return nil, &ErrMalformedCostTable{Reason: "no resource catalog"}
	}

	t := &CostTable{catalog: catalog}

	// Sorted iteration keeps error reporting deterministic
	products := make([]string, 0, len(raw))
	for name := range raw {
		products = append(products, name)
	}
	sort.Strings(products)

	for _, productName := range products {
		product, err := catalog.Lookup(productName)
		if err != nil {
			return nil, &ErrMalformedCostTable{Reason: "recipe for unrecognized kind", Err: err}
		}
		if t.producible[product] {
			return nil, &ErrMalformedCostTable{Reason: fmt.Sprintf("duplicate recipe for %s", catalog.Name(product))}
		}

		ingredients := raw[productName]
		names := make([]string, 0, len(ingredients))
		for name := range ingredients {
			names = append(names, name)
		}
		sort.Strings(names)

		var bill Quantities
		for _, ingredientName := range names {
			ingredient, err := catalog.Lookup(ingredientName)
			if err != nil {
				return nil, &ErrMalformedCostTable{
					Reason: fmt.Sprintf("recipe for %s references unrecognized kind", catalog.Name(product)),
					Err:    err,
				}
			}
			qty := ingredients[ingredientName]
			if qty < 0 {
				return nil, &ErrMalformedCostTable{
					Reason: fmt.Sprintf("recipe for %s needs %d %s", catalog.Name(product), qty, catalog.Name(ingredient)),
				}
			}
			bill[ingredient] += int32(qty)
		}

		t.recipes[product] = bill
		t.producible[product] = true
	}

	if !t.producible[catalog.Output()] {
		return nil, &ErrMalformedCostTable{Reason: fmt.Sprintf("no recipe for output kind %s", catalog.Name(catalog.Output()))}
	}

	for _, product := range catalog.Kinds() {
		if !t.producible[product] {
			continue
		}
		for _, ingredient := range catalog.Kinds() {
			if t.recipes[product][ingredient] > t.ceilings[ingredient] {
				t.ceilings[ingredient] = t.recipes[product][ingredient]
			}
		}
	}

	return t, nil
}

// Catalog returns the catalog the table was validated against
func (t *CostTable) Catalog() *Catalog {
	return t.catalog
}

// Recipe returns the bill of resources for one unit of kind k
func (t *CostTable) Recipe(k Kind) (Quantities, bool) {
	if !t.catalog.Contains(k) || !t.producible[k] {
		return Quantities{}, false
	}
	return t.recipes[k], true
}

// Producible reports whether the table has a recipe for k
func (t *CostTable) Producible(k Kind) bool {
	return t.catalog.Contains(k) && t.producible[k]
}

// MaxConsumption returns the largest quantity of k any single recipe consumes.
// Producing k faster than this per step can never help: no build can spend the surplus.
func (t *CostTable) MaxConsumption(k Kind) int {
	if !t.catalog.Contains(k) {
		return 0
	}
	return int(t.ceilings[k])
}

// Raw returns the name-keyed form of the table (zero quantities omitted)
func (t *CostTable) Raw() map[string]map[string]int {
	raw := make(map[string]map[string]int)
	for _, product := range t.catalog.Kinds() {
		if !t.producible[product] {
			continue
		}
		ingredients := make(map[string]int)
		for _, ingredient := range t.catalog.Kinds() {
			if qty := t.recipes[product][ingredient]; qty > 0 {
				ingredients[t.catalog.Name(ingredient)] = int(qty)
			}
		}
		raw[t.catalog.Name(product)] = ingredients
	}
	return raw
}
