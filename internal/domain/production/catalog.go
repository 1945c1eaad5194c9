package production

import (
	"fmt"
	"strings"
)

// MaxKinds is the largest number of resource kinds a catalog may hold.
// States store per-kind vectors in fixed arrays so they stay comparable.
const MaxKinds = 8

// Kind identifies a resource kind by its position in a Catalog
type Kind uint8

// Quantities holds one value per resource kind, indexed by Kind
type Quantities [MaxKinds]int32

// Catalog is the ordered, fixed set of resource kinds a factory tracks.
//
// Order matters:
//   - the first kind is the primary raw material (the factory starts with one unit of its rate)
//   - the last kind is the output whose stock is the score
//   - kinds in between are intermediates, listed in dependency order
type Catalog struct {
	names []string
	index map[string]Kind
}

// DefaultCatalog is the ore/clay/obsidian/geode factory of the original puzzle
var DefaultCatalog = MustCatalog("ore", "clay", "obsidian", "geode")

// NewCatalog creates a catalog from kind names in dependency order
func NewCatalog(names ...string) (*Catalog, error) {
	if len(names) < 2 {
		return nil, &ErrInvalidCatalog{Reason: "need at least a primary and an output kind"}
	}
	if len(names) > MaxKinds {
		return nil, &ErrInvalidCatalog{Reason: fmt.Sprintf("%d kinds exceeds the maximum of %d", len(names), MaxKinds)}
	}

	c := &Catalog{
		names: make([]string, len(names)),
		index: make(map[string]Kind, len(names)),
	}
	for i, raw := range names {
		name := normalizeName(raw)
		if name == "" {
			return nil, &ErrInvalidCatalog{Reason: fmt.Sprintf("kind %d has an empty name", i)}
		}
		if _, exists := c.index[name]; exists {
			return nil, &ErrInvalidCatalog{Reason: fmt.Sprintf("duplicate kind %q", name)}
		}
		c.names[i] = name
		c.index[name] = Kind(i)
	}
	return c, nil
}

// MustCatalog creates a catalog and panics on error (for package-level defaults)
func MustCatalog(names ...string) *Catalog {
	c, err := NewCatalog(names...)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of kinds
func (c *Catalog) Len() int {
	return len(c.names)
}

// Primary returns the primary raw kind
func (c *Catalog) Primary() Kind {
	return 0
}

// Output returns the output kind
func (c *Catalog) Output() Kind {
	return Kind(len(c.names) - 1)
}

// Name returns the kind's name, or a placeholder for out-of-range kinds
func (c *Catalog) Name(k Kind) string {
	if int(k) >= len(c.names) {
		return fmt.Sprintf("kind#%d", k)
	}
	return c.names[k]
}

// Names returns a copy of the kind names in catalog order
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Kinds returns every kind in catalog order
func (c *Catalog) Kinds() []Kind {
	kinds := make([]Kind, len(c.names))
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// Lookup resolves a kind name (case-insensitive)
func (c *Catalog) Lookup(name string) (Kind, error) {
	k, ok := c.index[normalizeName(name)]
	if !ok {
		return 0, &ErrUnknownResource{Name: name}
	}
	return k, nil
}

// Contains reports whether k is a valid kind of this catalog
func (c *Catalog) Contains(k Kind) bool {
	return int(k) < len(c.names)
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
