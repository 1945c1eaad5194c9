package parser

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/blueprints-go/internal/domain/blueprint"
	"github.com/andrescamacho/blueprints-go/internal/domain/production"
)

// yamlDocument is the structured blueprint file format:
//
//	catalog: [ore, clay, obsidian, geode]
//	blueprints:
//	  - id: 1
//	    costs:
//	      ore: {ore: 4}
//	      geode: {ore: 2, obsidian: 7}
//
// The catalog is optional and defaults to ore/clay/obsidian/geode.
type yamlDocument struct {
	Catalog    []string        `yaml:"catalog,omitempty"`
	Blueprints []yamlBlueprint `yaml:"blueprints"`
}

type yamlBlueprint struct {
	ID    int                       `yaml:"id"`
	Costs map[string]map[string]int `yaml:"costs"`
}

// LoadYAML decodes a structured blueprint file
func LoadYAML(r io.Reader) ([]blueprint.Blueprint, error) {
	var doc yamlDocument
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, blueprint.ErrNoBlueprints
		}
		return nil, &ErrMalformedBlueprint{Reason: "invalid YAML", Err: err}
	}

	catalog := production.DefaultCatalog
	if len(doc.Catalog) > 0 {
		custom, err := production.NewCatalog(doc.Catalog...)
		if err != nil {
			return nil, &ErrMalformedBlueprint{Reason: "invalid catalog", Err: err}
		}
		catalog = custom
	}

	if len(doc.Blueprints) == 0 {
		return nil, blueprint.ErrNoBlueprints
	}

	blueprints := make([]blueprint.Blueprint, 0, len(doc.Blueprints))
	seen := make(map[int]bool, len(doc.Blueprints))
	for _, entry := range doc.Blueprints {
		if seen[entry.ID] {
			return nil, &ErrMalformedBlueprint{ID: entry.ID, Reason: "duplicate blueprint id"}
		}
		seen[entry.ID] = true

		bp, err := buildBlueprint(catalog, entry.ID, entry.Costs)
		if err != nil {
			return nil, err
		}
		blueprints = append(blueprints, bp)
	}

	return blueprints, nil
}

// EncodeYAML writes blueprints in the structured file format. The catalog is
// taken from the first blueprint; all blueprints must share it.
func EncodeYAML(w io.Writer, blueprints []blueprint.Blueprint) error {
	if len(blueprints) == 0 {
		return blueprint.ErrNoBlueprints
	}

	catalog := blueprints[0].Catalog()
	doc := yamlDocument{Blueprints: make([]yamlBlueprint, 0, len(blueprints))}
	if catalog != production.DefaultCatalog {
		doc.Catalog = catalog.Names()
	}

	for _, bp := range blueprints {
		if bp.Catalog() != catalog {
			return fmt.Errorf("blueprint %d uses a different resource catalog", bp.ID)
		}
		doc.Blueprints = append(doc.Blueprints, yamlBlueprint{ID: bp.ID, Costs: bp.Costs.Raw()})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("failed to encode blueprints: %w", err)
	}
	return encoder.Close()
}
