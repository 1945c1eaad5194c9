package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/andrescamacho/blueprints-go/internal/domain/blueprint"
	"github.com/andrescamacho/blueprints-go/internal/domain/production"
)

var (
	headerPattern     = regexp.MustCompile(`(?i)blueprint\s+(\d+)\s*:`)
	recipePattern     = regexp.MustCompile(`(?i)each\s+([a-z_-]+)\s+robot\s+costs\s+([^.]+)\.`)
	ingredientPattern = regexp.MustCompile(`(?i)^(\d+)\s+([a-z_-]+)$`)
	andPattern        = regexp.MustCompile(`(?i)\s+and\s+`)
)

// ParseBlueprints parses puzzle text over the default ore/clay/obsidian/geode catalog
func ParseBlueprints(text string) ([]blueprint.Blueprint, error) {
	return ParseBlueprintsWithCatalog(production.DefaultCatalog, text)
}

// ParseBlueprintsWithCatalog parses puzzle text of the form
//
//	Blueprint 1: Each ore robot costs 4 ore. Each clay robot costs 2 ore. ...
//
// A description may span several lines. Every sentence names the kind being
// produced and its ingredients joined by "and".
func ParseBlueprintsWithCatalog(catalog *production.Catalog, text string) ([]blueprint.Blueprint, error) {
	headers := headerPattern.FindAllStringSubmatchIndex(text, -1)
	if len(headers) == 0 {
		if strings.TrimSpace(text) != "" {
			return nil, &ErrMalformedBlueprint{Reason: "no \"Blueprint N:\" header found"}
		}
		return nil, blueprint.ErrNoBlueprints
	}
	if lead := strings.TrimSpace(text[:headers[0][0]]); lead != "" {
		return nil, &ErrMalformedBlueprint{Reason: fmt.Sprintf("unexpected text before first blueprint: %q", truncate(lead))}
	}

	blueprints := make([]blueprint.Blueprint, 0, len(headers))
	seen := make(map[int]bool, len(headers))

	for i, header := range headers {
		id, err := strconv.Atoi(text[header[2]:header[3]])
		if err != nil {
			return nil, &ErrMalformedBlueprint{Reason: "blueprint number out of range", Err: err}
		}
		if seen[id] {
			return nil, &ErrMalformedBlueprint{ID: id, Reason: "duplicate blueprint number"}
		}
		seen[id] = true

		end := len(text)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}

		raw, err := parseRecipes(id, text[header[1]:end])
		if err != nil {
			return nil, err
		}

		bp, err := buildBlueprint(catalog, id, raw)
		if err != nil {
			return nil, err
		}
		blueprints = append(blueprints, bp)
	}

	return blueprints, nil
}

// parseRecipes reads the sentences of one blueprint body
func parseRecipes(id int, body string) (map[string]map[string]int, error) {
	matches := recipePattern.FindAllStringSubmatchIndex(body, -1)
	if len(matches) == 0 {
		return nil, &ErrMalformedBlueprint{ID: id, Reason: "no recipes"}
	}

	raw := make(map[string]map[string]int, len(matches))
	consumed := 0
	for _, m := range matches {
		if gap := strings.TrimSpace(body[consumed:m[0]]); gap != "" {
			return nil, &ErrMalformedBlueprint{ID: id, Reason: fmt.Sprintf("unexpected text %q", truncate(gap))}
		}
		consumed = m[1]

		product := strings.ToLower(body[m[2]:m[3]])
		if _, exists := raw[product]; exists {
			return nil, &ErrMalformedBlueprint{ID: id, Reason: fmt.Sprintf("duplicate recipe for %s", product)}
		}

		ingredients, err := parseIngredients(id, product, body[m[4]:m[5]])
		if err != nil {
			return nil, err
		}
		raw[product] = ingredients
	}
	if rest := strings.TrimSpace(body[consumed:]); rest != "" {
		return nil, &ErrMalformedBlueprint{ID: id, Reason: fmt.Sprintf("unexpected text %q", truncate(rest))}
	}

	return raw, nil
}

func parseIngredients(id int, product, clause string) (map[string]int, error) {
	ingredients := make(map[string]int)
	for _, part := range andPattern.Split(strings.TrimSpace(clause), -1) {
		m := ingredientPattern.FindStringSubmatch(strings.TrimSpace(part))
		if m == nil {
			return nil, &ErrMalformedBlueprint{ID: id, Reason: fmt.Sprintf("cannot read ingredient %q of %s robot", part, product)}
		}
		qty, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, &ErrMalformedBlueprint{ID: id, Reason: fmt.Sprintf("quantity of %s robot out of range", product), Err: err}
		}
		ingredients[strings.ToLower(m[2])] += qty
	}
	return ingredients, nil
}

func buildBlueprint(catalog *production.Catalog, id int, raw map[string]map[string]int) (blueprint.Blueprint, error) {
	table, err := production.NewCostTable(catalog, raw)
	if err != nil {
		return blueprint.Blueprint{}, &ErrMalformedBlueprint{ID: id, Reason: "invalid cost table", Err: err}
	}
	bp, err := blueprint.NewBlueprint(id, table)
	if err != nil {
		return blueprint.Blueprint{}, &ErrMalformedBlueprint{ID: id, Reason: "invalid blueprint", Err: err}
	}
	return bp, nil
}

// FormatBlueprints renders blueprints back to the one-line puzzle text form,
// listing recipes and ingredients in catalog order
func FormatBlueprints(blueprints []blueprint.Blueprint) string {
	var sb strings.Builder
	for _, bp := range blueprints {
		catalog := bp.Catalog()
		fmt.Fprintf(&sb, "Blueprint %d:", bp.ID)
		for _, product := range catalog.Kinds() {
			bill, ok := bp.Costs.Recipe(product)
			if !ok {
				continue
			}
			var parts []string
			for _, ingredient := range catalog.Kinds() {
				if bill[ingredient] > 0 {
					parts = append(parts, fmt.Sprintf("%d %s", bill[ingredient], catalog.Name(ingredient)))
				}
			}
			if len(parts) == 0 {
				parts = append(parts, fmt.Sprintf("0 %s", catalog.Name(catalog.Primary())))
			}
			fmt.Fprintf(&sb, " Each %s robot costs %s.", catalog.Name(product), strings.Join(parts, " and "))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func truncate(s string) string {
	const limit = 40
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
