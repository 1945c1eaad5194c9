package parser_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/blueprints-go/internal/adapters/parser"
	"github.com/andrescamacho/blueprints-go/internal/domain/blueprint"
	"github.com/andrescamacho/blueprints-go/internal/domain/production"
	"github.com/andrescamacho/blueprints-go/test/helpers"
)

func TestParseBlueprints_SampleInput(t *testing.T) {
	// Act
	blueprints, err := parser.ParseBlueprints(helpers.SampleInput)

	// Assert
	require.NoError(t, err)
	require.Len(t, blueprints, 2)
	assert.Equal(t, 1, blueprints[0].ID)
	assert.Equal(t, 2, blueprints[1].ID)
	assert.Equal(t, helpers.SampleCostsOne(), blueprints[0].Costs.Raw())
	assert.Equal(t, helpers.SampleCostsTwo(), blueprints[1].Costs.Raw())
}

func TestParseBlueprints_SingleLineForm(t *testing.T) {
	text := "Blueprint 7: Each ore robot costs 4 ore. Each clay robot costs 2 ore. " +
		"Each obsidian robot costs 3 ore and 14 clay. Each geode robot costs 2 ore and 7 obsidian.\n"

	blueprints, err := parser.ParseBlueprints(text)

	require.NoError(t, err)
	require.Len(t, blueprints, 1)
	assert.Equal(t, 7, blueprints[0].ID)
	assert.Equal(t, helpers.SampleCostsOne(), blueprints[0].Costs.Raw())
}

func TestParseBlueprints_RoundTrip(t *testing.T) {
	// Arrange
	original, err := parser.ParseBlueprints(helpers.SampleInput)
	require.NoError(t, err)

	// Act
	formatted := parser.FormatBlueprints(original)
	reparsed, err := parser.ParseBlueprints(formatted)

	// Assert
	require.NoError(t, err)
	require.Len(t, reparsed, len(original))
	for i := range original {
		assert.Equal(t, original[i].ID, reparsed[i].ID)
		assert.Equal(t, original[i].Costs.Raw(), reparsed[i].Costs.Raw())
	}
	assert.Equal(t, 2, strings.Count(formatted, "\n"))
	assert.Contains(t, formatted, "Each obsidian robot costs 3 ore and 14 clay.")
}

func TestParseBlueprints_MissingOreRecipe(t *testing.T) {
	text := "Blueprint 1: Each clay robot costs 2 ore. Each obsidian robot costs 3 ore and 14 clay. " +
		"Each geode robot costs 2 ore and 7 obsidian."

	blueprints, err := parser.ParseBlueprints(text)

	require.NoError(t, err)
	assert.False(t, blueprints[0].Costs.Producible(0))
}

func TestParseBlueprints_Empty(t *testing.T) {
	_, err := parser.ParseBlueprints("  \n\n")

	assert.ErrorIs(t, err, blueprint.ErrNoBlueprints)
}

func TestParseBlueprints_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
		id   int
	}{
		{
			name: "no header",
			text: "Each ore robot costs 4 ore.",
		},
		{
			name: "text before header",
			text: "hello\nBlueprint 1: Each geode robot costs 2 ore.",
		},
		{
			name: "no recipes",
			text: "Blueprint 3: nothing to see",
			id:   3,
		},
		{
			name: "garbage between recipes",
			text: "Blueprint 2: Each ore robot costs 4 ore. banana Each geode robot costs 2 ore.",
			id:   2,
		},
		{
			name: "unreadable ingredient",
			text: "Blueprint 4: Each geode robot costs two ore.",
			id:   4,
		},
		{
			name: "duplicate recipe",
			text: "Blueprint 5: Each geode robot costs 2 ore. Each geode robot costs 3 ore.",
			id:   5,
		},
		{
			name: "duplicate blueprint",
			text: "Blueprint 1: Each geode robot costs 2 ore.\nBlueprint 1: Each geode robot costs 3 ore.",
			id:   1,
		},
		{
			name: "unknown kind",
			text: "Blueprint 6: Each geode robot costs 2 diamond.",
			id:   6,
		},
		{
			name: "no output recipe",
			text: "Blueprint 8: Each ore robot costs 4 ore.",
			id:   8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.ParseBlueprints(tt.text)

			var malformed *parser.ErrMalformedBlueprint
			require.True(t, errors.As(err, &malformed), "got %v", err)
			assert.Equal(t, tt.id, malformed.ID)
		})
	}
}

func TestParseBlueprints_UnknownKindUnwrapsToResourceError(t *testing.T) {
	_, err := parser.ParseBlueprints("Blueprint 6: Each geode robot costs 2 diamond.")

	var unknown *production.ErrUnknownResource
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "diamond", unknown.Name)
}

func TestLoadYAML_DefaultCatalog(t *testing.T) {
	doc := `
blueprints:
  - id: 1
    costs:
      ore: {ore: 4}
      clay: {ore: 2}
      obsidian: {ore: 3, clay: 14}
      geode: {ore: 2, obsidian: 7}
`
	blueprints, err := parser.LoadYAML(strings.NewReader(doc))

	require.NoError(t, err)
	require.Len(t, blueprints, 1)
	assert.Same(t, production.DefaultCatalog, blueprints[0].Catalog())
	assert.Equal(t, helpers.SampleCostsOne(), blueprints[0].Costs.Raw())
}

func TestLoadYAML_CustomCatalog(t *testing.T) {
	doc := `
catalog: [wood, plank, chair]
blueprints:
  - id: 3
    costs:
      plank: {wood: 2}
      chair: {plank: 4}
`
	blueprints, err := parser.LoadYAML(strings.NewReader(doc))

	require.NoError(t, err)
	require.Len(t, blueprints, 1)
	assert.Equal(t, []string{"wood", "plank", "chair"}, blueprints[0].Catalog().Names())
	assert.Equal(t, 2, blueprints[0].Costs.MaxConsumption(0))
}

func TestLoadYAML_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown field", "blueprints: []\nrobots: 3\n"},
		{"bad catalog", "catalog: [only]\nblueprints:\n  - id: 1\n    costs: {only: {only: 1}}\n"},
		{"duplicate id", "blueprints:\n  - id: 1\n    costs: {geode: {ore: 1}}\n  - id: 1\n    costs: {geode: {ore: 1}}\n"},
		{"zero id", "blueprints:\n  - id: 0\n    costs: {geode: {ore: 1}}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.LoadYAML(strings.NewReader(tt.doc))

			var malformed *parser.ErrMalformedBlueprint
			assert.True(t, errors.As(err, &malformed), "got %v", err)
		})
	}
}

func TestLoadYAML_NoBlueprints(t *testing.T) {
	_, err := parser.LoadYAML(strings.NewReader("blueprints: []\n"))
	assert.ErrorIs(t, err, blueprint.ErrNoBlueprints)

	_, err = parser.LoadYAML(strings.NewReader(""))
	assert.ErrorIs(t, err, blueprint.ErrNoBlueprints)
}

func TestEncodeYAML_RoundTrip(t *testing.T) {
	// Arrange
	original := helpers.SampleBlueprints(t)
	var buf bytes.Buffer

	// Act
	require.NoError(t, parser.EncodeYAML(&buf, original))
	decoded, err := parser.LoadYAML(&buf)

	// Assert
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assert.NotContains(t, buf.String(), "catalog:")
	for i := range original {
		assert.Equal(t, original[i].ID, decoded[i].ID)
		assert.Equal(t, original[i].Costs.Raw(), decoded[i].Costs.Raw())
	}
}

func TestLoadFile_DispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()

	textPath := filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(textPath, []byte(helpers.SampleInput), 0o644))

	var buf bytes.Buffer
	require.NoError(t, parser.EncodeYAML(&buf, helpers.SampleBlueprints(t)))
	yamlPath := filepath.Join(dir, "blueprints.YML")
	require.NoError(t, os.WriteFile(yamlPath, buf.Bytes(), 0o644))

	fromText, err := parser.LoadFile(textPath)
	require.NoError(t, err)
	fromYAML, err := parser.LoadFile(yamlPath)
	require.NoError(t, err)

	require.Len(t, fromText, 2)
	require.Len(t, fromYAML, 2)
	assert.Equal(t, fromText[1].Costs.Raw(), fromYAML[1].Costs.Raw())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := parser.LoadFile(filepath.Join(t.TempDir(), "nope.txt"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}
