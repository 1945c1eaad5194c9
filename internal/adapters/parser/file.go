package parser

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andrescamacho/blueprints-go/internal/domain/blueprint"
)

// LoadFile reads blueprints from disk. Files ending in .yaml or .yml are read
// as structured YAML; anything else as puzzle text.
func LoadFile(path string) ([]blueprint.Blueprint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open blueprint file: %w", err)
	}
	defer f.Close()

	if IsYAML(path) {
		return LoadYAML(f)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read blueprint file: %w", err)
	}
	return ParseBlueprints(string(data))
}

// IsYAML reports whether path names a structured blueprint file
func IsYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
