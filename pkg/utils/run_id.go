package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GenerateRunID creates a human-readable evaluation run ID.
// Format: {mode}-{budget}m-{8charHexUUID}
//
// Example:
//   - Input: mode="quality", budget=24
//   - Output: "quality-24m-a3f8e2b1"
func GenerateRunID(mode string, budget int) string {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" {
		mode = "run"
	}
	return fmt.Sprintf("%s-%dm-%s", mode, budget, generateShortUUID())
}

// generateShortUUID creates an 8-character hex string from a UUID.
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
