package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, Clamp(0, 1, 4))
	assert.Equal(t, 4, Clamp(9, 1, 4))
	assert.Equal(t, 3, Clamp(3, 1, 4))
	assert.Equal(t, 1, Clamp(5, 1, 0), "lower bound wins on an empty range")
}

func TestGenerateRunID(t *testing.T) {
	id := GenerateRunID(" Quality", 24)

	assert.Regexp(t, regexp.MustCompile(`^quality-24m-[0-9a-f]{8}$`), id)
	assert.NotEqual(t, id, GenerateRunID("quality", 24))
	assert.Regexp(t, `^run-0m-`, GenerateRunID("", 0))
}
