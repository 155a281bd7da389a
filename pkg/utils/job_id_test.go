package utils_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/chesthunt-go/pkg/utils"
)

func TestGenerateJobID_Format(t *testing.T) {
	id := utils.GenerateJobID("solve", 12)

	assert.Regexp(t, regexp.MustCompile(`^solve-p12-[0-9a-f]{8}$`), id)
}

func TestGenerateJobID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := utils.GenerateJobID("solve", 3)
		require.False(t, seen[id], "duplicate job id %s", id)
		seen[id] = true
	}
}

func TestParseIntOrDefault(t *testing.T) {
	assert.Equal(t, 42, utils.ParseIntOrDefault("42", 7))
	assert.Equal(t, 7, utils.ParseIntOrDefault("", 7))
	assert.Equal(t, 7, utils.ParseIntOrDefault("abc", 7))
	assert.Equal(t, -3, utils.ParseIntOrDefault("-3", 7))
}
