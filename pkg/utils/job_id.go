package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GenerateJobID creates a standardized, human-readable job ID.
// Format: {operation}-p{chestCount}-{8charHexUUID}
//
// Example:
//   - Input: operation="solve", chestCount=12
//   - Output: "solve-p12-a3f8e2b1"
//
// The generated IDs are human-readable with a clear operation type and
// problem size, and globally unique via the UUID suffix.
func GenerateJobID(operation string, chestCount int) string {
	return fmt.Sprintf("%s-p%d-%s", operation, chestCount, generateShortUUID())
}

// generateShortUUID creates an 8-character hex string from a UUID.
// This provides sufficient uniqueness while keeping IDs compact.
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
