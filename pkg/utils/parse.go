package utils

import "strconv"

// ParseIntOrDefault parses s as an int, returning fallback when s is
// empty or malformed
func ParseIntOrDefault(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	value, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return value
}
