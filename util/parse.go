// Package util contains small parsing helpers shared by blogapi handlers.
package util

import (
	"strconv"
	"strings"
)

// ParseIntInRange parses s as an integer, falling back to def when s is empty
// or not a number, and clamping the result into [min, max].
func ParseIntInRange(s string, def, min, max int) int {
	v := def
	if trimmed := strings.TrimSpace(s); trimmed != "" {
		if parsed, err := strconv.Atoi(trimmed); err == nil {
			v = parsed
		}
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
