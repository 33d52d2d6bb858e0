package utils

import (
	"math"
	"strconv"
	"strings"
)

// ToInt converts a string field to an int.
// Empty or non-numeric input yields 0; wire payloads routinely blank
// or omit numeric fields instead of sending a zero.
func ToInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	i, _ := strconv.Atoi(s)
	return i
}

// ToTruncatedInt parses a decimal quantity ("3", "3.0", "3.9") and
// truncates it toward zero. Non-numeric input yields 0.
func ToTruncatedInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}

// ToBool converts a string field to a bool.
// It accepts "1" and any casing of "true".
func ToBool(s string) bool {
	s = strings.TrimSpace(s)
	return s == "1" || strings.EqualFold(s, "true")
}
