package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidatePositive checks that a float parameter is finite and strictly positive.
func ValidatePositive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be a finite number", field)
	}
	if v <= 0 {
		return New(ErrCodeInvalidInput, "%s must be positive, got %g", field, v)
	}
	return nil
}

// ValidateNonNegative checks that a float parameter is finite and ≥ 0.
func ValidateNonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be a finite number", field)
	}
	if v < 0 {
		return New(ErrCodeInvalidInput, "%s must not be negative, got %g", field, v)
	}
	return nil
}

// ValidateIntRange checks min ≤ v ≤ max.
func ValidateIntRange(field string, v, min, max int) error {
	if v < min || v > max {
		return New(ErrCodeInvalidInput, "%s must be between %d and %d, got %d", field, min, max, v)
	}
	return nil
}

// ValidateIdentifier validates an opaque identifier taken from a URL path or
// command line (sweep IDs, cache keys).
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - Maximum length of 128 characters
//   - No control characters
//   - No path separators or traversal sequences
func ValidateIdentifier(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "identifier cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "identifier too long (max 128 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "identifier contains invalid control characters")
		}
	}
	if strings.ContainsAny(id, "/\\") || strings.Contains(id, "..") {
		return New(ErrCodeInvalidInput, "identifier contains invalid characters")
	}
	return nil
}
