package errors

import (
	"fmt"
	"strings"
)

// Store-related error constructors.

// CategoryMappingError is returned when an item's type has no bucket.
// The intent that produced it leaves the store unchanged.
func CategoryMappingError(item, tag string) *SorterError {
	return &SorterError{
		Kind:    ErrCategory,
		Message: fmt.Sprintf("unsupported category %q for item %q", tag, item),
		Details: map[string]string{
			"item":     item,
			"category": tag,
		},
		Suggestion: "Items must be tagged \"Fruit\" or \"Vegetable\".",
	}
}

// NotInMain is returned by add when the item is not in the main pool.
func NotInMain(item string) *SorterError {
	return &SorterError{
		Kind:    ErrNotFound,
		Message: fmt.Sprintf("item %q is not in main", item),
		Details: map[string]string{
			"item": item,
		},
		Suggestion: "Only items still in the main list can be sorted into a bucket.",
	}
}

// Seed-related error constructors.

// SeedInvalid reports every problem found while validating a seed list.
func SeedInvalid(source string, problems []string) *SorterError {
	return &SorterError{
		Kind:    ErrSeed,
		Message: fmt.Sprintf("invalid seed list: %s", strings.Join(problems, "; ")),
		Details: map[string]string{
			"source": source,
		},
		Suggestion: `Each seed entry needs a unique, non-empty name and a type:
  - type: Fruit
    name: Apple`,
	}
}

// SeedReadError wraps I/O or decode failures for a seed file.
func SeedReadError(path string, cause error) *SorterError {
	return &SorterError{
		Kind:    ErrSeed,
		Message: fmt.Sprintf("failed to read seed file: %s", path),
		Cause:   cause,
		Details: map[string]string{
			"path": path,
		},
		Suggestion: "Seed files are JSON (.json) or YAML (.yaml, .yml) lists of {type, name}.",
	}
}

// Config-related error constructors.

// ConfigValidationError creates an error for invalid configuration values.
func ConfigValidationError(field, message string, validOptions []string) *SorterError {
	suggestion := fmt.Sprintf("Fix the %q field in .sorter/config.yaml", field)
	if len(validOptions) > 0 {
		suggestion += fmt.Sprintf("\n  Valid options: %s", strings.Join(validOptions, ", "))
	}
	return &SorterError{
		Kind:    ErrConfig,
		Message: fmt.Sprintf("invalid configuration: %s", message),
		Details: map[string]string{
			"field": field,
		},
		Suggestion: suggestion,
	}
}

// Network-related error constructors.

// FetchFailed wraps a failed enrichment request.
func FetchFailed(url string, cause error) *SorterError {
	return &SorterError{
		Kind:    ErrNetwork,
		Message: "enrichment request failed",
		Cause:   cause,
		Details: map[string]string{
			"url": url,
		},
	}
}

// BadStatus reports a non-2xx enrichment response.
func BadStatus(url string, status int) *SorterError {
	return &SorterError{
		Kind:    ErrNetwork,
		Message: fmt.Sprintf("enrichment request returned HTTP %d", status),
		Details: map[string]string{
			"url":    url,
			"status": fmt.Sprint(status),
		},
	}
}

// CategoryMismatch is returned when an intent names an item with a
// category other than the one it was seeded with.
func CategoryMismatch(item, given, stored string) *SorterError {
	return &SorterError{
		Kind:    ErrCategory,
		Message: fmt.Sprintf("item %q is a %s, not a %s", item, stored, given),
		Details: map[string]string{
			"item":            item,
			"category":        given,
			"stored_category": stored,
		},
	}
}
