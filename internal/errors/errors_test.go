package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestSorterError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *SorterError
		expected string
	}{
		{
			name:     "simple message",
			err:      New(ErrSeed, "bad seed"),
			expected: "bad seed",
		},
		{
			name: "with cause",
			err: &SorterError{
				Kind:    ErrConfig,
				Message: "config error",
				Cause:   errors.New("parse error"),
			},
			expected: "config error: parse error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSorterError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(cause, ErrNetwork, "wrapped error")

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	noCause := New(ErrSeed, "no cause")
	if !errors.Is(errors.Unwrap(noCause), ErrSeed) {
		t.Error("Unwrap() should return Kind when no cause")
	}
}

func TestSorterError_Is(t *testing.T) {
	err := CategoryMappingError("Ham", "Meat")

	if !errors.Is(err, ErrCategory) {
		t.Error("errors.Is should match ErrCategory")
	}
	if errors.Is(err, ErrSeed) {
		t.Error("errors.Is should not match ErrSeed")
	}

	wrapped := Wrap(err, ErrSeed, "seed rejected")
	if !errors.Is(wrapped, ErrSeed) || !errors.Is(wrapped, ErrCategory) {
		t.Error("wrapped error should match both kinds")
	}
}

func TestSorterError_Format(t *testing.T) {
	err := CategoryMappingError("Ham", "Meat")
	out := err.Format()

	for _, want := range []string{
		`Error: unsupported category "Meat" for item "Ham"`,
		"category: Meat",
		"item: Ham",
		"Suggestion:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "category:") > strings.Index(out, "item:") {
		t.Error("details should be sorted by key")
	}
}

func TestFormatError(t *testing.T) {
	if got := FormatError(errors.New("plain")); got != "Error: plain\n" {
		t.Errorf("FormatError(plain) = %q", got)
	}
	if got := FormatError(NotInMain("Apple")); !strings.Contains(got, "Suggestion:") {
		t.Errorf("FormatError(SorterError) should include suggestion, got %q", got)
	}
}

func TestConfigValidationError(t *testing.T) {
	err := ConfigValidationError("ui.theme", "unknown theme", []string{"classic", "neon"})
	if !errors.Is(err, ErrConfig) {
		t.Error("expected ErrConfig kind")
	}
	if !strings.Contains(err.Suggestion, "classic, neon") {
		t.Errorf("suggestion should list options, got %q", err.Suggestion)
	}
}
