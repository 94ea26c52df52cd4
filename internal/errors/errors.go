// Package errors provides error types with actionable suggestions for sorter.
// Errors carry a kind (for errors.Is), a message, optional details and a hint
// the CLI prints under the message.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel kinds for use with errors.Is().
var (
	// ErrCategory indicates an item tag that maps to no bucket.
	ErrCategory = errors.New("category error")
	// ErrSeed indicates an invalid seed list.
	ErrSeed = errors.New("seed error")
	// ErrConfig indicates a configuration error.
	ErrConfig = errors.New("configuration error")
	// ErrNetwork indicates a network-related error.
	ErrNetwork = errors.New("network error")
	// ErrNotFound indicates an item was not where the caller expected it.
	ErrNotFound = errors.New("not found")
)

// SorterError is the base error type. It wraps an underlying error and
// provides additional context.
type SorterError struct {
	// Kind is the category of error (e.g., ErrCategory, ErrSeed).
	Kind error
	// Message is the human-readable error message.
	Message string
	// Suggestion provides actionable advice for resolving the error.
	Suggestion string
	// Cause is the underlying error that caused this error.
	Cause error
	// Details provides additional context (e.g., item name, file path).
	Details map[string]string
}

// Error implements the error interface.
func (e *SorterError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *SorterError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return e.Kind
}

// Is reports whether the error's kind matches target.
func (e *SorterError) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

// Format returns a formatted error message with details and suggestion.
func (e *SorterError) Format() string {
	var sb strings.Builder

	sb.WriteString("Error: ")
	sb.WriteString(e.Error())
	sb.WriteString("\n")

	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString("\nDetails:\n")
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", k, e.Details[k]))
		}
	}

	if e.Suggestion != "" {
		sb.WriteString("\nSuggestion: ")
		sb.WriteString(e.Suggestion)
		sb.WriteString("\n")
	}

	return sb.String()
}

// WithDetails adds details to the error.
func (e *SorterError) WithDetails(key, value string) *SorterError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying cause of the error.
func (e *SorterError) WithCause(cause error) *SorterError {
	e.Cause = cause
	return e
}

// New creates a new SorterError with the given kind and message.
func New(kind error, message string) *SorterError {
	return &SorterError{
		Kind:    kind,
		Message: message,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(err error, kind error, message string) *SorterError {
	return &SorterError{
		Kind:    kind,
		Message: message,
		Cause:   err,
	}
}

// FormatError renders err with Format when it is a SorterError and with
// Error otherwise.
func FormatError(err error) string {
	var se *SorterError
	if errors.As(err, &se) {
		return se.Format()
	}
	return "Error: " + err.Error() + "\n"
}

// Is is errors.Is, re-exported so callers need only one errors import.
func Is(err, target error) bool { return errors.Is(err, target) }

// As is errors.As, re-exported so callers need only one errors import.
func As(err error, target any) bool { return errors.As(err, target) }
