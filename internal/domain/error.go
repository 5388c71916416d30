package domain

import (
	"errors"
	"fmt"
)

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrAlreadyExists   = errors.New("entity already exists")
	ErrInvalidRequest  = errors.New("invalid request")
	ErrInvalidArgument = errors.New("invalid argument")
)

// ProviderError wraps a transport/auth/quota failure from the model provider.
type ProviderError struct {
	Provider string
	Cause    error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider %s: %v", e.Provider, e.Cause)
	}
	return fmt.Sprintf("provider %s: call failed", e.Provider)
}

func (e *ProviderError) Unwrap() error { return e.Cause }

// TruncatedResponseError signals a model response too short to be a real
// workout document.
type TruncatedResponseError struct {
	Length int
}

func (e *TruncatedResponseError) Error() string {
	return fmt.Sprintf("model response too short (%d chars) - may be truncated", e.Length)
}

// MalformedResponseError wraps a JSON syntax failure together with a snippet
// of the offending text for diagnostics.
type MalformedResponseError struct {
	Snippet string
	Cause   error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %v (starts with: %q)", e.Cause, e.Snippet)
}

func (e *MalformedResponseError) Unwrap() error { return e.Cause }

// EmptyResponseError signals a syntactically valid but empty result set.
type EmptyResponseError struct{}

func (e *EmptyResponseError) Error() string { return "model returned no workout" }

// InvalidWorkoutError signals a parsed element that does not satisfy the
// minimum workout contract.
type InvalidWorkoutError struct {
	Reason string
}

func (e *InvalidWorkoutError) Error() string {
	return fmt.Sprintf("invalid workout from model: %s", e.Reason)
}
