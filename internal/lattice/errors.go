package lattice

import (
	"errors"
	"fmt"

	"github.com/roach88/reframe/internal/variant"
)

// CastError represents a failed directed cast. It is the only error the
// coercion layer surfaces: invariant-check failures elsewhere are silent
// demotions, but an upcast to a stricter, unverifiable type is a genuinely
// unsupported request the caller must hear about.
type CastError struct {
	// Code identifies the error category.
	Code CastErrorCode

	// From and To are the source and target tags of the failed cast.
	From variant.Tag
	To   variant.Tag

	// Message is a human-readable description.
	Message string
}

// CastErrorCode categorizes cast errors.
type CastErrorCode string

const (
	// ErrCodeIncompatible indicates the candidate does not structurally
	// satisfy the stricter target variant.
	ErrCodeIncompatible CastErrorCode = "CAST_INCOMPATIBLE"

	// ErrCodeUnknownTag indicates the target tag is not in the registry.
	ErrCodeUnknownTag CastErrorCode = "UNKNOWN_TAG"
)

// Error implements the error interface.
func (e *CastError) Error() string {
	return fmt.Sprintf("%s: cast %s -> %s: %s", e.Code, e.From, e.To, e.Message)
}

// IsIncompatible returns true if the error is an incompatible-cast error.
// Uses errors.As to handle wrapped errors.
func IsIncompatible(err error) bool {
	var ce *CastError
	if errors.As(err, &ce) {
		return ce.Code == ErrCodeIncompatible
	}
	return false
}

// IsUnknownTag returns true if the error is an unknown-tag error.
// Uses errors.As to handle wrapped errors.
func IsUnknownTag(err error) bool {
	var ce *CastError
	if errors.As(err, &ce) {
		return ce.Code == ErrCodeUnknownTag
	}
	return false
}
