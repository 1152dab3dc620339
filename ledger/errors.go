/*
errors.go - Centralized error types for the ledger

PURPOSE:
  All ledger error values in one place. Other packages wrap these with
  additional context and match them via errors.Is / errors.As.
*/
package ledger

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrBadDateKey is returned when a key does not parse as YYYY-MM-DD.
	ErrBadDateKey = errors.New("malformed date key")

	// ErrUnknownCategory is returned for a shift or leave value outside the
	// configured closed sets.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrRestNotEligible signals that a week has no compensatory-rest
	// headroom. The stats package reports eligibility; the API layer maps
	// this to a conflict response.
	ErrRestNotEligible = errors.New("no compensatory rest credit available this week")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// UnknownCategoryError reports an out-of-set shift or leave value.
type UnknownCategoryError struct {
	Kind  string // "shift" or "leave"
	Value string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown %s category %q", e.Kind, e.Value)
}

func (e *UnknownCategoryError) Unwrap() error { return ErrUnknownCategory }
