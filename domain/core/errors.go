package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Structural errors: fatal to the analysis phase only
	ErrNoCommonRespondents = errors.New("no respondents common to both surveys")
	ErrNoCommonQuestions   = errors.New("no questions common to both surveys")
	ErrScoringUnavailable  = errors.New("scoring table missing or unreadable")

	// Input errors: rejected at the offending component's boundary
	ErrEmptyIdentifier = errors.New("empty student identifier")
	ErrScoringConflict = errors.New("conflicting scoring entry")
	ErrScoringEmpty    = errors.New("scoring table has no entries")

	// Insufficient data: entity-level, non-fatal
	ErrInsufficientData = errors.New("insufficient paired observations")
)

// NewStructuralError annotates a structural condition with its phase context.
func NewStructuralError(phase string, err error) error {
	return fmt.Errorf("%s: %w", phase, err)
}

// IsStructuralError reports whether err is fatal to the analysis phase.
func IsStructuralError(err error) bool {
	return errors.Is(err, ErrNoCommonRespondents) ||
		errors.Is(err, ErrNoCommonQuestions) ||
		errors.Is(err, ErrScoringUnavailable)
}

// IsInputError reports whether err is a boundary rejection of malformed input.
func IsInputError(err error) bool {
	return errors.Is(err, ErrEmptyIdentifier) ||
		errors.Is(err, ErrScoringConflict) ||
		errors.Is(err, ErrScoringEmpty)
}
