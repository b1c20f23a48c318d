// Package shared contains common domain types, errors, and events that are
// used across all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// ErrNotFound - an unknown id was passed to an operation.
	ErrNotFound = errors.New("entity not found")

	// ErrConflict - the operation conflicts with current state
	// (duplicate active challenge, premature completion).
	ErrConflict = errors.New("state conflict")

	// ErrValidation - the input violates a contract.
	ErrValidation = errors.New("validation error")

	// ErrPersistence - a storage collaborator failed; opaque to callers.
	ErrPersistence = errors.New("persistence error")

	// ErrInvalidState - an operation was attempted on a terminal entity.
	ErrInvalidState = errors.New("invalid state")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "intake", "challenge", "achievement"
	Op      string // Operation that failed, e.g., "Start", "Complete"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Intake domain errors
var (
	ErrIntakeNotFound   = NewDomainError("intake", "Find", ErrNotFound, "intake event not found")
	ErrDrinkNotFound    = NewDomainError("intake", "FindDrink", ErrNotFound, "drink not found")
	ErrInvalidAmount    = NewDomainError("intake", "Validate", ErrValidation, "amount must be positive")
	ErrInvalidGoal      = NewDomainError("intake", "Validate", ErrValidation, "daily goal must be positive")
	ErrInvalidDrink     = NewDomainError("intake", "Validate", ErrValidation, "invalid drink definition")
	ErrDrinkNotEditable = NewDomainError("intake", "Upsert", ErrConflict, "only custom drinks can be modified")
)

// Challenge domain errors
var (
	ErrChallengeNotFound    = NewDomainError("challenge", "Find", ErrNotFound, "challenge not found")
	ErrChallengeTypeActive  = NewDomainError("challenge", "Start", ErrConflict, "an active challenge of this type already exists")
	ErrChallengeNotActive   = NewDomainError("challenge", "Transition", ErrInvalidState, "challenge is not active")
	ErrChallengeNotFinished = NewDomainError("challenge", "Complete", ErrConflict, "challenge end date has not been reached")
)

// Achievement domain errors
var (
	ErrAchievementNotFound = NewDomainError("achievement", "Find", ErrNotFound, "achievement not found")
	ErrAlreadyUnlocked     = NewDomainError("achievement", "Unlock", ErrConflict, "achievement already unlocked")
)

// Profile domain errors
var (
	ErrProfileNotFound = NewDomainError("profile", "Find", ErrNotFound, "user profile not found")
	ErrNonPositiveXP   = NewDomainError("profile", "AddXP", ErrValidation, "xp amount must be positive")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if the error is a state-conflict error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsPersistence checks if the error came from a storage collaborator.
func IsPersistence(err error) bool {
	return errors.Is(err, ErrPersistence)
}
