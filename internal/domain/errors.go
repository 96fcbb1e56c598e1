package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound = "user not found"
	ErrMsgUserExists   = "user already exists"

	// Catalog errors
	ErrMsgCaseNotFound = "case not found"
	ErrMsgItemNotFound = "item not found"

	// Economy errors
	ErrMsgInsufficientBalance = "insufficient balance"
	ErrMsgInvalidAmount       = "amount must be positive"

	// Opening engine errors
	ErrMsgNoOpenableEntries = "no openable entries"
	ErrMsgInvalidLength     = "sequence length must be positive"

	// Database/System errors
	ErrMsgTransientStoreFailure = "transient store failure"
	ErrMsgTxClosed              = "tx is closed"

	// Auth errors
	ErrMsgUnauthorized = "unauthorized"
	ErrMsgForbidden    = "forbidden"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// User errors
	ErrUserNotFound = errors.New(ErrMsgUserNotFound)
	ErrUserExists   = errors.New(ErrMsgUserExists)

	// Catalog errors
	ErrCaseNotFound = errors.New(ErrMsgCaseNotFound)
	ErrItemNotFound = errors.New(ErrMsgItemNotFound)

	// Economy errors
	ErrInsufficientBalance = errors.New(ErrMsgInsufficientBalance)
	ErrInvalidAmount       = errors.New(ErrMsgInvalidAmount)

	// Opening engine errors
	ErrNoOpenableEntries = errors.New(ErrMsgNoOpenableEntries)
	ErrInvalidLength     = errors.New(ErrMsgInvalidLength)

	// Lock timeouts, serialization failures, deadlocks, lost connections and
	// expired deadlines. Callers may retry; a retried opening is a new draw.
	ErrTransientStoreFailure = errors.New(ErrMsgTransientStoreFailure)

	// Auth errors
	ErrUnauthorized = errors.New(ErrMsgUnauthorized)
	ErrForbidden    = errors.New(ErrMsgForbidden)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
