package domain

import (
	"errors"
	"fmt"
)

var (
	// Session errors
	ErrSessionNotFound        = errors.New("till session not found")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrAlreadyOpen            = fmt.Errorf("%w: point of sale already has an open session", ErrInvalidStateTransition)
	ErrOperationNotFound      = errors.New("operation not found")

	// Input errors
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInvalidDenomination  = errors.New("invalid denomination")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrRequiredField        = errors.New("field is required")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Persistence errors
	ErrConcurrentModification = errors.New("session was modified concurrently")
	ErrLedgerInconsistency    = errors.New("ledger does not reconcile with session snapshot")
	ErrTransientStorage       = errors.New("storage temporarily unavailable")

	// ErrStaleSnapshot is returned by storage when a conditional write lost
	// against a newer version. Callers retry or surface ErrConcurrentModification.
	ErrStaleSnapshot = errors.New("session snapshot is stale")

	// ErrDuplicateOperation is returned by storage when an operation with the
	// same idempotency key was already applied to the session.
	ErrDuplicateOperation = errors.New("operation already applied")
)

// FieldError ties a validation failure to the input field that caused it.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// NewFieldError wraps err with the offending field name.
func NewFieldError(field string, err error) error {
	return &FieldError{Field: field, Err: err}
}

// FieldOf returns the field name attached to err, if any.
func FieldOf(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Field
	}
	return ""
}

// ErrorCode returns a stable machine-readable code for err.
// Used as a metric label and in API error bodies.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAlreadyOpen):
		return "already_open"
	case errors.Is(err, ErrInvalidStateTransition):
		return "invalid_state_transition"
	case errors.Is(err, ErrSessionNotFound):
		return "session_not_found"
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrAmountTooLarge), errors.Is(err, ErrAmountPrecision):
		return "invalid_amount"
	case errors.Is(err, ErrInvalidDenomination):
		return "invalid_denomination"
	case errors.Is(err, ErrInvalidPaymentMethod):
		return "invalid_payment_method"
	case errors.Is(err, ErrRequiredField), errors.Is(err, ErrFieldTooLong), errors.Is(err, ErrInvalidFilter):
		return "invalid_input"
	case errors.Is(err, ErrPermissionDenied):
		return "permission_denied"
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidToken), errors.Is(err, ErrExpiredToken):
		return "unauthorized"
	case errors.Is(err, ErrConcurrentModification), errors.Is(err, ErrStaleSnapshot):
		return "concurrent_modification"
	case errors.Is(err, ErrLedgerInconsistency):
		return "ledger_inconsistency"
	case errors.Is(err, ErrTransientStorage):
		return "transient_storage"
	default:
		return "internal"
	}
}
