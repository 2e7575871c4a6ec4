package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrAmountTooLarge  = errors.New("amount exceeds maximum allowed")
	ErrAmountPrecision = errors.New("amount has more than two decimal places")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidFilter   = errors.New("invalid filter")
)

// Validation constants
const (
	MaxCashAmount       = "10000000" // 10 million per movement
	MaxAmountScale      = 2
	MaxNoteLength       = 500
	MaxIdentifierLength = 128

	MaxIdempotencyKeyLength = 255
)

var maxCashAmount = decimal.RequireFromString(MaxCashAmount)

// ValidateAmount validates a withdrawal, consumption or refund amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return validateMoney(amount)
}

// ValidateOpeningFloat validates the cash placed in the drawer at open.
// Zero is allowed.
func ValidateOpeningFloat(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: opening float cannot be negative", ErrInvalidAmount)
	}
	return validateMoney(amount)
}

func validateMoney(amount decimal.Decimal) error {
	if !amount.Equal(amount.Truncate(MaxAmountScale)) {
		return fmt.Errorf("%w: %s", ErrAmountPrecision, amount.String())
	}
	if amount.GreaterThan(maxCashAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxCashAmount)
	}
	return nil
}

// ValidateRequired rejects blank identifiers and overly long ones.
func ValidateRequired(field, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return NewFieldError(field, ErrRequiredField)
	}
	if utf8.RuneCountInString(value) > MaxIdentifierLength {
		return NewFieldError(field, fmt.Errorf("%w: %d characters", ErrFieldTooLong, MaxIdentifierLength))
	}
	return nil
}

// ValidateOptional bounds an optional identifier such as a shift label or
// order reference. Empty values are fine.
func ValidateOptional(field, value string) error {
	if utf8.RuneCountInString(value) > MaxIdentifierLength {
		return NewFieldError(field, fmt.Errorf("%w: %d characters", ErrFieldTooLong, MaxIdentifierLength))
	}
	return nil
}

// ValidateIdempotencyKey bounds a client supplied idempotency key.
func ValidateIdempotencyKey(key string) error {
	if utf8.RuneCountInString(key) > MaxIdempotencyKeyLength {
		return NewFieldError("idempotencyKey", fmt.Errorf("%w: %d characters", ErrFieldTooLong, MaxIdempotencyKeyLength))
	}
	return nil
}

// ValidateNote bounds free-text notes. Empty notes are fine.
func ValidateNote(field, note string) error {
	if utf8.RuneCountInString(note) > MaxNoteLength {
		return NewFieldError(field, fmt.Errorf("%w: %d characters", ErrFieldTooLong, MaxNoteLength))
	}
	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int, error) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset, nil
}
