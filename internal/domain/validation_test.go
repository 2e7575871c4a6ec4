package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateAmount(t *testing.T) {
	t.Parallel()

	if err := ValidateAmount(decimal.RequireFromString("20.00")); err != nil {
		t.Fatalf("expected valid amount, got %v", err)
	}

	if err := ValidateAmount(decimal.Zero); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero, got %v", err)
	}

	if err := ValidateAmount(decimal.RequireFromString("-5")); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for negative, got %v", err)
	}

	if err := ValidateAmount(decimal.RequireFromString("0.001")); !errors.Is(err, ErrAmountPrecision) {
		t.Fatalf("expected ErrAmountPrecision, got %v", err)
	}

	huge := decimal.RequireFromString(MaxCashAmount).Add(decimal.NewFromInt(1))
	if err := ValidateAmount(huge); !errors.Is(err, ErrAmountTooLarge) {
		t.Fatalf("expected ErrAmountTooLarge, got %v", err)
	}
}

func TestValidateOpeningFloat(t *testing.T) {
	t.Parallel()

	if err := ValidateOpeningFloat(decimal.Zero); err != nil {
		t.Fatalf("expected zero float to be accepted, got %v", err)
	}

	if err := ValidateOpeningFloat(decimal.RequireFromString("-1.00")); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	if err := ValidateOpeningFloat(decimal.RequireFromString("100.005")); !errors.Is(err, ErrAmountPrecision) {
		t.Fatalf("expected ErrAmountPrecision, got %v", err)
	}
}

func TestValidateRequired(t *testing.T) {
	t.Parallel()

	t.Run("blank", func(t *testing.T) {
		err := ValidateRequired("pointOfSaleId", "   ")
		if !errors.Is(err, ErrRequiredField) {
			t.Fatalf("expected ErrRequiredField, got %v", err)
		}
		if FieldOf(err) != "pointOfSaleId" {
			t.Fatalf("expected field pointOfSaleId, got %q", FieldOf(err))
		}
	})

	t.Run("too long", func(t *testing.T) {
		err := ValidateRequired("companyId", strings.Repeat("x", MaxIdentifierLength+1))
		if !errors.Is(err, ErrFieldTooLong) {
			t.Fatalf("expected ErrFieldTooLong, got %v", err)
		}
	})

	t.Run("ok", func(t *testing.T) {
		if err := ValidateRequired("companyId", "ACME"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestValidateNote(t *testing.T) {
	t.Parallel()

	if err := ValidateNote("note", ""); err != nil {
		t.Fatalf("expected empty note to pass, got %v", err)
	}

	err := ValidateNote("note", strings.Repeat("n", MaxNoteLength+1))
	if !errors.Is(err, ErrFieldTooLong) || FieldOf(err) != "note" {
		t.Fatalf("expected note ErrFieldTooLong, got %v", err)
	}
}

func TestValidateOptional(t *testing.T) {
	t.Parallel()

	if err := ValidateOptional("shiftLabel", ""); err != nil {
		t.Fatalf("expected empty value to pass, got %v", err)
	}
	if err := ValidateOptional("orderRef", strings.Repeat("r", MaxIdentifierLength)); err != nil {
		t.Fatalf("expected value at the limit to pass, got %v", err)
	}

	err := ValidateOptional("orderRef", strings.Repeat("r", MaxIdentifierLength+1))
	if !errors.Is(err, ErrFieldTooLong) || FieldOf(err) != "orderRef" {
		t.Fatalf("expected orderRef ErrFieldTooLong, got %v", err)
	}
}

func TestValidateIdempotencyKey(t *testing.T) {
	t.Parallel()

	if err := ValidateIdempotencyKey(""); err != nil {
		t.Fatalf("expected empty key to pass, got %v", err)
	}
	if err := ValidateIdempotencyKey(strings.Repeat("k", MaxIdempotencyKeyLength)); err != nil {
		t.Fatalf("expected key at the limit to pass, got %v", err)
	}

	err := ValidateIdempotencyKey(strings.Repeat("k", MaxIdempotencyKeyLength+1))
	if !errors.Is(err, ErrFieldTooLong) || FieldOf(err) != "idempotencyKey" {
		t.Fatalf("expected idempotencyKey ErrFieldTooLong, got %v", err)
	}
}

func TestValidatePagination(t *testing.T) {
	t.Parallel()

	limit, offset, err := ValidatePagination(0, -5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if limit != 50 || offset != 0 {
		t.Fatalf("expected defaults applied, got limit=%d offset=%d", limit, offset)
	}

	limit, _, _ = ValidatePagination(5000, 10)
	if limit != 1000 {
		t.Fatalf("expected limit to be capped at 1000, got %d", limit)
	}
}

func TestErrorCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{ErrAlreadyOpen, "already_open"},
		{ErrInvalidStateTransition, "invalid_state_transition"},
		{NewFieldError("amount", ErrInvalidAmount), "invalid_amount"},
		{ErrAmountPrecision, "invalid_amount"},
		{ErrInvalidDenomination, "invalid_denomination"},
		{ErrPermissionDenied, "permission_denied"},
		{ErrConcurrentModification, "concurrent_modification"},
		{ErrLedgerInconsistency, "ledger_inconsistency"},
		{ErrTransientStorage, "transient_storage"},
		{ErrSessionNotFound, "session_not_found"},
		{errors.New("boom"), "internal"},
	}

	for _, tt := range tests {
		if got := ErrorCode(tt.err); got != tt.want {
			t.Fatalf("ErrorCode(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}

	if !errors.Is(ErrAlreadyOpen, ErrInvalidStateTransition) {
		t.Fatal("expected ErrAlreadyOpen to be an invalid state transition")
	}
}
