package postgres

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDecimalNumericRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "83.50", "-3.50", "10000000.00", "0.01"} {
		d := decimal.RequireFromString(s)
		got := numericToDecimal(decimalToNumeric(d))
		if !got.Equal(d) {
			t.Fatalf("round trip of %s gave %s", s, got)
		}
	}
}

func TestNullableConversions(t *testing.T) {
	if decimalPtrToNumeric(nil).Valid {
		t.Fatalf("expected nil decimal to be NULL")
	}
	if numericToDecimalPtr(decimalPtrToNumeric(nil)) != nil {
		t.Fatalf("expected NULL numeric to map to nil")
	}

	v := decimal.RequireFromString("3.50")
	if got := numericToDecimalPtr(decimalPtrToNumeric(&v)); got == nil || !got.Equal(v) {
		t.Fatalf("expected 3.50, got %v", got)
	}

	if timePtrToPgTimestamptz(nil).Valid || pgTimestamptzToTimePtr(timePtrToPgTimestamptz(nil)) != nil {
		t.Fatalf("expected nil time to be NULL")
	}
	now := time.Now().UTC()
	if got := pgTimestamptzToTimePtr(timePtrToPgTimestamptz(&now)); got == nil || !got.Equal(now) {
		t.Fatalf("expected %v, got %v", now, got)
	}

	if textOrNull("").Valid || !textOrNull("cash").Valid {
		t.Fatalf("unexpected text nullability")
	}
}
