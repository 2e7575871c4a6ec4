package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OperationKind classifies a ledger entry.
type OperationKind string

const (
	OperationKindOpen               OperationKind = "OPEN"
	OperationKindWithdrawal         OperationKind = "WITHDRAWAL"
	OperationKindInHouseConsumption OperationKind = "IN_HOUSE_CONSUMPTION"
	OperationKindRefund             OperationKind = "REFUND"
	OperationKindRecount            OperationKind = "RECOUNT"
	OperationKindClose              OperationKind = "CLOSE"
)

// OperationKinds lists every kind in ledger display order.
var OperationKinds = []OperationKind{
	OperationKindOpen,
	OperationKindWithdrawal,
	OperationKindInHouseConsumption,
	OperationKindRefund,
	OperationKindRecount,
	OperationKindClose,
}

// IsValid reports whether k is a known kind.
func (k OperationKind) IsValid() bool {
	for _, known := range OperationKinds {
		if k == known {
			return true
		}
	}
	return false
}

// IsCashExpense reports whether the kind counts toward cumulative cash expenses.
func (k OperationKind) IsCashExpense() bool {
	return k == OperationKindWithdrawal || k == OperationKindInHouseConsumption
}

// PaymentMethod is the channel a refund is paid through.
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodOnline PaymentMethod = "online"
)

// ParsePaymentMethod accepts a case-insensitive method name.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(strings.ToLower(strings.TrimSpace(s))); m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodOnline:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, s)
	}
}

// Operation is one immutable, append-only ledger entry of a session.
type Operation struct {
	ID              string
	SessionID       string
	PointOfSaleID   string
	Sequence        int64
	Kind            OperationKind
	Amount          decimal.Decimal
	SignedCashDelta decimal.Decimal
	PaymentMethod   PaymentMethod
	OrderRef        string
	CountedCash     *decimal.Decimal
	Note            string
	Actor           string
	IdempotencyKey  string
	CreatedAt       time.Time
}

// OperationFilter narrows point-of-sale operation history.
type OperationFilter struct {
	PointOfSaleID string
	From          *time.Time
	To            *time.Time
	Limit         int
	Offset        int
}
