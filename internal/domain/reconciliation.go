package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SignedCashDelta returns the effect of an operation on expected drawer cash.
//
// Cash refunds add the refunded amount. This mirrors how the drawer has
// always been reconciled by the stores using it and is kept as is.
func SignedCashDelta(kind OperationKind, amount decimal.Decimal, method PaymentMethod) decimal.Decimal {
	switch kind {
	case OperationKindOpen:
		return amount
	case OperationKindWithdrawal, OperationKindInHouseConsumption:
		return amount.Neg()
	case OperationKindRefund:
		if method == PaymentMethodCash {
			return amount
		}
		return decimal.Zero
	default:
		return decimal.Zero
	}
}

// Reconcile returns counted minus expected. Positive means surplus.
func Reconcile(expected, counted decimal.Decimal) decimal.Decimal {
	return counted.Sub(expected)
}

// NewSession builds the snapshot and OPEN entry for a new shift. The
// caller assigns identifiers.
func NewSession(pointOfSaleID, companyID, shiftLabel string, openingFloat decimal.Decimal, actor string, sales SalesTotals, now time.Time) (*TillSession, *Operation) {
	counted := openingFloat
	discrepancy := Reconcile(openingFloat, counted)
	s := &TillSession{
		PointOfSaleID:          pointOfSaleID,
		CompanyID:              companyID,
		ShiftLabel:             shiftLabel,
		State:                  SessionStateOpen,
		OpeningFloat:           openingFloat,
		CumulativeCashSales:    decimal.Zero,
		CumulativeCardSales:    decimal.Zero,
		CumulativeOnlineSales:  decimal.Zero,
		CumulativeCashExpenses: decimal.Zero,
		ExpectedCash:           openingFloat,
		CountedCash:            &counted,
		Discrepancy:            &discrepancy,
		OpenedBy:               actor,
		OpenedAt:               now,
		UpdatedAt:              now,
		Version:                1,
	}
	s.ApplySales(sales)

	op := &Operation{
		PointOfSaleID:   pointOfSaleID,
		Sequence:        1,
		Kind:            OperationKindOpen,
		Amount:          openingFloat,
		SignedCashDelta: SignedCashDelta(OperationKindOpen, openingFloat, ""),
		Actor:           actor,
		CreatedAt:       now,
	}
	return s, op
}

// ApplyCashMovement records a withdrawal, in-house consumption or refund on
// s and returns the matching ledger entry.
func ApplyCashMovement(s *TillSession, kind OperationKind, amount decimal.Decimal, method PaymentMethod) (*Operation, error) {
	if err := s.EnsureOpen(); err != nil {
		return nil, err
	}
	switch kind {
	case OperationKindWithdrawal, OperationKindInHouseConsumption:
		method = ""
	case OperationKindRefund:
	default:
		return nil, fmt.Errorf("%w: %s is not a cash movement", ErrInvalidStateTransition, kind)
	}

	delta := SignedCashDelta(kind, amount, method)
	s.ExpectedCash = s.ExpectedCash.Add(delta)
	if s.CountedCash != nil {
		// The last count follows known movements so the discrepancy only
		// changes when the drawer is counted again.
		c := s.CountedCash.Add(delta)
		s.CountedCash = &c
	}
	if kind.IsCashExpense() {
		s.CumulativeCashExpenses = s.CumulativeCashExpenses.Add(amount)
	}
	s.refreshDiscrepancy()

	return &Operation{
		Kind:            kind,
		Amount:          amount,
		SignedCashDelta: delta,
		PaymentMethod:   method,
	}, nil
}

// ApplyCount records a physical count on s. When closing, the session is
// sealed as well.
func ApplyCount(s *TillSession, counted decimal.Decimal, closing bool, actor string, now time.Time) (*Operation, error) {
	if err := s.EnsureOpen(); err != nil {
		return nil, err
	}
	c := counted
	s.CountedCash = &c
	s.refreshDiscrepancy()

	kind := OperationKindRecount
	if closing {
		kind = OperationKindClose
		s.State = SessionStateClosed
		s.ClosedBy = actor
		closedAt := now
		s.ClosedAt = &closedAt
	}

	cc := counted
	return &Operation{
		Kind:            kind,
		Amount:          counted,
		SignedCashDelta: decimal.Zero,
		CountedCash:     &cc,
	}, nil
}

func (s *TillSession) refreshDiscrepancy() {
	if s.CountedCash == nil {
		s.Discrepancy = nil
		return
	}
	d := Reconcile(s.ExpectedCash, *s.CountedCash)
	s.Discrepancy = &d
}

// LedgerReplay is the snapshot rebuilt from ledger entries alone.
type LedgerReplay struct {
	SessionID    string
	Entries      int
	ExpectedCash decimal.Decimal
	CashExpenses decimal.Decimal
	LastSequence int64
}

// ReplayLedger folds ops (ordered by sequence) into expected cash. The
// first entry must be OPEN carrying the opening float, and sequences must
// be contiguous from 1.
func ReplayLedger(sessionID string, openingFloat decimal.Decimal, ops []*Operation) (*LedgerReplay, error) {
	r := &LedgerReplay{
		SessionID:    sessionID,
		ExpectedCash: decimal.Zero,
		CashExpenses: decimal.Zero,
	}
	for i, op := range ops {
		if op.Sequence != int64(i+1) {
			return nil, fmt.Errorf("%w: session %s: expected sequence %d, found %d",
				ErrLedgerInconsistency, sessionID, i+1, op.Sequence)
		}
		if i == 0 {
			if op.Kind != OperationKindOpen || !op.SignedCashDelta.Equal(openingFloat) {
				return nil, fmt.Errorf("%w: session %s: first entry must open with float %s",
					ErrLedgerInconsistency, sessionID, openingFloat.StringFixed(2))
			}
		} else if op.Kind == OperationKindOpen {
			return nil, fmt.Errorf("%w: session %s: duplicate OPEN at sequence %d",
				ErrLedgerInconsistency, sessionID, op.Sequence)
		}
		r.ExpectedCash = r.ExpectedCash.Add(op.SignedCashDelta)
		if op.Kind.IsCashExpense() {
			r.CashExpenses = r.CashExpenses.Add(op.Amount)
		}
		r.Entries++
		r.LastSequence = op.Sequence
	}
	if r.Entries == 0 {
		return nil, fmt.Errorf("%w: session %s has no ledger entries", ErrLedgerInconsistency, sessionID)
	}
	return r, nil
}

// VerifyLedger checks that s matches the replay of its ledger. Entries
// newer than the snapshot version are ignored.
func VerifyLedger(s *TillSession, ops []*Operation) (*LedgerReplay, error) {
	upTo := make([]*Operation, 0, len(ops))
	for _, op := range ops {
		if op.Sequence <= s.Version {
			upTo = append(upTo, op)
		}
	}
	r, err := ReplayLedger(s.ID, s.OpeningFloat, upTo)
	if err != nil {
		return nil, err
	}
	if r.LastSequence != s.Version {
		return r, fmt.Errorf("%w: session %s at version %d but ledger ends at %d",
			ErrLedgerInconsistency, s.ID, s.Version, r.LastSequence)
	}
	if !r.ExpectedCash.Equal(s.ExpectedCash) {
		return r, fmt.Errorf("%w: session %s expected cash %s, ledger sums to %s",
			ErrLedgerInconsistency, s.ID, s.ExpectedCash.StringFixed(2), r.ExpectedCash.StringFixed(2))
	}
	if !r.CashExpenses.Equal(s.CumulativeCashExpenses) {
		return r, fmt.Errorf("%w: session %s cash expenses %s, ledger sums to %s",
			ErrLedgerInconsistency, s.ID, s.CumulativeCashExpenses.StringFixed(2), r.CashExpenses.StringFixed(2))
	}
	return r, nil
}

// DiscrepancyClass grades a reconciliation result.
type DiscrepancyClass string

const (
	DiscrepancyBalanced        DiscrepancyClass = "BALANCED"
	DiscrepancyWithinTolerance DiscrepancyClass = "WITHIN_TOLERANCE"
	DiscrepancyWarning         DiscrepancyClass = "WARNING"
	DiscrepancyCritical        DiscrepancyClass = "CRITICAL"
)

// DiscrepancyPolicy holds the percentage thresholds, relative to expected
// cash, used to grade a discrepancy.
type DiscrepancyPolicy struct {
	TolerancePct decimal.Decimal
	WarningPct   decimal.Decimal
}

// DefaultDiscrepancyPolicy tolerates 1% and warns up to 5%.
func DefaultDiscrepancyPolicy() DiscrepancyPolicy {
	return DiscrepancyPolicy{
		TolerancePct: decimal.NewFromInt(1),
		WarningPct:   decimal.NewFromInt(5),
	}
}

var hundred = decimal.NewFromInt(100)

// Classify returns the discrepancy as a percentage of expected cash and
// its grade. Any discrepancy against zero expected cash counts as 100%.
func (p DiscrepancyPolicy) Classify(expected, discrepancy decimal.Decimal) (decimal.Decimal, DiscrepancyClass) {
	if discrepancy.IsZero() {
		return decimal.Zero, DiscrepancyBalanced
	}
	pct := hundred
	if !expected.IsZero() {
		pct = discrepancy.Abs().Div(expected.Abs()).Mul(hundred).Round(2)
	}
	switch {
	case pct.LessThanOrEqual(p.TolerancePct):
		return pct, DiscrepancyWithinTolerance
	case pct.LessThanOrEqual(p.WarningPct):
		return pct, DiscrepancyWarning
	default:
		return pct, DiscrepancyCritical
	}
}
