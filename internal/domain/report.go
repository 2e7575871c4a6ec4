package domain

import "github.com/shopspring/decimal"

// KindTotal aggregates the entries of one kind in a session.
type KindTotal struct {
	Kind      OperationKind
	Count     int
	Amount    decimal.Decimal
	CashDelta decimal.Decimal
}

// ShiftReport summarizes a session for the history view and exports.
type ShiftReport struct {
	Session        *TillSession
	Totals         []KindTotal
	OperationCount int
	CardRefunds    decimal.Decimal
	OnlineRefunds  decimal.Decimal
	DiscrepancyPct *decimal.Decimal
	Classification DiscrepancyClass
}

// BuildShiftReport summarizes s and its ledger entries.
func BuildShiftReport(s *TillSession, ops []*Operation, policy DiscrepancyPolicy) *ShiftReport {
	byKind := make(map[OperationKind]*KindTotal, len(OperationKinds))
	r := &ShiftReport{
		Session:       s,
		CardRefunds:   decimal.Zero,
		OnlineRefunds: decimal.Zero,
	}
	for _, op := range ops {
		t, ok := byKind[op.Kind]
		if !ok {
			t = &KindTotal{Kind: op.Kind, Amount: decimal.Zero, CashDelta: decimal.Zero}
			byKind[op.Kind] = t
		}
		t.Count++
		t.Amount = t.Amount.Add(op.Amount)
		t.CashDelta = t.CashDelta.Add(op.SignedCashDelta)
		r.OperationCount++

		if op.Kind == OperationKindRefund {
			switch op.PaymentMethod {
			case PaymentMethodCard:
				r.CardRefunds = r.CardRefunds.Add(op.Amount)
			case PaymentMethodOnline:
				r.OnlineRefunds = r.OnlineRefunds.Add(op.Amount)
			}
		}
	}
	for _, kind := range OperationKinds {
		if t, ok := byKind[kind]; ok {
			r.Totals = append(r.Totals, *t)
		}
	}

	if s.Discrepancy != nil {
		pct, class := policy.Classify(s.ExpectedCash, *s.Discrepancy)
		r.DiscrepancyPct = &pct
		r.Classification = class
	}
	return r
}
