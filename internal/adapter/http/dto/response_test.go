package dto

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gotill/internal/domain"
)

func TestSessionFromDomain(t *testing.T) {
	now := time.Now()
	counted := decimal.RequireFromString("95")
	diff := decimal.RequireFromString("-5")
	session := &domain.TillSession{
		ID:                     "sess-1",
		PointOfSaleID:          "pos-1",
		State:                  domain.SessionStateClosed,
		OpeningFloat:           decimal.NewFromInt(100),
		CumulativeCashSales:    decimal.Zero,
		CumulativeCardSales:    decimal.Zero,
		CumulativeOnlineSales:  decimal.Zero,
		CumulativeCashExpenses: decimal.Zero,
		ExpectedCash:           decimal.NewFromInt(100),
		CountedCash:            &counted,
		Discrepancy:            &diff,
		OpenedAt:               now,
		ClosedAt:               &now,
		Version:                2,
	}

	resp := SessionFromDomain(session)
	if resp.ExpectedCash != "100.00" || resp.State != "CLOSED" || resp.Version != 2 {
		t.Fatalf("unexpected session response: %+v", resp)
	}
	if resp.CountedCash == nil || *resp.CountedCash != "95.00" || *resp.Discrepancy != "-5.00" {
		t.Fatalf("unexpected count fields: %+v", resp)
	}

	list := SessionsFromDomain([]*domain.TillSession{session})
	if len(list) != 1 || list[0].ID != "sess-1" {
		t.Fatalf("SessionsFromDomain returned %+v", list)
	}
}

func TestSessionFromDomain_OpenHasNoCount(t *testing.T) {
	resp := SessionFromDomain(&domain.TillSession{ID: "sess-1", State: domain.SessionStateOpen})
	if resp.CountedCash != nil || resp.Discrepancy != nil || resp.ClosedAt != nil {
		t.Fatalf("open session should have no count: %+v", resp)
	}
}

func TestOperationFromDomain(t *testing.T) {
	op := &domain.Operation{
		ID:              "op-1",
		SessionID:       "sess-1",
		Sequence:        3,
		Kind:            domain.OperationKindRefund,
		Amount:          decimal.NewFromInt(10),
		SignedCashDelta: decimal.Zero,
		PaymentMethod:   domain.PaymentMethodCard,
		Actor:           "user-1",
	}

	resp := OperationFromDomain(op)
	if resp.Amount != "10.00" || resp.SignedCashDelta != "0.00" || resp.PaymentMethod != "card" || resp.Sequence != 3 {
		t.Fatalf("unexpected operation response: %+v", resp)
	}
	if got := OperationsFromDomain([]*domain.Operation{op}); len(got) != 1 {
		t.Fatalf("OperationsFromDomain returned %d items", len(got))
	}
}

func TestShiftReportFromDomain(t *testing.T) {
	pct := decimal.RequireFromString("1.5")
	report := &domain.ShiftReport{
		Session: &domain.TillSession{ID: "sess-1"},
		Totals: []domain.KindTotal{
			{Kind: domain.OperationKindWithdrawal, Count: 2, Amount: decimal.NewFromInt(30), CashDelta: decimal.NewFromInt(-30)},
		},
		OperationCount: 3,
		CardRefunds:    decimal.Zero,
		OnlineRefunds:  decimal.Zero,
		DiscrepancyPct: &pct,
		Classification: domain.DiscrepancyWarning,
	}

	resp := ShiftReportFromDomain(report)
	if len(resp.Totals) != 1 || resp.Totals[0].CashDelta != "-30.00" || resp.Totals[0].Count != 2 {
		t.Fatalf("unexpected totals: %+v", resp.Totals)
	}
	if resp.DiscrepancyPct == nil || *resp.DiscrepancyPct != "1.50" || resp.Classification != "WARNING" {
		t.Fatalf("unexpected discrepancy: %+v", resp)
	}
}

func TestLedgerReplayFromDomain(t *testing.T) {
	replay := &domain.LedgerReplay{SessionID: "sess-1", Entries: 2, ExpectedCash: decimal.NewFromInt(80), CashExpenses: decimal.NewFromInt(20), LastSequence: 2}

	ok := LedgerReplayFromDomain("sess-1", replay, nil)
	if !ok.Consistent || ok.ExpectedCash != "80.00" || ok.Message != "" {
		t.Fatalf("unexpected replay: %+v", ok)
	}

	bad := LedgerReplayFromDomain("sess-1", nil, errors.New("drift"))
	if bad.Consistent || bad.Message != "drift" || bad.Entries != 0 {
		t.Fatalf("unexpected replay: %+v", bad)
	}
}

func TestDenominationsFromDomain(t *testing.T) {
	resp := DenominationsFromDomain(domain.Denominations())
	if len(resp) == 0 || resp[0].Value != "500.00" || resp[0].Kind != "BILL" {
		t.Fatalf("unexpected denominations: %+v", resp)
	}
}
