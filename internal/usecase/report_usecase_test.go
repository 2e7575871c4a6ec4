package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/gotill/internal/domain"
	"github.com/iho/gotill/internal/usecase"
)

func TestReportUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	s := f.open(t, "100.00")
	if _, err := f.uc.Withdraw(ctx, usecase.CashMovementInput{SessionID: s.ID, Amount: decimal.NewFromInt(20), Actor: manager}); err != nil {
		t.Fatalf("withdraw failed: %v", err)
	}
	if _, err := f.uc.Close(ctx, usecase.CountInput{SessionID: s.ID, Counts: counts8350(), Actor: cashier}); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	uc := usecase.NewReportUseCase(f.sessions, f.ops, roleGate{}, domain.DefaultDiscrepancyPolicy())

	t.Run("shift report", func(t *testing.T) {
		report, err := uc.ShiftReport(ctx, manager, s.ID)
		if err != nil {
			t.Fatalf("report failed: %v", err)
		}
		if report.OperationCount != 3 || report.Classification != domain.DiscrepancyWarning {
			t.Fatalf("unexpected report: %+v", report)
		}
	})

	t.Run("cashier denied", func(t *testing.T) {
		if _, err := uc.ShiftReport(ctx, cashier, s.ID); !errors.Is(err, domain.ErrPermissionDenied) {
			t.Fatalf("expected ErrPermissionDenied, got %v", err)
		}
	})

	t.Run("list closed sessions", func(t *testing.T) {
		sessions, err := uc.ListSessions(ctx, manager, domain.SessionFilter{PointOfSaleID: "POS-1", State: domain.SessionStateClosed})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(sessions) != 1 || sessions[0].ID != s.ID {
			t.Fatalf("unexpected sessions: %+v", sessions)
		}
	})

	t.Run("bad state filter", func(t *testing.T) {
		_, err := uc.ListSessions(ctx, manager, domain.SessionFilter{State: "PAUSED"})
		if !errors.Is(err, domain.ErrInvalidFilter) {
			t.Fatalf("expected ErrInvalidFilter, got %v", err)
		}
	})

	t.Run("export reports", func(t *testing.T) {
		reports, err := uc.ShiftReports(ctx, manager, domain.SessionFilter{})
		if err != nil {
			t.Fatalf("reports failed: %v", err)
		}
		if len(reports) != 1 || reports[0].Session.ID != s.ID {
			t.Fatalf("unexpected reports: %+v", reports)
		}
	})
}
