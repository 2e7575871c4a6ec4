package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/gotill/internal/adapter/http/dto"
	"github.com/iho/gotill/internal/domain"
)

type ledgerServiceStub struct {
	sessionOpsFn  func(ctx context.Context, sessionID string) ([]*domain.Operation, error)
	posOpsFn      func(ctx context.Context, actor domain.Actor, filter domain.OperationFilter) ([]*domain.Operation, error)
	verifyFn      func(ctx context.Context, sessionID string) (*domain.LedgerReplay, error)
	consistencyFn func(ctx context.Context) ([]string, error)
}

func (s *ledgerServiceStub) ListSessionOperations(ctx context.Context, sessionID string) ([]*domain.Operation, error) {
	return s.sessionOpsFn(ctx, sessionID)
}

func (s *ledgerServiceStub) ListPointOfSaleOperations(ctx context.Context, actor domain.Actor, filter domain.OperationFilter) ([]*domain.Operation, error) {
	return s.posOpsFn(ctx, actor, filter)
}

func (s *ledgerServiceStub) VerifySession(ctx context.Context, sessionID string) (*domain.LedgerReplay, error) {
	return s.verifyFn(ctx, sessionID)
}

func (s *ledgerServiceStub) CheckConsistency(ctx context.Context) ([]string, error) {
	return s.consistencyFn(ctx)
}

func TestLedgerHandler_SessionOperations(t *testing.T) {
	handler := NewLedgerHandler(&ledgerServiceStub{
		sessionOpsFn: func(ctx context.Context, sessionID string) ([]*domain.Operation, error) {
			return []*domain.Operation{
				{ID: "op-1", SessionID: sessionID, Sequence: 1, Kind: domain.OperationKindOpen, Amount: decimal.NewFromInt(100), SignedCashDelta: decimal.NewFromInt(100)},
			}, nil
		},
	})

	req := withRoute(httptest.NewRequest(http.MethodGet, "/tills/sess-1/operations", nil), nil, map[string]string{"id": "sess-1"})
	rec := httptest.NewRecorder()

	handler.SessionOperations(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp []dto.OperationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if len(resp) != 1 || resp[0].Kind != "OPEN" || resp[0].SessionID != "sess-1" {
		t.Fatalf("unexpected operations: %+v", resp)
	}
}

func TestLedgerHandler_PointOfSaleOperations_Filter(t *testing.T) {
	var captured domain.OperationFilter
	handler := NewLedgerHandler(&ledgerServiceStub{
		posOpsFn: func(ctx context.Context, actor domain.Actor, filter domain.OperationFilter) ([]*domain.Operation, error) {
			captured = filter
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/points-of-sale/pos-1/operations?limit=5&offset=10&from=2026-03-01T00:00:00Z", nil)
	req = withRoute(req, &testManager, map[string]string{"posId": "pos-1"})
	rec := httptest.NewRecorder()

	handler.PointOfSaleOperations(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.PointOfSaleID != "pos-1" || captured.Limit != 5 || captured.Offset != 10 || captured.From == nil {
		t.Fatalf("unexpected filter: %+v", captured)
	}
}

func TestLedgerHandler_PointOfSaleOperations_Forbidden(t *testing.T) {
	handler := NewLedgerHandler(&ledgerServiceStub{
		posOpsFn: func(ctx context.Context, actor domain.Actor, filter domain.OperationFilter) ([]*domain.Operation, error) {
			return nil, domain.ErrPermissionDenied
		},
	})

	cashier := domain.Actor{ID: "c1", Role: domain.RoleCashier}
	req := withRoute(httptest.NewRequest(http.MethodGet, "/points-of-sale/pos-1/operations", nil), &cashier, map[string]string{"posId": "pos-1"})
	rec := httptest.NewRecorder()

	handler.PointOfSaleOperations(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestLedgerHandler_Verify(t *testing.T) {
	tests := []struct {
		name       string
		replay     *domain.LedgerReplay
		err        error
		status     int
		consistent bool
	}{
		{"consistent", &domain.LedgerReplay{SessionID: "sess-1", Entries: 2, ExpectedCash: decimal.NewFromInt(80)}, nil, http.StatusOK, true},
		{"drift", nil, fmt.Errorf("%w: expected cash differs", domain.ErrLedgerInconsistency), http.StatusOK, false},
		{"not found", nil, domain.ErrSessionNotFound, http.StatusNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewLedgerHandler(&ledgerServiceStub{
				verifyFn: func(ctx context.Context, sessionID string) (*domain.LedgerReplay, error) {
					return tt.replay, tt.err
				},
			})
			req := withRoute(httptest.NewRequest(http.MethodGet, "/tills/sess-1/verify", nil), nil, map[string]string{"id": "sess-1"})
			rec := httptest.NewRecorder()

			handler.Verify(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
			if tt.status != http.StatusOK {
				return
			}
			var resp dto.LedgerReplayResponse
			json.Unmarshal(rec.Body.Bytes(), &resp)
			if resp.Consistent != tt.consistent {
				t.Fatalf("expected consistent=%v, got %+v", tt.consistent, resp)
			}
		})
	}
}

func TestLedgerHandler_Consistency(t *testing.T) {
	handler := NewLedgerHandler(&ledgerServiceStub{
		consistencyFn: func(ctx context.Context) ([]string, error) {
			return []string{"sess-2"}, fmt.Errorf("%w: 1 sessions", domain.ErrLedgerInconsistency)
		},
	})

	rec := httptest.NewRecorder()
	handler.Consistency(rec, httptest.NewRequest(http.MethodGet, "/ledger/consistency", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp ConsistencyResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Consistent || len(resp.InconsistentSessions) != 1 || resp.InconsistentSessions[0] != "sess-2" {
		t.Fatalf("unexpected consistency response: %+v", resp)
	}
}

func TestLedgerHandler_Consistency_Clean(t *testing.T) {
	handler := NewLedgerHandler(&ledgerServiceStub{
		consistencyFn: func(ctx context.Context) ([]string, error) { return nil, nil },
	})

	rec := httptest.NewRecorder()
	handler.Consistency(rec, httptest.NewRequest(http.MethodGet, "/ledger/consistency", nil))

	var resp ConsistencyResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if !resp.Consistent || resp.InconsistentSessions == nil {
		t.Fatalf("unexpected consistency response: %+v", resp)
	}
}
