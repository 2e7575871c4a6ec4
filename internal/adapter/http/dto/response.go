package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gotill/internal/domain"
)

// SessionResponse represents a till session in API responses.
type SessionResponse struct {
	ID                     string     `json:"id"`
	PointOfSaleID          string     `json:"point_of_sale_id"`
	CompanyID              string     `json:"company_id"`
	ShiftLabel             string     `json:"shift_label"`
	State                  string     `json:"state"`
	OpeningFloat           string     `json:"opening_float"`
	CumulativeCashSales    string     `json:"cumulative_cash_sales"`
	CumulativeCardSales    string     `json:"cumulative_card_sales"`
	CumulativeOnlineSales  string     `json:"cumulative_online_sales"`
	CumulativeCashExpenses string     `json:"cumulative_cash_expenses"`
	ExpectedCash           string     `json:"expected_cash"`
	CountedCash            *string    `json:"counted_cash"`
	Discrepancy            *string    `json:"discrepancy"`
	OpenedBy               string     `json:"opened_by"`
	ClosedBy               string     `json:"closed_by,omitempty"`
	OpenedAt               time.Time  `json:"opened_at"`
	ClosedAt               *time.Time `json:"closed_at,omitempty"`
	UpdatedAt              time.Time  `json:"updated_at"`
	Version                int64      `json:"version"`
}

// SessionFromDomain converts a domain session to response.
func SessionFromDomain(s *domain.TillSession) *SessionResponse {
	return &SessionResponse{
		ID:                     s.ID,
		PointOfSaleID:          s.PointOfSaleID,
		CompanyID:              s.CompanyID,
		ShiftLabel:             s.ShiftLabel,
		State:                  string(s.State),
		OpeningFloat:           money(s.OpeningFloat),
		CumulativeCashSales:    money(s.CumulativeCashSales),
		CumulativeCardSales:    money(s.CumulativeCardSales),
		CumulativeOnlineSales:  money(s.CumulativeOnlineSales),
		CumulativeCashExpenses: money(s.CumulativeCashExpenses),
		ExpectedCash:           money(s.ExpectedCash),
		CountedCash:            moneyPtr(s.CountedCash),
		Discrepancy:            moneyPtr(s.Discrepancy),
		OpenedBy:               s.OpenedBy,
		ClosedBy:               s.ClosedBy,
		OpenedAt:               s.OpenedAt,
		ClosedAt:               s.ClosedAt,
		UpdatedAt:              s.UpdatedAt,
		Version:                s.Version,
	}
}

// SessionsFromDomain converts domain sessions to responses.
func SessionsFromDomain(sessions []*domain.TillSession) []*SessionResponse {
	result := make([]*SessionResponse, len(sessions))
	for i, s := range sessions {
		result[i] = SessionFromDomain(s)
	}
	return result
}

// ListSessionsResponse is a page of sessions.
type ListSessionsResponse struct {
	Sessions []*SessionResponse `json:"sessions"`
	Total    int64              `json:"total"`
}

// OperationResponse represents a ledger entry in API responses.
type OperationResponse struct {
	ID              string    `json:"id"`
	SessionID       string    `json:"session_id"`
	PointOfSaleID   string    `json:"point_of_sale_id"`
	Sequence        int64     `json:"sequence"`
	Kind            string    `json:"kind"`
	Amount          string    `json:"amount"`
	SignedCashDelta string    `json:"signed_cash_delta"`
	PaymentMethod   string    `json:"payment_method,omitempty"`
	OrderRef        string    `json:"order_ref,omitempty"`
	CountedCash     *string   `json:"counted_cash,omitempty"`
	Note            string    `json:"note,omitempty"`
	Actor           string    `json:"actor"`
	CreatedAt       time.Time `json:"created_at"`
}

// OperationFromDomain converts a domain operation to response.
func OperationFromDomain(op *domain.Operation) *OperationResponse {
	return &OperationResponse{
		ID:              op.ID,
		SessionID:       op.SessionID,
		PointOfSaleID:   op.PointOfSaleID,
		Sequence:        op.Sequence,
		Kind:            string(op.Kind),
		Amount:          money(op.Amount),
		SignedCashDelta: money(op.SignedCashDelta),
		PaymentMethod:   string(op.PaymentMethod),
		OrderRef:        op.OrderRef,
		CountedCash:     moneyPtr(op.CountedCash),
		Note:            op.Note,
		Actor:           op.Actor,
		CreatedAt:       op.CreatedAt,
	}
}

// OperationsFromDomain converts domain operations to responses.
func OperationsFromDomain(ops []*domain.Operation) []*OperationResponse {
	result := make([]*OperationResponse, len(ops))
	for i, op := range ops {
		result[i] = OperationFromDomain(op)
	}
	return result
}

// KindTotalResponse aggregates one operation kind in a report.
type KindTotalResponse struct {
	Kind      string `json:"kind"`
	Count     int    `json:"count"`
	Amount    string `json:"amount"`
	CashDelta string `json:"cash_delta"`
}

// ShiftReportResponse represents a shift summary.
type ShiftReportResponse struct {
	Session        *SessionResponse     `json:"session"`
	Totals         []*KindTotalResponse `json:"totals"`
	OperationCount int                  `json:"operation_count"`
	CardRefunds    string               `json:"card_refunds"`
	OnlineRefunds  string               `json:"online_refunds"`
	DiscrepancyPct *string              `json:"discrepancy_pct,omitempty"`
	Classification string               `json:"classification,omitempty"`
}

// ShiftReportFromDomain converts a domain report to response.
func ShiftReportFromDomain(r *domain.ShiftReport) *ShiftReportResponse {
	totals := make([]*KindTotalResponse, len(r.Totals))
	for i, t := range r.Totals {
		totals[i] = &KindTotalResponse{
			Kind:      string(t.Kind),
			Count:     t.Count,
			Amount:    money(t.Amount),
			CashDelta: money(t.CashDelta),
		}
	}
	return &ShiftReportResponse{
		Session:        SessionFromDomain(r.Session),
		Totals:         totals,
		OperationCount: r.OperationCount,
		CardRefunds:    money(r.CardRefunds),
		OnlineRefunds:  money(r.OnlineRefunds),
		DiscrepancyPct: moneyPtr(r.DiscrepancyPct),
		Classification: string(r.Classification),
	}
}

// LedgerReplayResponse is the result of replaying one session's ledger.
type LedgerReplayResponse struct {
	SessionID    string `json:"session_id"`
	Consistent   bool   `json:"consistent"`
	Entries      int    `json:"entries"`
	ExpectedCash string `json:"expected_cash"`
	CashExpenses string `json:"cash_expenses"`
	LastSequence int64  `json:"last_sequence"`
	Message      string `json:"message,omitempty"`
}

// LedgerReplayFromDomain converts a replay to response. r may be nil when
// the ledger could not be replayed at all.
func LedgerReplayFromDomain(sessionID string, r *domain.LedgerReplay, err error) *LedgerReplayResponse {
	resp := &LedgerReplayResponse{SessionID: sessionID, Consistent: err == nil}
	if r != nil {
		resp.Entries = r.Entries
		resp.ExpectedCash = money(r.ExpectedCash)
		resp.CashExpenses = money(r.CashExpenses)
		resp.LastSequence = r.LastSequence
	}
	if err != nil {
		resp.Message = err.Error()
	}
	return resp
}

// DenominationResponse is one accepted face value.
type DenominationResponse struct {
	Value string `json:"value"`
	Kind  string `json:"kind"`
}

// DenominationsFromDomain converts the denomination set to responses.
func DenominationsFromDomain(ds []domain.Denomination) []*DenominationResponse {
	result := make([]*DenominationResponse, len(ds))
	for i, d := range ds {
		result[i] = &DenominationResponse{Value: money(d.Value), Kind: string(d.Kind)}
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message,omitempty"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func moneyPtr(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	v := d.StringFixed(2)
	return &v
}
