package dto

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/gotill/internal/domain"
	"github.com/iho/gotill/internal/usecase"
)

// OpenTillRequest represents a request to open a till.
type OpenTillRequest struct {
	PointOfSaleID string `json:"point_of_sale_id"`
	CompanyID     string `json:"company_id"`
	ShiftLabel    string `json:"shift_label"`
	OpeningFloat  string `json:"opening_float"`
}

// ToUseCaseInput converts to use case input.
func (r *OpenTillRequest) ToUseCaseInput(actor domain.Actor, idempotencyKey string) (usecase.OpenSessionInput, error) {
	float, err := parseAmount("opening_float", r.OpeningFloat)
	if err != nil {
		return usecase.OpenSessionInput{}, err
	}
	return usecase.OpenSessionInput{
		PointOfSaleID:  r.PointOfSaleID,
		CompanyID:      r.CompanyID,
		ShiftLabel:     r.ShiftLabel,
		OpeningFloat:   float,
		Actor:          actor,
		IdempotencyKey: idempotencyKey,
	}, nil
}

// CashMovementRequest represents a withdrawal or in-house consumption.
type CashMovementRequest struct {
	Amount string `json:"amount"`
	Note   string `json:"note,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CashMovementRequest) ToUseCaseInput(sessionID string, actor domain.Actor, idempotencyKey string) (usecase.CashMovementInput, error) {
	amount, err := parseAmount("amount", r.Amount)
	if err != nil {
		return usecase.CashMovementInput{}, err
	}
	return usecase.CashMovementInput{
		SessionID:      sessionID,
		Amount:         amount,
		Note:           r.Note,
		Actor:          actor,
		IdempotencyKey: idempotencyKey,
	}, nil
}

// RefundRequest represents a refund paid out of a till.
type RefundRequest struct {
	Amount        string `json:"amount"`
	PaymentMethod string `json:"payment_method"`
	OrderRef      string `json:"order_ref,omitempty"`
	Note          string `json:"note,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RefundRequest) ToUseCaseInput(sessionID string, actor domain.Actor, idempotencyKey string) (usecase.RefundInput, error) {
	amount, err := parseAmount("amount", r.Amount)
	if err != nil {
		return usecase.RefundInput{}, err
	}
	return usecase.RefundInput{
		SessionID:      sessionID,
		Amount:         amount,
		PaymentMethod:  r.PaymentMethod,
		OrderRef:       r.OrderRef,
		Note:           r.Note,
		Actor:          actor,
		IdempotencyKey: idempotencyKey,
	}, nil
}

// DenominationLine is one face value and its quantity in a count.
type DenominationLine struct {
	Value    string `json:"value"`
	Quantity int64  `json:"quantity"`
}

// CountRequest represents a recount or close.
type CountRequest struct {
	Counts []DenominationLine `json:"counts"`
	Note   string             `json:"note,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CountRequest) ToUseCaseInput(sessionID string, actor domain.Actor, idempotencyKey string) (usecase.CountInput, error) {
	counts := make(domain.DenominationCount, 0, len(r.Counts))
	for i, line := range r.Counts {
		value, err := decimal.NewFromString(line.Value)
		if err != nil {
			return usecase.CountInput{}, domain.NewFieldError(
				fmt.Sprintf("counts[%d].value", i),
				fmt.Errorf("%w: %q", domain.ErrInvalidDenomination, line.Value))
		}
		counts = append(counts, domain.DenominationQuantity{Value: value, Quantity: line.Quantity})
	}
	return usecase.CountInput{
		SessionID:      sessionID,
		Counts:         counts,
		Note:           r.Note,
		Actor:          actor,
		IdempotencyKey: idempotencyKey,
	}, nil
}

func parseAmount(field, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Decimal{}, domain.NewFieldError(field, domain.ErrRequiredField)
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, domain.NewFieldError(field, fmt.Errorf("%w: %q", domain.ErrInvalidAmount, raw))
	}
	return amount, nil
}
