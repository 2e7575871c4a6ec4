package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/gotill/internal/domain"
	"github.com/iho/gotill/internal/infrastructure/postgres/generated"
	"github.com/iho/gotill/internal/usecase"
)

// OperationRepository implements usecase.OperationRepository.
type OperationRepository struct {
	queries *generated.Queries
}

// NewOperationRepository creates a new OperationRepository.
func NewOperationRepository(db generated.DBTX) *OperationRepository {
	return &OperationRepository{queries: generated.New(db)}
}

// Create appends op to its session ledger inside tx.
func (r *OperationRepository) Create(ctx context.Context, tx usecase.Transaction, op *domain.Operation) error {
	queries, err := queriesFor(tx)
	if err != nil {
		return err
	}

	err = queries.CreateTillOperation(ctx, generated.CreateTillOperationParams{
		ID:              op.ID,
		SessionID:       op.SessionID,
		PointOfSaleID:   op.PointOfSaleID,
		Sequence:        op.Sequence,
		Kind:            string(op.Kind),
		Amount:          decimalToNumeric(op.Amount),
		SignedCashDelta: decimalToNumeric(op.SignedCashDelta),
		PaymentMethod:   textOrNull(string(op.PaymentMethod)),
		OrderRef:        textOrNull(op.OrderRef),
		CountedCash:     decimalPtrToNumeric(op.CountedCash),
		Note:            op.Note,
		Actor:           op.Actor,
		IdempotencyKey:  textOrNull(op.IdempotencyKey),
		CreatedAt:       timeToPgTimestamptz(op.CreatedAt),
	})

	return mapError(err, nil)
}

// GetByIdempotencyKey finds the operation a session recorded under key.
func (r *OperationRepository) GetByIdempotencyKey(ctx context.Context, sessionID, key string) (*domain.Operation, error) {
	row, err := r.queries.GetTillOperationByIdempotencyKey(ctx, generated.GetTillOperationByIdempotencyKeyParams{
		SessionID:      sessionID,
		IdempotencyKey: pgtype.Text{String: key, Valid: true},
	})
	if err != nil {
		return nil, mapError(err, domain.ErrOperationNotFound)
	}

	return rowToOperation(row), nil
}

// ListBySession returns a session ledger in sequence order.
func (r *OperationRepository) ListBySession(ctx context.Context, sessionID string) ([]*domain.Operation, error) {
	rows, err := r.queries.ListTillOperationsBySession(ctx, sessionID)
	if err != nil {
		return nil, mapError(err, nil)
	}

	return rowsToOperations(rows), nil
}

// ListByPointOfSale returns operations across sessions, most recent first.
func (r *OperationRepository) ListByPointOfSale(ctx context.Context, filter domain.OperationFilter) ([]*domain.Operation, error) {
	rows, err := r.queries.ListTillOperationsByPointOfSale(ctx, generated.ListTillOperationsByPointOfSaleParams{
		PointOfSaleID: filter.PointOfSaleID,
		CreatedFrom:   timePtrToPgTimestamptz(filter.From),
		CreatedTo:     timePtrToPgTimestamptz(filter.To),
		Limit:         int32(filter.Limit),
		Offset:        int32(filter.Offset),
	})
	if err != nil {
		return nil, mapError(err, nil)
	}

	return rowsToOperations(rows), nil
}

func rowsToOperations(rows []generated.TillOperation) []*domain.Operation {
	ops := make([]*domain.Operation, 0, len(rows))
	for _, row := range rows {
		ops = append(ops, rowToOperation(row))
	}
	return ops
}

func rowToOperation(row generated.TillOperation) *domain.Operation {
	return &domain.Operation{
		ID:              row.ID,
		SessionID:       row.SessionID,
		PointOfSaleID:   row.PointOfSaleID,
		Sequence:        row.Sequence,
		Kind:            domain.OperationKind(row.Kind),
		Amount:          numericToDecimal(row.Amount),
		SignedCashDelta: numericToDecimal(row.SignedCashDelta),
		PaymentMethod:   domain.PaymentMethod(textValue(row.PaymentMethod)),
		OrderRef:        textValue(row.OrderRef),
		CountedCash:     numericToDecimalPtr(row.CountedCash),
		Note:            row.Note,
		Actor:           row.Actor,
		IdempotencyKey:  textValue(row.IdempotencyKey),
		CreatedAt:       row.CreatedAt.Time,
	}
}
