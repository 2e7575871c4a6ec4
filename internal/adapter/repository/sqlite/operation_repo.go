package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/gotill/internal/domain"
	"github.com/iho/gotill/internal/usecase"
)

const operationColumns = `id, session_id, point_of_sale_id, sequence, kind, amount, signed_cash_delta,
	payment_method, order_ref, counted_cash, note, actor, idempotency_key, created_at`

// OperationRepository implements usecase.OperationRepository.
type OperationRepository struct {
	db *sql.DB
}

// Create appends op to its session ledger inside tx.
func (r *OperationRepository) Create(ctx context.Context, tx usecase.Transaction, op *domain.Operation) error {
	sqlTx, err := sqlTx(tx)
	if err != nil {
		return err
	}

	_, err = sqlTx.ExecContext(ctx,
		`INSERT INTO till_operations (`+operationColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		op.ID,
		op.SessionID,
		op.PointOfSaleID,
		op.Sequence,
		string(op.Kind),
		op.Amount.String(),
		op.SignedCashDelta.String(),
		nullString(string(op.PaymentMethod)),
		nullString(op.OrderRef),
		nullDecimal(op.CountedCash),
		op.Note,
		op.Actor,
		nullString(op.IdempotencyKey),
		toMillis(op.CreatedAt),
	)
	return mapError(err, nil)
}

// GetByIdempotencyKey finds the operation a session recorded under key.
func (r *OperationRepository) GetByIdempotencyKey(ctx context.Context, sessionID, key string) (*domain.Operation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+operationColumns+` FROM till_operations WHERE session_id = ? AND idempotency_key = ?`,
		sessionID, key)
	op, err := scanOperation(row)
	if err != nil {
		return nil, mapError(err, domain.ErrOperationNotFound)
	}
	return op, nil
}

// ListBySession returns a session ledger in sequence order.
func (r *OperationRepository) ListBySession(ctx context.Context, sessionID string) ([]*domain.Operation, error) {
	return r.query(ctx,
		`SELECT `+operationColumns+` FROM till_operations WHERE session_id = ? ORDER BY sequence ASC`,
		sessionID)
}

// ListByPointOfSale returns operations across sessions, most recent first.
func (r *OperationRepository) ListByPointOfSale(ctx context.Context, filter domain.OperationFilter) ([]*domain.Operation, error) {
	where := []string{"point_of_sale_id = ?"}
	args := []any{filter.PointOfSaleID}
	if filter.From != nil {
		where = append(where, "created_at >= ?")
		args = append(args, toMillis(*filter.From))
	}
	if filter.To != nil {
		where = append(where, "created_at < ?")
		args = append(args, toMillis(*filter.To))
	}
	args = append(args, filter.Limit, filter.Offset)

	return r.query(ctx,
		`SELECT `+operationColumns+` FROM till_operations
		 WHERE `+strings.Join(where, " AND ")+`
		 ORDER BY created_at DESC, sequence DESC
		 LIMIT ? OFFSET ?`,
		args...)
}

func (r *OperationRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Operation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, nil)
	}
	defer rows.Close()

	var ops []*domain.Operation
	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			return nil, mapError(err, nil)
		}
		ops = append(ops, op)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, nil)
	}
	return ops, nil
}

func scanOperation(row rowScanner) (*domain.Operation, error) {
	var (
		op                                 domain.Operation
		kind, amount, delta                string
		method, orderRef, counted, idemKey sql.NullString
		createdAt                          int64
	)
	err := row.Scan(
		&op.ID,
		&op.SessionID,
		&op.PointOfSaleID,
		&op.Sequence,
		&kind,
		&amount,
		&delta,
		&method,
		&orderRef,
		&counted,
		&op.Note,
		&op.Actor,
		&idemKey,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	op.Kind = domain.OperationKind(kind)
	if op.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("operation %s: %w", op.ID, err)
	}
	if op.SignedCashDelta, err = decimal.NewFromString(delta); err != nil {
		return nil, fmt.Errorf("operation %s: %w", op.ID, err)
	}
	if op.CountedCash, err = decimalPtr(counted); err != nil {
		return nil, fmt.Errorf("operation %s: %w", op.ID, err)
	}
	op.PaymentMethod = domain.PaymentMethod(method.String)
	op.OrderRef = orderRef.String
	op.IdempotencyKey = idemKey.String
	op.CreatedAt = fromMillis(createdAt)
	return &op, nil
}
