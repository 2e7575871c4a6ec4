package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/gotill/internal/domain"
	"github.com/iho/gotill/internal/infrastructure/postgres/generated"
	"github.com/iho/gotill/internal/usecase"
)

// SessionRepository implements usecase.SessionRepository.
type SessionRepository struct {
	queries *generated.Queries
}

// NewSessionRepository creates a new SessionRepository. db is usually a
// *pgxpool.Pool.
func NewSessionRepository(db generated.DBTX) *SessionRepository {
	return &SessionRepository{queries: generated.New(db)}
}

// Create inserts a new session inside tx.
func (r *SessionRepository) Create(ctx context.Context, tx usecase.Transaction, session *domain.TillSession) error {
	queries, err := queriesFor(tx)
	if err != nil {
		return err
	}

	err = queries.CreateTillSession(ctx, generated.CreateTillSessionParams{
		ID:                     session.ID,
		PointOfSaleID:          session.PointOfSaleID,
		CompanyID:              session.CompanyID,
		ShiftLabel:             session.ShiftLabel,
		State:                  string(session.State),
		OpeningFloat:           decimalToNumeric(session.OpeningFloat),
		CumulativeCashSales:    decimalToNumeric(session.CumulativeCashSales),
		CumulativeCardSales:    decimalToNumeric(session.CumulativeCardSales),
		CumulativeOnlineSales:  decimalToNumeric(session.CumulativeOnlineSales),
		CumulativeCashExpenses: decimalToNumeric(session.CumulativeCashExpenses),
		ExpectedCash:           decimalToNumeric(session.ExpectedCash),
		CountedCash:            decimalPtrToNumeric(session.CountedCash),
		Discrepancy:            decimalPtrToNumeric(session.Discrepancy),
		OpenedBy:               session.OpenedBy,
		ClosedBy:               textOrNull(session.ClosedBy),
		OpenedAt:               timeToPgTimestamptz(session.OpenedAt),
		ClosedAt:               timePtrToPgTimestamptz(session.ClosedAt),
		UpdatedAt:              timeToPgTimestamptz(session.UpdatedAt),
		Version:                session.Version,
	})

	return mapError(err, nil)
}

// GetByID retrieves a session by ID.
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*domain.TillSession, error) {
	row, err := r.queries.GetTillSessionByID(ctx, id)
	if err != nil {
		return nil, mapError(err, domain.ErrSessionNotFound)
	}

	return rowToSession(row), nil
}

// GetOpenByPointOfSale retrieves the open session of a point of sale.
func (r *SessionRepository) GetOpenByPointOfSale(ctx context.Context, pointOfSaleID string) (*domain.TillSession, error) {
	row, err := r.queries.GetOpenTillSessionByPointOfSale(ctx, pointOfSaleID)
	if err != nil {
		return nil, mapError(err, domain.ErrSessionNotFound)
	}

	return rowToSession(row), nil
}

// Update writes the mutable fields of session if the stored version is
// still expectedVersion.
func (r *SessionRepository) Update(ctx context.Context, tx usecase.Transaction, session *domain.TillSession, expectedVersion int64) error {
	queries, err := queriesFor(tx)
	if err != nil {
		return err
	}

	affected, err := queries.UpdateTillSession(ctx, generated.UpdateTillSessionParams{
		ID:                     session.ID,
		State:                  string(session.State),
		CumulativeCashSales:    decimalToNumeric(session.CumulativeCashSales),
		CumulativeCardSales:    decimalToNumeric(session.CumulativeCardSales),
		CumulativeOnlineSales:  decimalToNumeric(session.CumulativeOnlineSales),
		CumulativeCashExpenses: decimalToNumeric(session.CumulativeCashExpenses),
		ExpectedCash:           decimalToNumeric(session.ExpectedCash),
		CountedCash:            decimalPtrToNumeric(session.CountedCash),
		Discrepancy:            decimalPtrToNumeric(session.Discrepancy),
		ClosedBy:               textOrNull(session.ClosedBy),
		ClosedAt:               timePtrToPgTimestamptz(session.ClosedAt),
		UpdatedAt:              timeToPgTimestamptz(session.UpdatedAt),
		Version:                session.Version,
		Version_2:              expectedVersion,
	})
	if err != nil {
		return mapError(err, nil)
	}
	if affected == 0 {
		return fmt.Errorf("%w: session %s is no longer at version %d", domain.ErrStaleSnapshot, session.ID, expectedVersion)
	}

	return nil
}

// List lists sessions matching filter, most recently opened first.
func (r *SessionRepository) List(ctx context.Context, filter domain.SessionFilter) ([]*domain.TillSession, error) {
	rows, err := r.queries.ListTillSessions(ctx, generated.ListTillSessionsParams{
		PointOfSaleID: textOrNull(filter.PointOfSaleID),
		CompanyID:     textOrNull(filter.CompanyID),
		State:         textOrNull(string(filter.State)),
		OpenedFrom:    timePtrToPgTimestamptz(filter.From),
		OpenedTo:      timePtrToPgTimestamptz(filter.To),
		Limit:         int32(filter.Limit),
		Offset:        int32(filter.Offset),
	})
	if err != nil {
		return nil, mapError(err, nil)
	}

	sessions := make([]*domain.TillSession, 0, len(rows))
	for _, row := range rows {
		sessions = append(sessions, rowToSession(row))
	}

	return sessions, nil
}

func rowToSession(row generated.TillSession) *domain.TillSession {
	return &domain.TillSession{
		ID:                     row.ID,
		PointOfSaleID:          row.PointOfSaleID,
		CompanyID:              row.CompanyID,
		ShiftLabel:             row.ShiftLabel,
		State:                  domain.SessionState(row.State),
		OpeningFloat:           numericToDecimal(row.OpeningFloat),
		CumulativeCashSales:    numericToDecimal(row.CumulativeCashSales),
		CumulativeCardSales:    numericToDecimal(row.CumulativeCardSales),
		CumulativeOnlineSales:  numericToDecimal(row.CumulativeOnlineSales),
		CumulativeCashExpenses: numericToDecimal(row.CumulativeCashExpenses),
		ExpectedCash:           numericToDecimal(row.ExpectedCash),
		CountedCash:            numericToDecimalPtr(row.CountedCash),
		Discrepancy:            numericToDecimalPtr(row.Discrepancy),
		OpenedBy:               row.OpenedBy,
		ClosedBy:               textValue(row.ClosedBy),
		OpenedAt:               row.OpenedAt.Time,
		ClosedAt:               pgTimestamptzToTimePtr(row.ClosedAt),
		UpdatedAt:              row.UpdatedAt.Time,
		Version:                row.Version,
	}
}

func textValue(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return t.String
}
