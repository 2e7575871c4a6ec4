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

const sessionColumns = `id, point_of_sale_id, company_id, shift_label, state, opening_float,
	cumulative_cash_sales, cumulative_card_sales, cumulative_online_sales, cumulative_cash_expenses,
	expected_cash, counted_cash, discrepancy, opened_by, closed_by, opened_at, closed_at, updated_at, version`

// SessionRepository implements usecase.SessionRepository.
type SessionRepository struct {
	db *sql.DB
}

// Create inserts a new session inside tx.
func (r *SessionRepository) Create(ctx context.Context, tx usecase.Transaction, s *domain.TillSession) error {
	sqlTx, err := sqlTx(tx)
	if err != nil {
		return err
	}

	_, err = sqlTx.ExecContext(ctx,
		`INSERT INTO till_sessions (`+sessionColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID,
		s.PointOfSaleID,
		s.CompanyID,
		s.ShiftLabel,
		string(s.State),
		s.OpeningFloat.String(),
		s.CumulativeCashSales.String(),
		s.CumulativeCardSales.String(),
		s.CumulativeOnlineSales.String(),
		s.CumulativeCashExpenses.String(),
		s.ExpectedCash.String(),
		nullDecimal(s.CountedCash),
		nullDecimal(s.Discrepancy),
		s.OpenedBy,
		nullString(s.ClosedBy),
		toMillis(s.OpenedAt),
		nullMillis(s.ClosedAt),
		toMillis(s.UpdatedAt),
		s.Version,
	)
	return mapError(err, nil)
}

// GetByID retrieves a session by ID.
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*domain.TillSession, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM till_sessions WHERE id = ?`, id)
	s, err := scanSession(row)
	if err != nil {
		return nil, mapError(err, domain.ErrSessionNotFound)
	}
	return s, nil
}

// GetOpenByPointOfSale retrieves the open session of a point of sale.
func (r *SessionRepository) GetOpenByPointOfSale(ctx context.Context, pointOfSaleID string) (*domain.TillSession, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM till_sessions WHERE point_of_sale_id = ? AND state = 'OPEN'`,
		pointOfSaleID)
	s, err := scanSession(row)
	if err != nil {
		return nil, mapError(err, domain.ErrSessionNotFound)
	}
	return s, nil
}

// Update writes the mutable fields of s if the stored version is still
// expectedVersion.
func (r *SessionRepository) Update(ctx context.Context, tx usecase.Transaction, s *domain.TillSession, expectedVersion int64) error {
	sqlTx, err := sqlTx(tx)
	if err != nil {
		return err
	}

	res, err := sqlTx.ExecContext(ctx,
		`UPDATE till_sessions SET
		   state = ?,
		   cumulative_cash_sales = ?,
		   cumulative_card_sales = ?,
		   cumulative_online_sales = ?,
		   cumulative_cash_expenses = ?,
		   expected_cash = ?,
		   counted_cash = ?,
		   discrepancy = ?,
		   closed_by = ?,
		   closed_at = ?,
		   updated_at = ?,
		   version = ?
		 WHERE id = ? AND version = ?`,
		string(s.State),
		s.CumulativeCashSales.String(),
		s.CumulativeCardSales.String(),
		s.CumulativeOnlineSales.String(),
		s.CumulativeCashExpenses.String(),
		s.ExpectedCash.String(),
		nullDecimal(s.CountedCash),
		nullDecimal(s.Discrepancy),
		nullString(s.ClosedBy),
		nullMillis(s.ClosedAt),
		toMillis(s.UpdatedAt),
		s.Version,
		s.ID,
		expectedVersion,
	)
	if err != nil {
		return mapError(err, nil)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return mapError(err, nil)
	}
	if affected == 0 {
		return fmt.Errorf("%w: session %s is no longer at version %d", domain.ErrStaleSnapshot, s.ID, expectedVersion)
	}
	return nil
}

// List lists sessions matching filter, most recently opened first.
func (r *SessionRepository) List(ctx context.Context, filter domain.SessionFilter) ([]*domain.TillSession, error) {
	var (
		where []string
		args  []any
	)
	if filter.PointOfSaleID != "" {
		where = append(where, "point_of_sale_id = ?")
		args = append(args, filter.PointOfSaleID)
	}
	if filter.CompanyID != "" {
		where = append(where, "company_id = ?")
		args = append(args, filter.CompanyID)
	}
	if filter.State != "" {
		where = append(where, "state = ?")
		args = append(args, string(filter.State))
	}
	if filter.From != nil {
		where = append(where, "opened_at >= ?")
		args = append(args, toMillis(*filter.From))
	}
	if filter.To != nil {
		where = append(where, "opened_at < ?")
		args = append(args, toMillis(*filter.To))
	}

	query := `SELECT ` + sessionColumns + ` FROM till_sessions`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY opened_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, nil)
	}
	defer rows.Close()

	var sessions []*domain.TillSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, mapError(err, nil)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, nil)
	}
	return sessions, nil
}

// all returns every session, oldest first.
func (r *SessionRepository) all(ctx context.Context) ([]*domain.TillSession, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+sessionColumns+` FROM till_sessions ORDER BY opened_at, id`)
	if err != nil {
		return nil, mapError(err, nil)
	}
	defer rows.Close()

	var sessions []*domain.TillSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, mapError(err, nil)
		}
		sessions = append(sessions, s)
	}
	return sessions, mapError(rows.Err(), nil)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*domain.TillSession, error) {
	var (
		s                                  domain.TillSession
		state                              string
		openingFloat, cashSales, cardSales string
		onlineSales, cashExpenses          string
		expectedCash                       string
		countedCash, discrepancy, closedBy sql.NullString
		openedAt, updatedAt                int64
		closedAt                           sql.NullInt64
	)
	err := row.Scan(
		&s.ID,
		&s.PointOfSaleID,
		&s.CompanyID,
		&s.ShiftLabel,
		&state,
		&openingFloat,
		&cashSales,
		&cardSales,
		&onlineSales,
		&cashExpenses,
		&expectedCash,
		&countedCash,
		&discrepancy,
		&s.OpenedBy,
		&closedBy,
		&openedAt,
		&closedAt,
		&updatedAt,
		&s.Version,
	)
	if err != nil {
		return nil, err
	}

	s.State = domain.SessionState(state)
	for _, f := range []struct {
		raw string
		dst *decimal.Decimal
	}{
		{openingFloat, &s.OpeningFloat},
		{cashSales, &s.CumulativeCashSales},
		{cardSales, &s.CumulativeCardSales},
		{onlineSales, &s.CumulativeOnlineSales},
		{cashExpenses, &s.CumulativeCashExpenses},
		{expectedCash, &s.ExpectedCash},
	} {
		if *f.dst, err = decimal.NewFromString(f.raw); err != nil {
			return nil, fmt.Errorf("session %s: %w", s.ID, err)
		}
	}
	if s.CountedCash, err = decimalPtr(countedCash); err != nil {
		return nil, fmt.Errorf("session %s: %w", s.ID, err)
	}
	if s.Discrepancy, err = decimalPtr(discrepancy); err != nil {
		return nil, fmt.Errorf("session %s: %w", s.ID, err)
	}
	s.ClosedBy = closedBy.String
	s.OpenedAt = fromMillis(openedAt)
	s.ClosedAt = millisPtr(closedAt)
	s.UpdatedAt = fromMillis(updatedAt)
	return &s, nil
}

func nullDecimal(d *decimal.Decimal) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func decimalPtr(v sql.NullString) (*decimal.Decimal, error) {
	if !v.Valid {
		return nil, nil
	}
	d, err := decimal.NewFromString(v.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
