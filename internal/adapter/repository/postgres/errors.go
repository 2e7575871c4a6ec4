package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iho/gotill/internal/domain"
)

const pgErrUniqueViolation = "23505"

// Constraint names from the migrations.
const (
	constraintOneOpenPerPOS        = "till_sessions_one_open_per_pos"
	constraintOperationSequence    = "till_operations_session_sequence_key"
	constraintOperationIdempotency = "till_operations_session_idempotency_key"
)

// mapError translates driver errors into domain errors. notFound is
// returned for pgx.ErrNoRows.
func mapError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) && notFound != nil {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
		switch pgErr.ConstraintName {
		case constraintOneOpenPerPOS:
			return domain.ErrAlreadyOpen
		case constraintOperationSequence:
			return fmt.Errorf("%w: sequence already taken", domain.ErrStaleSnapshot)
		case constraintOperationIdempotency:
			return domain.ErrDuplicateOperation
		}
	}

	// Serialization failures stay visible to the retrier.
	if isRetryableError(err) {
		return err
	}

	return fmt.Errorf("%w: %w", domain.ErrTransientStorage, err)
}
