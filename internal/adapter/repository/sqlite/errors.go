package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/iho/gotill/internal/domain"
)

// Column lists SQLite reports in unique constraint failures.
const (
	uniqueOpenPerPOS        = "till_sessions.point_of_sale_id"
	uniqueOperationSequence = "till_operations.session_id, till_operations.sequence"
	uniqueOperationIdemKey  = "till_operations.session_id, till_operations.idempotency_key"
)

// mapError translates driver errors into domain errors. notFound is
// returned for sql.ErrNoRows.
func mapError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) && notFound != nil {
		return notFound
	}

	if isUniqueViolation(err) {
		msg := err.Error()
		switch {
		case strings.Contains(msg, uniqueOperationSequence):
			return fmt.Errorf("%w: sequence already taken", domain.ErrStaleSnapshot)
		case strings.Contains(msg, uniqueOperationIdemKey):
			return domain.ErrDuplicateOperation
		case strings.Contains(msg, uniqueOpenPerPOS):
			return domain.ErrAlreadyOpen
		}
	}

	return fmt.Errorf("%w: %w", domain.ErrTransientStorage, err)
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
