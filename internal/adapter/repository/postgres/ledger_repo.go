package postgres

import (
	"context"

	"github.com/iho/gotill/internal/infrastructure/postgres/generated"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	queries *generated.Queries
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(db generated.DBTX) *LedgerRepository {
	return &LedgerRepository{queries: generated.New(db)}
}

// FindInconsistentSessions returns sessions whose expected cash or version
// disagrees with their ledger.
func (r *LedgerRepository) FindInconsistentSessions(ctx context.Context) ([]string, error) {
	ids, err := r.queries.FindInconsistentTillSessions(ctx)
	if err != nil {
		return nil, mapError(err, nil)
	}
	return ids, nil
}
