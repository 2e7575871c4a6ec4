package sqlite

import (
	"context"
	"errors"

	"github.com/iho/gotill/internal/domain"
)

// LedgerRepository implements usecase.LedgerRepository. SQLite has no exact
// decimal aggregate, so every session is replayed in Go.
type LedgerRepository struct {
	sessions   *SessionRepository
	operations *OperationRepository
}

// FindInconsistentSessions returns sessions whose snapshot disagrees with
// their ledger.
func (r *LedgerRepository) FindInconsistentSessions(ctx context.Context) ([]string, error) {
	sessions, err := r.sessions.all(ctx)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, s := range sessions {
		ops, err := r.operations.ListBySession(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		if _, err := domain.VerifyLedger(s, ops); err != nil {
			if !errors.Is(err, domain.ErrLedgerInconsistency) {
				return nil, err
			}
			ids = append(ids, s.ID)
		}
	}
	return ids, nil
}
