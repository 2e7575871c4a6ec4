package usecase

import (
	"context"
	"errors"

	"github.com/cenkalti/backoff/v4"

	"github.com/iho/gotill/internal/domain"
)

// ConflictRetrier re-runs an operation that lost an optimistic write,
// without any delay between attempts. It suits single-writer stores where
// waiting does not make a conflict less likely.
type ConflictRetrier struct {
	maxRetries uint64
}

// NewConflictRetrier allows maxRetries extra attempts after a stale snapshot.
func NewConflictRetrier(maxRetries int) *ConflictRetrier {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &ConflictRetrier{maxRetries: uint64(maxRetries)}
}

// Retry implements Retrier.
func (r *ConflictRetrier) Retry(ctx context.Context, operation func() error) error {
	policy := backoff.WithContext(backoff.WithMaxRetries(&backoff.ZeroBackOff{}, r.maxRetries), ctx)

	return backoff.Retry(func() error {
		err := operation()
		if err != nil && !errors.Is(err, domain.ErrStaleSnapshot) {
			return backoff.Permanent(err)
		}
		return err
	}, policy)
}
