package usecase

import (
	"context"
	"time"

	"github.com/iho/gotill/internal/domain"
)

// SessionRepository defines data access for till session snapshots.
type SessionRepository interface {
	// Create inserts a new OPEN session. Returns domain.ErrAlreadyOpen when the
	// point of sale already has one.
	Create(ctx context.Context, tx Transaction, session *domain.TillSession) error
	GetByID(ctx context.Context, id string) (*domain.TillSession, error)
	GetOpenByPointOfSale(ctx context.Context, pointOfSaleID string) (*domain.TillSession, error)
	// Update writes session only if the stored version still equals
	// expectedVersion. Returns domain.ErrStaleSnapshot otherwise.
	Update(ctx context.Context, tx Transaction, session *domain.TillSession, expectedVersion int64) error
	List(ctx context.Context, filter domain.SessionFilter) ([]*domain.TillSession, error)
}

// OperationRepository defines data access for the append-only operation ledger.
type OperationRepository interface {
	// Create appends op. Returns domain.ErrStaleSnapshot when the sequence is
	// taken and domain.ErrDuplicateOperation when the idempotency key was
	// already used in the session.
	Create(ctx context.Context, tx Transaction, op *domain.Operation) error
	GetByIdempotencyKey(ctx context.Context, sessionID, key string) (*domain.Operation, error)
	ListBySession(ctx context.Context, sessionID string) ([]*domain.Operation, error)
	ListByPointOfSale(ctx context.Context, filter domain.OperationFilter) ([]*domain.Operation, error)
}

// LedgerRepository defines data access for ledger-wide checks.
type LedgerRepository interface {
	// FindInconsistentSessions returns the IDs of sessions whose expected
	// cash differs from the sum of their ledger deltas.
	FindInconsistentSessions(ctx context.Context) ([]string, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	CreateTx(ctx context.Context, tx Transaction, log *domain.AuditLog) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// PermissionGate answers capability checks for an actor.
type PermissionGate interface {
	HasCapability(ctx context.Context, actor domain.Actor, capability domain.Capability) (bool, error)
}

// SalesAggregator supplies the cumulative sales of a point of sale.
type SalesAggregator interface {
	CumulativeSales(ctx context.Context, pointOfSaleID string) (domain.SalesTotals, error)
}

// Retrier re-runs an operation on conflicts that a fresh attempt can resolve.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// SetVersioned stores value unless the key already holds a higher
	// version. It reports whether value was written.
	SetVersioned(ctx context.Context, key string, value []byte, version int64, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a key whose request failed so the client may retry it.
	Release(ctx context.Context, key string) error
}
