package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	DefaultTransactionTimeout = 10 * time.Second

	// DefaultSessionCacheTTL is how long a committed snapshot stays in the read cache
	DefaultSessionCacheTTL = 5 * time.Minute

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// sessionCachePrefix namespaces snapshot cache keys
	sessionCachePrefix = "till_session:"
)
