package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/iho/gotill/internal/domain"
	"github.com/iho/gotill/internal/infrastructure/metrics"
)

// LedgerUseCase serves operation history and ledger verification.
type LedgerUseCase struct {
	sessionRepo   SessionRepository
	operationRepo OperationRepository
	ledgerRepo    LedgerRepository
	gate          PermissionGate
	metrics       *metrics.Metrics
	logger        zerolog.Logger
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	sessionRepo SessionRepository,
	operationRepo OperationRepository,
	ledgerRepo LedgerRepository,
	gate PermissionGate,
	metrics *metrics.Metrics,
	logger zerolog.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		sessionRepo:   sessionRepo,
		operationRepo: operationRepo,
		ledgerRepo:    ledgerRepo,
		gate:          gate,
		metrics:       metrics,
		logger:        logger,
	}
}

// ListSessionOperations returns a session's ledger in insertion order.
func (uc *LedgerUseCase) ListSessionOperations(ctx context.Context, sessionID string) ([]*domain.Operation, error) {
	if _, err := uc.sessionRepo.GetByID(ctx, sessionID); err != nil {
		return nil, err
	}
	return uc.operationRepo.ListBySession(ctx, sessionID)
}

// ListPointOfSaleOperations returns entries across every session of a point
// of sale, most recent first.
func (uc *LedgerUseCase) ListPointOfSaleOperations(ctx context.Context, actor domain.Actor, filter domain.OperationFilter) ([]*domain.Operation, error) {
	if err := authorize(ctx, uc.gate, actor, domain.CapabilityViewShiftReports); err != nil {
		return nil, err
	}
	if err := domain.ValidateRequired("pointOfSaleId", filter.PointOfSaleID); err != nil {
		return nil, err
	}
	filter.Limit, filter.Offset, _ = domain.ValidatePagination(filter.Limit, filter.Offset)
	return uc.operationRepo.ListByPointOfSale(ctx, filter)
}

// VerifySession replays a session's ledger against its snapshot.
func (uc *LedgerUseCase) VerifySession(ctx context.Context, sessionID string) (*domain.LedgerReplay, error) {
	session, err := uc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	ops, err := uc.operationRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	replay, err := domain.VerifyLedger(session, ops)
	if err != nil {
		uc.reportInconsistency(err, sessionID)
		return replay, err
	}
	return replay, nil
}

// CheckConsistency verifies every session against its ledger. It returns
// the offending session IDs along with ErrLedgerInconsistency.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) ([]string, error) {
	ids, err := uc.ledgerRepo.FindInconsistentSessions(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	err = fmt.Errorf("%w: %d sessions", domain.ErrLedgerInconsistency, len(ids))
	for _, id := range ids {
		uc.reportInconsistency(err, id)
	}
	return ids, err
}

func (uc *LedgerUseCase) reportInconsistency(err error, sessionID string) {
	uc.logger.Error().Err(err).
		Str("session_id", sessionID).
		Msg("ledger inconsistency detected, manual reconciliation required")
	if uc.metrics != nil {
		uc.metrics.LedgerInconsistencies.Inc()
	}
}
