package usecase

import (
	"context"

	"github.com/iho/gotill/internal/domain"
)

// ReportUseCase serves the read-only shift history view.
type ReportUseCase struct {
	sessionRepo   SessionRepository
	operationRepo OperationRepository
	gate          PermissionGate
	policy        domain.DiscrepancyPolicy
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(
	sessionRepo SessionRepository,
	operationRepo OperationRepository,
	gate PermissionGate,
	policy domain.DiscrepancyPolicy,
) *ReportUseCase {
	return &ReportUseCase{
		sessionRepo:   sessionRepo,
		operationRepo: operationRepo,
		gate:          gate,
		policy:        policy,
	}
}

// ListSessions lists sessions matching filter, most recent first.
func (uc *ReportUseCase) ListSessions(ctx context.Context, actor domain.Actor, filter domain.SessionFilter) ([]*domain.TillSession, error) {
	if err := authorize(ctx, uc.gate, actor, domain.CapabilityViewShiftReports); err != nil {
		return nil, err
	}
	if filter.State != "" && !filter.State.IsValid() {
		return nil, domain.NewFieldError("state", domain.ErrInvalidFilter)
	}
	filter.Limit, filter.Offset, _ = domain.ValidatePagination(filter.Limit, filter.Offset)
	return uc.sessionRepo.List(ctx, filter)
}

// ShiftReport summarizes one session.
func (uc *ReportUseCase) ShiftReport(ctx context.Context, actor domain.Actor, sessionID string) (*domain.ShiftReport, error) {
	if err := authorize(ctx, uc.gate, actor, domain.CapabilityViewShiftReports); err != nil {
		return nil, err
	}
	session, err := uc.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return uc.build(ctx, session)
}

// ShiftReports summarizes every session matching filter, for exports.
func (uc *ReportUseCase) ShiftReports(ctx context.Context, actor domain.Actor, filter domain.SessionFilter) ([]*domain.ShiftReport, error) {
	sessions, err := uc.ListSessions(ctx, actor, filter)
	if err != nil {
		return nil, err
	}
	reports := make([]*domain.ShiftReport, 0, len(sessions))
	for _, s := range sessions {
		r, err := uc.build(ctx, s)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

func (uc *ReportUseCase) build(ctx context.Context, session *domain.TillSession) (*domain.ShiftReport, error) {
	ops, err := uc.operationRepo.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	return domain.BuildShiftReport(session, ops, uc.policy), nil
}
