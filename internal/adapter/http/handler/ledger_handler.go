package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gotill/internal/adapter/http/dto"
	"github.com/iho/gotill/internal/domain"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	ListSessionOperations(ctx context.Context, sessionID string) ([]*domain.Operation, error)
	ListPointOfSaleOperations(ctx context.Context, actor domain.Actor, filter domain.OperationFilter) ([]*domain.Operation, error)
	VerifySession(ctx context.Context, sessionID string) (*domain.LedgerReplay, error)
	CheckConsistency(ctx context.Context) ([]string, error)
}

// LedgerHandler serves operation history and ledger checks.
type LedgerHandler struct {
	ledger LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledger LedgerService) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

// SessionOperations lists a session's ledger in sequence order.
func (h *LedgerHandler) SessionOperations(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing session ID", "")
		return
	}

	ops, err := h.ledger.ListSessionOperations(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to list operations", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.OperationsFromDomain(ops))
}

// PointOfSaleOperations lists every entry of a point of sale, most recent first.
func (h *LedgerHandler) PointOfSaleOperations(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeDomainError(w, "failed to list operations", err)
		return
	}
	from, to, err := parseRange(r)
	if err != nil {
		writeDomainError(w, "invalid filter", err)
		return
	}

	ops, err := h.ledger.ListPointOfSaleOperations(r.Context(), actor, domain.OperationFilter{
		PointOfSaleID: chi.URLParam(r, "posId"),
		From:          from,
		To:            to,
		Limit:         parseIntQuery(r, "limit", 50),
		Offset:        parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, "failed to list operations", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.OperationsFromDomain(ops))
}

// Verify replays a session's ledger against its snapshot. A mismatch is
// reported in the body rather than as a failure status.
func (h *LedgerHandler) Verify(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing session ID", "")
		return
	}

	replay, err := h.ledger.VerifySession(r.Context(), id)
	if err != nil && !errors.Is(err, domain.ErrLedgerInconsistency) {
		writeDomainError(w, "failed to verify ledger", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerReplayFromDomain(id, replay, err))
}

// ConsistencyResponse is the result of a ledger-wide check.
type ConsistencyResponse struct {
	Consistent           bool     `json:"consistent"`
	InconsistentSessions []string `json:"inconsistent_sessions"`
}

// Consistency checks every session against its ledger.
func (h *LedgerHandler) Consistency(w http.ResponseWriter, r *http.Request) {
	ids, err := h.ledger.CheckConsistency(r.Context())
	if err != nil && !errors.Is(err, domain.ErrLedgerInconsistency) {
		writeDomainError(w, "failed to check ledger", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}

	writeJSON(w, http.StatusOK, ConsistencyResponse{
		Consistent:           len(ids) == 0,
		InconsistentSessions: ids,
	})
}
