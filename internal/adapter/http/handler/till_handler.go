package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gotill/internal/adapter/http/dto"
	"github.com/iho/gotill/internal/domain"
	"github.com/iho/gotill/internal/usecase"
)

// TillService defines the behavior needed by TillHandler.
type TillService interface {
	Open(ctx context.Context, input usecase.OpenSessionInput) (*domain.TillSession, error)
	Withdraw(ctx context.Context, input usecase.CashMovementInput) (*domain.TillSession, error)
	InHouseConsumption(ctx context.Context, input usecase.CashMovementInput) (*domain.TillSession, error)
	Refund(ctx context.Context, input usecase.RefundInput) (*domain.TillSession, error)
	Recount(ctx context.Context, input usecase.CountInput) (*domain.TillSession, error)
	Close(ctx context.Context, input usecase.CountInput) (*domain.TillSession, error)
	GetSession(ctx context.Context, id string) (*domain.TillSession, error)
	GetOpenSession(ctx context.Context, pointOfSaleID string) (*domain.TillSession, error)
}

// TillHandler handles till session commands.
type TillHandler struct {
	tills TillService
}

// NewTillHandler creates a new TillHandler.
func NewTillHandler(tills TillService) *TillHandler {
	return &TillHandler{tills: tills}
}

// Open opens a till on a point of sale.
func (h *TillHandler) Open(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeDomainError(w, "failed to open till", err)
		return
	}

	var req dto.OpenTillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(actor, r.Header.Get(IdempotencyKeyHeader))
	if err != nil {
		writeDomainError(w, "invalid request", err)
		return
	}

	session, err := h.tills.Open(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to open till", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.SessionFromDomain(session))
}

// Withdraw records cash taken out of the drawer.
func (h *TillHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.cashMovement(w, r, "failed to record withdrawal", h.tills.Withdraw)
}

// InHouseConsumption records cash spent on in-house consumption.
func (h *TillHandler) InHouseConsumption(w http.ResponseWriter, r *http.Request) {
	h.cashMovement(w, r, "failed to record consumption", h.tills.InHouseConsumption)
}

func (h *TillHandler) cashMovement(
	w http.ResponseWriter,
	r *http.Request,
	failure string,
	apply func(context.Context, usecase.CashMovementInput) (*domain.TillSession, error),
) {
	id, actor, ok := commandTarget(w, r, failure)
	if !ok {
		return
	}

	var req dto.CashMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(id, actor, r.Header.Get(IdempotencyKeyHeader))
	if err != nil {
		writeDomainError(w, "invalid request", err)
		return
	}

	session, err := apply(r.Context(), input)
	if err != nil {
		writeDomainError(w, failure, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SessionFromDomain(session))
}

// Refund records a refund paid on an order.
func (h *TillHandler) Refund(w http.ResponseWriter, r *http.Request) {
	id, actor, ok := commandTarget(w, r, "failed to record refund")
	if !ok {
		return
	}

	var req dto.RefundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(id, actor, r.Header.Get(IdempotencyKeyHeader))
	if err != nil {
		writeDomainError(w, "invalid request", err)
		return
	}

	session, err := h.tills.Refund(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to record refund", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SessionFromDomain(session))
}

// Recount records an intermediate drawer count.
func (h *TillHandler) Recount(w http.ResponseWriter, r *http.Request) {
	h.count(w, r, "failed to recount till", h.tills.Recount)
}

// Close records the final drawer count and closes the till.
func (h *TillHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.count(w, r, "failed to close till", h.tills.Close)
}

func (h *TillHandler) count(
	w http.ResponseWriter,
	r *http.Request,
	failure string,
	apply func(context.Context, usecase.CountInput) (*domain.TillSession, error),
) {
	id, actor, ok := commandTarget(w, r, failure)
	if !ok {
		return
	}

	var req dto.CountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(id, actor, r.Header.Get(IdempotencyKeyHeader))
	if err != nil {
		writeDomainError(w, "invalid request", err)
		return
	}

	session, err := apply(r.Context(), input)
	if err != nil {
		writeDomainError(w, failure, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SessionFromDomain(session))
}

// Get retrieves a till session by ID.
func (h *TillHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing session ID", "")
		return
	}

	session, err := h.tills.GetSession(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to get till", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SessionFromDomain(session))
}

// GetOpen retrieves the open session of a point of sale.
func (h *TillHandler) GetOpen(w http.ResponseWriter, r *http.Request) {
	posID := chi.URLParam(r, "posId")
	if posID == "" {
		writeError(w, http.StatusBadRequest, "missing point of sale ID", "")
		return
	}

	session, err := h.tills.GetOpenSession(r.Context(), posID)
	if err != nil {
		writeDomainError(w, "failed to get open till", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SessionFromDomain(session))
}

// commandTarget resolves the session ID and actor of a command request,
// writing the error response itself when either is missing.
func commandTarget(w http.ResponseWriter, r *http.Request, failure string) (string, domain.Actor, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing session ID", "")
		return "", domain.Actor{}, false
	}
	actor, err := actorFromRequest(r)
	if err != nil {
		writeDomainError(w, failure, err)
		return "", domain.Actor{}, false
	}
	return id, actor, true
}
