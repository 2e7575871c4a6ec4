package handler

import (
	"net/http"

	"github.com/iho/gotill/internal/adapter/http/dto"
	"github.com/iho/gotill/internal/domain"
)

// ListDenominations returns the face values accepted in drawer counts.
func ListDenominations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.DenominationsFromDomain(domain.Denominations()))
}
