package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/iho/gotill/internal/adapter/http/dto"
	"github.com/iho/gotill/internal/domain"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	ListSessions(ctx context.Context, actor domain.Actor, filter domain.SessionFilter) ([]*domain.TillSession, error)
	ShiftReport(ctx context.Context, actor domain.Actor, sessionID string) (*domain.ShiftReport, error)
	ShiftReports(ctx context.Context, actor domain.Actor, filter domain.SessionFilter) ([]*domain.ShiftReport, error)
}

// ReportExporter renders shift reports as a downloadable workbook.
type ReportExporter interface {
	Write(w io.Writer, reports []*domain.ShiftReport) error
	FileName(pointOfSaleID string, now time.Time) string
}

// ReportHandler serves the shift history view.
type ReportHandler struct {
	reports     ReportService
	exporter    ReportExporter
	contentType string
	now         func() time.Time
}

// NewReportHandler creates a new ReportHandler. exporter may be nil, in
// which case exports answer 501.
func NewReportHandler(reports ReportService, exporter ReportExporter, contentType string) *ReportHandler {
	return &ReportHandler{
		reports:     reports,
		exporter:    exporter,
		contentType: contentType,
		now:         time.Now,
	}
}

// ListSessions lists till sessions, most recent first.
func (h *ReportHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	actor, filter, ok := h.sessionFilter(w, r)
	if !ok {
		return
	}
	filter.PointOfSaleID = r.URL.Query().Get("point_of_sale_id")

	sessions, err := h.reports.ListSessions(r.Context(), actor, filter)
	if err != nil {
		writeDomainError(w, "failed to list tills", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListSessionsResponse{
		Sessions: dto.SessionsFromDomain(sessions),
		Total:    int64(len(sessions)),
	})
}

// ShiftReport summarizes one session.
func (h *ReportHandler) ShiftReport(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeDomainError(w, "failed to build report", err)
		return
	}

	report, err := h.reports.ShiftReport(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to build report", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ShiftReportFromDomain(report))
}

// Export streams the shift history of a point of sale as a workbook.
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	if h.exporter == nil {
		writeError(w, http.StatusNotImplemented, "export not configured", "")
		return
	}
	actor, filter, ok := h.sessionFilter(w, r)
	if !ok {
		return
	}
	filter.PointOfSaleID = chi.URLParam(r, "posId")

	reports, err := h.reports.ShiftReports(r.Context(), actor, filter)
	if err != nil {
		writeDomainError(w, "failed to export shifts", err)
		return
	}

	w.Header().Set("Content-Type", h.contentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", h.exporter.FileName(filter.PointOfSaleID, h.now())))
	w.WriteHeader(http.StatusOK)
	if err := h.exporter.Write(w, reports); err != nil {
		// Headers are already sent.
		log.Error().Err(err).Str("point_of_sale_id", filter.PointOfSaleID).Msg("failed to write shift export")
	}
}

func (h *ReportHandler) sessionFilter(w http.ResponseWriter, r *http.Request) (domain.Actor, domain.SessionFilter, bool) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeDomainError(w, "failed to list tills", err)
		return domain.Actor{}, domain.SessionFilter{}, false
	}
	from, to, err := parseRange(r)
	if err != nil {
		writeDomainError(w, "invalid filter", err)
		return domain.Actor{}, domain.SessionFilter{}, false
	}

	q := r.URL.Query()
	return actor, domain.SessionFilter{
		CompanyID: q.Get("company_id"),
		State:     domain.SessionState(q.Get("state")),
		From:      from,
		To:        to,
		Limit:     parseIntQuery(r, "limit", 50),
		Offset:    parseIntQuery(r, "offset", 0),
	}, true
}
