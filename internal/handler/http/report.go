package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/collable/pointage-backend/internal/domain/report"
	"github.com/collable/pointage-backend/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	Daily(w http.ResponseWriter, r *http.Request)
	ExportPayroll(w http.ResponseWriter, r *http.Request)
	ExportTracking(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.Service
}

func NewReportHandler(reportService report.Service) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

// Daily implements ReportHandler.
func (h *ReportHandlerImpl) Daily(w http.ResponseWriter, r *http.Request) {
	daily, err := h.reportService.Daily(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		slog.Error("Daily report service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, daily)
}

// ExportPayroll implements ReportHandler.
func (h *ReportHandlerImpl) ExportPayroll(w http.ResponseWriter, r *http.Request) {
	export, err := h.reportService.ExportPayrollXLSX(r.Context(), periodRequest(r))
	if err != nil {
		slog.Error("Export payroll service error", "error", err)
		response.HandleError(w, err)
		return
	}

	writeExport(w, export)
}

// ExportTracking implements ReportHandler.
func (h *ReportHandlerImpl) ExportTracking(w http.ResponseWriter, r *http.Request) {
	req := rangeRequest(r)
	req.AgentID = chi.URLParam(r, "agentID")

	export, err := h.reportService.ExportTrackingCSV(r.Context(), req)
	if err != nil {
		slog.Error("Export tracking service error", "error", err)
		response.HandleError(w, err)
		return
	}

	writeExport(w, export)
}

func writeExport(w http.ResponseWriter, export report.Export) {
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(export.Data)
}
