package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/collable/pointage-backend/internal/domain/attendance"
	"github.com/collable/pointage-backend/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	Scan(w http.ResponseWriter, r *http.Request)
	MyScans(w http.ResponseWriter, r *http.Request)
	AgentScans(w http.ResponseWriter, r *http.Request)
	CancelEvent(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// Scan implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Scan(w http.ResponseWriter, r *http.Request) {
	var scanReq attendance.ScanRequest

	if err := json.NewDecoder(r.Body).Decode(&scanReq); err != nil {
		slog.Error("Scan decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	scanResp, err := h.attendanceService.Scan(r.Context(), scanReq)
	if err != nil {
		slog.Error("Scan service error", "error", err)
		response.HandleError(w, err)
		return
	}

	if scanResp.Status == "confirmation_required" {
		response.SuccessWithMessage(w, scanResp.Message, scanResp)
		return
	}

	slog.Info("Scan recorded", "session", scanResp.Session, "kind", scanResp.Kind)
	response.Created(w, scanResp.Message, scanResp)
}

// MyScans implements AttendanceHandler.
func (h *AttendanceHandlerImpl) MyScans(w http.ResponseWriter, r *http.Request) {
	history, err := h.attendanceService.GetMyScans(r.Context(), historyFilter(r))
	if err != nil {
		slog.Error("MyScans service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, history)
}

// AgentScans implements AttendanceHandler.
func (h *AttendanceHandlerImpl) AgentScans(w http.ResponseWriter, r *http.Request) {
	filter := historyFilter(r)
	filter.AgentID = chi.URLParam(r, "agentID")

	history, err := h.attendanceService.GetAgentScans(r.Context(), filter)
	if err != nil {
		slog.Error("AgentScans service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, history)
}

// CancelEvent implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CancelEvent(w http.ResponseWriter, r *http.Request) {
	var cancelReq attendance.CancelEventRequest

	if err := json.NewDecoder(r.Body).Decode(&cancelReq); err != nil {
		slog.Error("CancelEvent decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	cancelReq.EventID = chi.URLParam(r, "eventID")

	if err := h.attendanceService.CancelEvent(r.Context(), cancelReq); err != nil {
		slog.Error("CancelEvent service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Scan event cancelled", "event_id", cancelReq.EventID)
	response.SuccessWithMessage(w, "Scan event cancelled", nil)
}

func historyFilter(r *http.Request) attendance.HistoryFilter {
	var filter attendance.HistoryFilter
	if start := r.URL.Query().Get("start_date"); start != "" {
		filter.StartDate = &start
	}
	if end := r.URL.Query().Get("end_date"); end != "" {
		filter.EndDate = &end
	}
	return filter
}
