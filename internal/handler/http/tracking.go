package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/collable/pointage-backend/internal/domain/attendance"
	"github.com/collable/pointage-backend/internal/domain/tracking"
	"github.com/collable/pointage-backend/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type TrackingHandler interface {
	MyTracking(w http.ResponseWriter, r *http.Request)
	AgentTracking(w http.ResponseWriter, r *http.Request)
}

type TrackingHandlerImpl struct {
	trackingService tracking.Service
}

func NewTrackingHandler(trackingService tracking.Service) TrackingHandler {
	return &TrackingHandlerImpl{trackingService: trackingService}
}

// MyTracking implements TrackingHandler.
func (h *TrackingHandlerImpl) MyTracking(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.trackingService.ComputeMine(r.Context(), rangeRequest(r))
	if err != nil {
		slog.Error("MyTracking service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, summaries)
}

// rangeRequest defaults to the current week, Monday through Sunday.
func rangeRequest(r *http.Request) tracking.RangeRequest {
	req := tracking.RangeRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}
	if req.StartDate == "" && req.EndDate == "" {
		today := time.Now().In(attendance.Timezone)
		offset := (int(today.Weekday()) + 6) % 7
		monday := today.AddDate(0, 0, -offset)
		req.StartDate = monday.Format("2006-01-02")
		req.EndDate = monday.AddDate(0, 0, 6).Format("2006-01-02")
	}
	return req
}

// AgentTracking implements TrackingHandler.
func (h *TrackingHandlerImpl) AgentTracking(w http.ResponseWriter, r *http.Request) {
	req := rangeRequest(r)
	req.AgentID = chi.URLParam(r, "agentID")

	summaries, err := h.trackingService.ComputeAgent(r.Context(), req)
	if err != nil {
		slog.Error("AgentTracking service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, summaries)
}
