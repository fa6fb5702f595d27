package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/collable/pointage-backend/internal/domain/holiday"
	"github.com/collable/pointage-backend/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type HolidayHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Check(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Generate(w http.ResponseWriter, r *http.Request)
	CreateException(w http.ResponseWriter, r *http.Request)
	ListExceptions(w http.ResponseWriter, r *http.Request)
	DeleteException(w http.ResponseWriter, r *http.Request)
}

type HolidayHandlerImpl struct {
	holidayService holiday.Service
}

func NewHolidayHandler(holidayService holiday.Service) HolidayHandler {
	return &HolidayHandlerImpl{holidayService: holidayService}
}

// Create implements HolidayHandler.
func (h *HolidayHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq holiday.CreateHolidayRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create holiday decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.holidayService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Create holiday service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday created", created)
}

// List implements HolidayHandler.
func (h *HolidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var year *int
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "year must be a number", nil)
			return
		}
		year = &parsed
	}

	holidays, err := h.holidayService.List(r.Context(), year)
	if err != nil {
		slog.Error("List holidays service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, holidays)
}

// Check implements HolidayHandler.
func (h *HolidayHandlerImpl) Check(w http.ResponseWriter, r *http.Request) {
	check, err := h.holidayService.Check(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		slog.Error("Check holiday service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, check)
}

// Update implements HolidayHandler.
func (h *HolidayHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq holiday.UpdateHolidayRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update holiday decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "holidayID")

	updated, err := h.holidayService.Update(r.Context(), updateReq)
	if err != nil {
		slog.Error("Update holiday service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday updated", updated)
}

// Delete implements HolidayHandler.
func (h *HolidayHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "holidayID")

	if err := h.holidayService.Delete(r.Context(), id); err != nil {
		slog.Error("Delete holiday service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Holiday deleted", "holiday_id", id)
	response.SuccessWithMessage(w, "Holiday deleted", nil)
}

// Generate implements HolidayHandler.
func (h *HolidayHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		response.BadRequest(w, "year must be a number", nil)
		return
	}

	generated, err := h.holidayService.GenerateYear(r.Context(), year)
	if err != nil {
		slog.Error("Generate holidays service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Legal holidays generated", "year", year, "created", generated.Created, "skipped", generated.Skipped)
	response.Created(w, "Legal holidays generated", generated)
}

// CreateException implements HolidayHandler.
func (h *HolidayHandlerImpl) CreateException(w http.ResponseWriter, r *http.Request) {
	var createReq holiday.CreateExceptionRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create exception decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.holidayService.CreateException(r.Context(), createReq)
	if err != nil {
		slog.Error("Create exception service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday exception created", created)
}

// ListExceptions implements HolidayHandler.
func (h *HolidayHandlerImpl) ListExceptions(w http.ResponseWriter, r *http.Request) {
	var holidayID *string
	if raw := r.URL.Query().Get("holiday_id"); raw != "" {
		holidayID = &raw
	}

	exceptions, err := h.holidayService.ListExceptions(r.Context(), holidayID)
	if err != nil {
		slog.Error("List exceptions service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, exceptions)
}

// DeleteException implements HolidayHandler.
func (h *HolidayHandlerImpl) DeleteException(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "exceptionID")

	if err := h.holidayService.DeleteException(r.Context(), id); err != nil {
		slog.Error("Delete exception service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday exception deleted", nil)
}
