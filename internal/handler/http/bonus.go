package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/collable/pointage-backend/internal/domain/bonus"
	"github.com/collable/pointage-backend/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type BonusHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type BonusHandlerImpl struct {
	bonusService bonus.Service
}

func NewBonusHandler(bonusService bonus.Service) BonusHandler {
	return &BonusHandlerImpl{bonusService: bonusService}
}

// Create implements BonusHandler.
func (h *BonusHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq bonus.CreateBonusRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create bonus decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.bonusService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Create bonus service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Bonus created", created)
}

// List implements BonusHandler.
func (h *BonusHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter bonus.ListFilter
	if raw := r.URL.Query().Get("agent_id"); raw != "" {
		filter.AgentID = &raw
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "month must be a number", nil)
			return
		}
		filter.Month = &month
	}
	if raw := r.URL.Query().Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "year must be a number", nil)
			return
		}
		filter.Year = &year
	}

	bonuses, err := h.bonusService.List(r.Context(), filter)
	if err != nil {
		slog.Error("List bonuses service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, bonuses)
}

// Update implements BonusHandler.
func (h *BonusHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq bonus.UpdateBonusRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update bonus decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "bonusID")

	updated, err := h.bonusService.Update(r.Context(), updateReq)
	if err != nil {
		slog.Error("Update bonus service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bonus updated", updated)
}

// Delete implements BonusHandler.
func (h *BonusHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "bonusID")

	if err := h.bonusService.Delete(r.Context(), id); err != nil {
		slog.Error("Delete bonus service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bonus deleted", nil)
}
