package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/collable/pointage-backend/internal/domain/apikey"
	"github.com/collable/pointage-backend/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type APIKeyHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
}

type APIKeyHandlerImpl struct {
	apikeyService apikey.Service
}

func NewAPIKeyHandler(apikeyService apikey.Service) APIKeyHandler {
	return &APIKeyHandlerImpl{apikeyService: apikeyService}
}

// Create implements APIKeyHandler.
func (h *APIKeyHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq apikey.CreateKeyRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create api key decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.apikeyService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Create api key service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("API key created", "key_id", created.ID)
	response.Created(w, "API key created", created)
}

// List implements APIKeyHandler.
func (h *APIKeyHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	keys, err := h.apikeyService.List(r.Context())
	if err != nil {
		slog.Error("List api keys service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, keys)
}

// Deactivate implements APIKeyHandler.
func (h *APIKeyHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "keyID")

	if err := h.apikeyService.Deactivate(r.Context(), id); err != nil {
		slog.Error("Deactivate api key service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "API key deactivated", nil)
}
