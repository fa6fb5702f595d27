package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/collable/pointage-backend/internal/domain/agent"
	"github.com/collable/pointage-backend/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AgentHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
}

type AgentHandlerImpl struct {
	agentService agent.Service
}

func NewAgentHandler(agentService agent.Service) AgentHandler {
	return &AgentHandlerImpl{agentService: agentService}
}

// Create implements AgentHandler.
func (h *AgentHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq agent.CreateAgentRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create agent decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.agentService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Create agent service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Agent created", "agent_id", created.ID)
	response.Created(w, "Agent created", created)
}

// Get implements AgentHandler.
func (h *AgentHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	ag, err := h.agentService.Get(r.Context(), chi.URLParam(r, "agentID"))
	if err != nil {
		slog.Error("Get agent service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, ag)
}

// List implements AgentHandler.
func (h *AgentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	agents, err := h.agentService.List(r.Context())
	if err != nil {
		slog.Error("List agents service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, agents)
}

// Update implements AgentHandler.
func (h *AgentHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq agent.UpdateAgentRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update agent decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "agentID")

	updated, err := h.agentService.Update(r.Context(), updateReq)
	if err != nil {
		slog.Error("Update agent service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Agent updated", updated)
}

// Deactivate implements AgentHandler.
func (h *AgentHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "agentID")

	if err := h.agentService.Deactivate(r.Context(), id); err != nil {
		slog.Error("Deactivate agent service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Agent deactivated", "agent_id", id)
	response.SuccessWithMessage(w, "Agent deactivated", nil)
}
