package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/collable/pointage-backend/internal/domain/agent"
	"golang.org/x/crypto/bcrypt"
)

type AgentServiceImpl struct {
	agentRepo agent.AgentRepository
}

func NewAgentService(agentRepo agent.AgentRepository) agent.Service {
	return &AgentServiceImpl{agentRepo: agentRepo}
}

// Create implements agent.Service.
func (s *AgentServiceImpl) Create(ctx context.Context, req agent.CreateAgentRequest) (agent.AgentResponse, error) {
	if err := req.Validate(); err != nil {
		return agent.AgentResponse{}, err
	}

	if _, err := s.agentRepo.GetByEmail(ctx, req.Email); err == nil {
		return agent.AgentResponse{}, agent.ErrEmailExists
	} else if !errors.Is(err, agent.ErrAgentNotFound) {
		return agent.AgentResponse{}, fmt.Errorf("failed to check email uniqueness: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return agent.AgentResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.agentRepo.Create(ctx, agent.Agent{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         agent.Role(req.Role),
		Active:       true,
	})
	if err != nil {
		return agent.AgentResponse{}, fmt.Errorf("failed to create agent: %w", err)
	}
	return toResponse(created), nil
}

// Get implements agent.Service.
func (s *AgentServiceImpl) Get(ctx context.Context, id string) (agent.AgentResponse, error) {
	ag, err := s.agentRepo.GetByID(ctx, id)
	if err != nil {
		return agent.AgentResponse{}, err
	}
	return toResponse(ag), nil
}

// List implements agent.Service.
func (s *AgentServiceImpl) List(ctx context.Context) (agent.ListAgentsResponse, error) {
	agents, err := s.agentRepo.List(ctx)
	if err != nil {
		return agent.ListAgentsResponse{}, fmt.Errorf("failed to list agents: %w", err)
	}

	responses := make([]agent.AgentResponse, 0, len(agents))
	for _, ag := range agents {
		responses = append(responses, toResponse(ag))
	}
	return agent.ListAgentsResponse{Agents: responses, Total: len(responses)}, nil
}

// Update implements agent.Service.
func (s *AgentServiceImpl) Update(ctx context.Context, req agent.UpdateAgentRequest) (agent.AgentResponse, error) {
	if err := req.Validate(); err != nil {
		return agent.AgentResponse{}, err
	}

	existing, err := s.agentRepo.GetByID(ctx, req.ID)
	if err != nil {
		return agent.AgentResponse{}, err
	}

	if req.Email != nil && *req.Email != existing.Email {
		if _, err := s.agentRepo.GetByEmail(ctx, *req.Email); err == nil {
			return agent.AgentResponse{}, agent.ErrEmailExists
		} else if !errors.Is(err, agent.ErrAgentNotFound) {
			return agent.AgentResponse{}, fmt.Errorf("failed to check email uniqueness: %w", err)
		}
	}

	if err := s.agentRepo.Update(ctx, req); err != nil {
		return agent.AgentResponse{}, fmt.Errorf("failed to update agent: %w", err)
	}

	updated, err := s.agentRepo.GetByID(ctx, req.ID)
	if err != nil {
		return agent.AgentResponse{}, err
	}
	return toResponse(updated), nil
}

// Deactivate implements agent.Service.
func (s *AgentServiceImpl) Deactivate(ctx context.Context, id string) error {
	if _, err := s.agentRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.agentRepo.Deactivate(ctx, id)
}

func toResponse(ag agent.Agent) agent.AgentResponse {
	return agent.AgentResponse{
		ID:        ag.ID,
		Name:      ag.Name,
		Email:     ag.Email,
		Role:      string(ag.Role),
		Active:    ag.Active,
		CreatedAt: ag.CreatedAt.Format(time.RFC3339),
	}
}
