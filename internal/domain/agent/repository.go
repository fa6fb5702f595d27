package agent

import "context"

// AgentRepository defines data access for agents.
type AgentRepository interface {
	Create(ctx context.Context, a Agent) (Agent, error)
	GetByID(ctx context.Context, id string) (Agent, error)
	GetByEmail(ctx context.Context, email string) (Agent, error)
	List(ctx context.Context) ([]Agent, error)
	Update(ctx context.Context, req UpdateAgentRequest) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	Deactivate(ctx context.Context, id string) error
}

// Service defines admin-facing agent management.
type Service interface {
	Create(ctx context.Context, req CreateAgentRequest) (AgentResponse, error)
	Get(ctx context.Context, id string) (AgentResponse, error)
	List(ctx context.Context) (ListAgentsResponse, error)
	Update(ctx context.Context, req UpdateAgentRequest) (AgentResponse, error)
	Deactivate(ctx context.Context, id string) error
}
