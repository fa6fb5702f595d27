package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/collable/pointage-backend/internal/domain/agent"
	"github.com/collable/pointage-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type agentRepositoryImpl struct {
	db *database.DB
}

func NewAgentRepository(db *database.DB) agent.AgentRepository {
	return &agentRepositoryImpl{db: db}
}

const agentColumns = `id, name, email, password_hash, role, active, created_at, updated_at`

func scanAgent(row pgx.Row) (agent.Agent, error) {
	var a agent.Agent
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Role, &a.Active, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// Create implements agent.AgentRepository.
func (r *agentRepositoryImpl) Create(ctx context.Context, a agent.Agent) (agent.Agent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO agents (name, email, password_hash, role, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + agentColumns

	created, err := scanAgent(q.QueryRow(ctx, query, a.Name, a.Email, a.PasswordHash, a.Role, a.Active))
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return agent.Agent{}, agent.ErrEmailExists
		}
		return agent.Agent{}, fmt.Errorf("failed to create agent: %w", err)
	}
	return created, nil
}

// GetByID implements agent.AgentRepository.
func (r *agentRepositoryImpl) GetByID(ctx context.Context, id string) (agent.Agent, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + agentColumns + ` FROM agents WHERE id = $1`

	a, err := scanAgent(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return agent.Agent{}, agent.ErrAgentNotFound
		}
		return agent.Agent{}, fmt.Errorf("failed to get agent by id: %w", err)
	}
	return a, nil
}

// GetByEmail implements agent.AgentRepository.
func (r *agentRepositoryImpl) GetByEmail(ctx context.Context, email string) (agent.Agent, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + agentColumns + ` FROM agents WHERE LOWER(email) = LOWER($1)`

	a, err := scanAgent(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return agent.Agent{}, agent.ErrAgentNotFound
		}
		return agent.Agent{}, fmt.Errorf("failed to get agent by email: %w", err)
	}
	return a, nil
}

// List implements agent.AgentRepository.
func (r *agentRepositoryImpl) List(ctx context.Context) ([]agent.Agent, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + agentColumns + ` FROM agents ORDER BY name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}
	defer rows.Close()

	var agents []agent.Agent
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return agents, nil
}

// Update implements agent.AgentRepository.
func (r *agentRepositoryImpl) Update(ctx context.Context, req agent.UpdateAgentRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE agents
		SET name = COALESCE($1, name),
			email = COALESCE($2, email),
			role = COALESCE($3, role),
			updated_at = NOW()
		WHERE id = $4
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, req.Name, req.Email, req.Role, req.ID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return agent.ErrAgentNotFound
		}
		return fmt.Errorf("failed to update agent: %w", err)
	}
	return nil
}

// UpdatePassword implements agent.AgentRepository.
func (r *agentRepositoryImpl) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE agents
		SET password_hash = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, passwordHash, id).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return agent.ErrAgentNotFound
		}
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// Deactivate implements agent.AgentRepository.
func (r *agentRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE agents
		SET active = FALSE, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return agent.ErrAgentNotFound
		}
		return fmt.Errorf("failed to deactivate agent: %w", err)
	}
	return nil
}
