package bonus

import (
	"context"
	"fmt"
	"time"

	"github.com/collable/pointage-backend/internal/domain/agent"
	"github.com/collable/pointage-backend/internal/domain/bonus"
	"github.com/go-chi/jwtauth/v5"
)

type BonusServiceImpl struct {
	bonusRepo bonus.BonusRepository
	agentRepo agent.AgentRepository
}

func NewBonusService(bonusRepo bonus.BonusRepository, agentRepo agent.AgentRepository) bonus.Service {
	return &BonusServiceImpl{
		bonusRepo: bonusRepo,
		agentRepo: agentRepo,
	}
}

// Create implements bonus.Service.
func (s *BonusServiceImpl) Create(ctx context.Context, req bonus.CreateBonusRequest) (bonus.BonusResponse, error) {
	if err := req.Validate(); err != nil {
		return bonus.BonusResponse{}, err
	}

	if _, err := s.agentRepo.GetByID(ctx, req.AgentID); err != nil {
		return bonus.BonusResponse{}, err
	}

	created, err := s.bonusRepo.Create(ctx, bonus.Bonus{
		AgentID:   req.AgentID,
		Amount:    req.Amount,
		Reason:    req.Reason,
		Month:     req.Month,
		Year:      req.Year,
		CreatedBy: claimsAgentID(ctx),
	})
	if err != nil {
		return bonus.BonusResponse{}, fmt.Errorf("failed to create bonus: %w", err)
	}
	return toResponse(created), nil
}

// List implements bonus.Service.
func (s *BonusServiceImpl) List(ctx context.Context, filter bonus.ListFilter) ([]bonus.BonusResponse, error) {
	bonuses, err := s.bonusRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list bonuses: %w", err)
	}

	responses := make([]bonus.BonusResponse, 0, len(bonuses))
	for _, b := range bonuses {
		responses = append(responses, toResponse(b))
	}
	return responses, nil
}

// Update implements bonus.Service.
func (s *BonusServiceImpl) Update(ctx context.Context, req bonus.UpdateBonusRequest) (bonus.BonusResponse, error) {
	if err := req.Validate(); err != nil {
		return bonus.BonusResponse{}, err
	}

	if _, err := s.bonusRepo.GetByID(ctx, req.ID); err != nil {
		return bonus.BonusResponse{}, err
	}

	if err := s.bonusRepo.Update(ctx, req); err != nil {
		return bonus.BonusResponse{}, fmt.Errorf("failed to update bonus: %w", err)
	}

	updated, err := s.bonusRepo.GetByID(ctx, req.ID)
	if err != nil {
		return bonus.BonusResponse{}, err
	}
	return toResponse(updated), nil
}

// Delete implements bonus.Service.
func (s *BonusServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.bonusRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.bonusRepo.Delete(ctx, id)
}

func claimsAgentID(ctx context.Context) *string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil
	}
	if id, ok := claims["agent_id"].(string); ok && id != "" {
		return &id
	}
	return nil
}

func toResponse(b bonus.Bonus) bonus.BonusResponse {
	return bonus.BonusResponse{
		ID:         b.ID,
		AgentID:    b.AgentID,
		Amount:     b.Amount,
		Reason:     b.Reason,
		Month:      b.Month,
		Year:       b.Year,
		AgentName:  b.AgentName,
		AgentEmail: b.AgentEmail,
		CreatedAt:  b.CreatedAt.Format(time.RFC3339),
	}
}
