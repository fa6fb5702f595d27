package bonus

import "context"

// BonusRepository defines data access for bonuses.
type BonusRepository interface {
	Create(ctx context.Context, b Bonus) (Bonus, error)
	GetByID(ctx context.Context, id string) (Bonus, error)
	List(ctx context.Context, filter ListFilter) ([]Bonus, error)

	// GetForPeriod returns an agent's bonuses for one pay period.
	GetForPeriod(ctx context.Context, agentID string, month, year int) ([]Bonus, error)

	Update(ctx context.Context, req UpdateBonusRequest) error
	Delete(ctx context.Context, id string) error
}

// Service defines admin-facing bonus management.
type Service interface {
	Create(ctx context.Context, req CreateBonusRequest) (BonusResponse, error)
	List(ctx context.Context, filter ListFilter) ([]BonusResponse, error)
	Update(ctx context.Context, req UpdateBonusRequest) (BonusResponse, error)
	Delete(ctx context.Context, id string) error
}
