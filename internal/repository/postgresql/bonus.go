package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/collable/pointage-backend/internal/domain/bonus"
	"github.com/collable/pointage-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type bonusRepositoryImpl struct {
	db *database.DB
}

func NewBonusRepository(db *database.DB) bonus.BonusRepository {
	return &bonusRepositoryImpl{db: db}
}

const bonusColumns = `b.id, b.agent_id, b.amount, b.reason, b.month, b.year, b.created_by, b.created_at,
	a.name, a.email`

func scanBonus(row pgx.Row) (bonus.Bonus, error) {
	var b bonus.Bonus
	err := row.Scan(
		&b.ID, &b.AgentID, &b.Amount, &b.Reason, &b.Month, &b.Year, &b.CreatedBy, &b.CreatedAt,
		&b.AgentName, &b.AgentEmail,
	)
	return b, err
}

// Create implements bonus.BonusRepository.
func (r *bonusRepositoryImpl) Create(ctx context.Context, b bonus.Bonus) (bonus.Bonus, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH inserted AS (
			INSERT INTO bonuses (agent_id, amount, reason, month, year, created_by)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, agent_id, amount, reason, month, year, created_by, created_at
		)
		SELECT ` + bonusColumns + `
		FROM inserted b
		JOIN agents a ON a.id = b.agent_id
	`

	created, err := scanBonus(q.QueryRow(ctx, query, b.AgentID, b.Amount, b.Reason, b.Month, b.Year, b.CreatedBy))
	if err != nil {
		return bonus.Bonus{}, fmt.Errorf("failed to create bonus: %w", err)
	}
	return created, nil
}

// GetByID implements bonus.BonusRepository.
func (r *bonusRepositoryImpl) GetByID(ctx context.Context, id string) (bonus.Bonus, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + bonusColumns + `
		FROM bonuses b
		JOIN agents a ON a.id = b.agent_id
		WHERE b.id = $1
	`

	b, err := scanBonus(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return bonus.Bonus{}, bonus.ErrBonusNotFound
		}
		return bonus.Bonus{}, fmt.Errorf("failed to get bonus: %w", err)
	}
	return b, nil
}

// List implements bonus.BonusRepository.
func (r *bonusRepositoryImpl) List(ctx context.Context, filter bonus.ListFilter) ([]bonus.Bonus, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + bonusColumns + `
		FROM bonuses b
		JOIN agents a ON a.id = b.agent_id
		WHERE ($1::uuid IS NULL OR b.agent_id = $1)
		  AND ($2::int IS NULL OR b.month = $2)
		  AND ($3::int IS NULL OR b.year = $3)
		ORDER BY b.year DESC, b.month DESC, a.name
	`

	rows, err := q.Query(ctx, query, filter.AgentID, filter.Month, filter.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to list bonuses: %w", err)
	}
	defer rows.Close()

	var bonuses []bonus.Bonus
	for rows.Next() {
		b, err := scanBonus(rows)
		if err != nil {
			return nil, err
		}
		bonuses = append(bonuses, b)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return bonuses, nil
}

// GetForPeriod implements bonus.BonusRepository.
func (r *bonusRepositoryImpl) GetForPeriod(ctx context.Context, agentID string, month, year int) ([]bonus.Bonus, error) {
	filter := bonus.ListFilter{AgentID: &agentID, Month: &month, Year: &year}
	return r.List(ctx, filter)
}

// Update implements bonus.BonusRepository.
func (r *bonusRepositoryImpl) Update(ctx context.Context, req bonus.UpdateBonusRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE bonuses
		SET amount = COALESCE($1, amount),
			reason = COALESCE($2, reason)
		WHERE id = $3
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, req.Amount, req.Reason, req.ID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return bonus.ErrBonusNotFound
		}
		return fmt.Errorf("failed to update bonus: %w", err)
	}
	return nil
}

// Delete implements bonus.BonusRepository.
func (r *bonusRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM bonuses WHERE id = $1 RETURNING id`

	var deletedID string
	err := q.QueryRow(ctx, query, id).Scan(&deletedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return bonus.ErrBonusNotFound
		}
		return fmt.Errorf("failed to delete bonus: %w", err)
	}
	return nil
}
