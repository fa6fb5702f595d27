package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/collable/pointage-backend/internal/domain/apikey"
	"github.com/collable/pointage-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type apiKeyRepositoryImpl struct {
	db *database.DB
}

func NewAPIKeyRepository(db *database.DB) apikey.APIKeyRepository {
	return &apiKeyRepositoryImpl{db: db}
}

const apiKeyColumns = `id, name, description, key, active, last_used_at, created_at`

func scanAPIKey(row pgx.Row) (apikey.APIKey, error) {
	var k apikey.APIKey
	err := row.Scan(&k.ID, &k.Name, &k.Description, &k.Key, &k.Active, &k.LastUsedAt, &k.CreatedAt)
	return k, err
}

// Create implements apikey.APIKeyRepository.
func (r *apiKeyRepositoryImpl) Create(ctx context.Context, k apikey.APIKey) (apikey.APIKey, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO api_keys (name, description, key, active)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + apiKeyColumns

	created, err := scanAPIKey(q.QueryRow(ctx, query, k.Name, k.Description, k.Key, k.Active))
	if err != nil {
		return apikey.APIKey{}, fmt.Errorf("failed to create api key: %w", err)
	}
	return created, nil
}

// GetByKey implements apikey.APIKeyRepository.
func (r *apiKeyRepositoryImpl) GetByKey(ctx context.Context, key string) (apikey.APIKey, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + apiKeyColumns + ` FROM api_keys WHERE key = $1`

	k, err := scanAPIKey(q.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apikey.APIKey{}, apikey.ErrKeyNotFound
		}
		return apikey.APIKey{}, fmt.Errorf("failed to get api key: %w", err)
	}
	return k, nil
}

// List implements apikey.APIKeyRepository.
func (r *apiKeyRepositoryImpl) List(ctx context.Context) ([]apikey.APIKey, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + apiKeyColumns + ` FROM api_keys ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list api keys: %w", err)
	}
	defer rows.Close()

	var keys []apikey.APIKey
	for rows.Next() {
		k, err := scanAPIKey(rows)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// TouchLastUsed implements apikey.APIKeyRepository.
func (r *apiKeyRepositoryImpl) TouchLastUsed(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `UPDATE api_keys SET last_used_at = NOW() WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to touch api key: %w", err)
	}
	return nil
}

// Deactivate implements apikey.APIKeyRepository.
func (r *apiKeyRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE api_keys SET active = FALSE WHERE id = $1 RETURNING id`

	var deactivatedID string
	err := q.QueryRow(ctx, query, id).Scan(&deactivatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apikey.ErrKeyNotFound
		}
		return fmt.Errorf("failed to deactivate api key: %w", err)
	}
	return nil
}
