package apikey

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/collable/pointage-backend/internal/domain/apikey"
)

// keyPrefix marks issued keys so leaked ones are recognizable in logs and
// secret scanners.
const keyPrefix = "collable_"

type APIKeyServiceImpl struct {
	keyRepo apikey.APIKeyRepository
}

func NewAPIKeyService(keyRepo apikey.APIKeyRepository) apikey.Service {
	return &APIKeyServiceImpl{keyRepo: keyRepo}
}

// Create implements apikey.Service.
func (s *APIKeyServiceImpl) Create(ctx context.Context, req apikey.CreateKeyRequest) (apikey.KeyResponse, error) {
	if err := req.Validate(); err != nil {
		return apikey.KeyResponse{}, err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return apikey.KeyResponse{}, fmt.Errorf("failed to generate key: %w", err)
	}

	created, err := s.keyRepo.Create(ctx, apikey.APIKey{
		Name:        req.Name,
		Description: req.Description,
		Key:         keyPrefix + hex.EncodeToString(raw),
		Active:      true,
	})
	if err != nil {
		return apikey.KeyResponse{}, fmt.Errorf("failed to create api key: %w", err)
	}
	return toResponse(created), nil
}

// List implements apikey.Service.
func (s *APIKeyServiceImpl) List(ctx context.Context) ([]apikey.KeyResponse, error) {
	keys, err := s.keyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list api keys: %w", err)
	}

	responses := make([]apikey.KeyResponse, 0, len(keys))
	for _, k := range keys {
		responses = append(responses, toResponse(k))
	}
	return responses, nil
}

// Deactivate implements apikey.Service.
func (s *APIKeyServiceImpl) Deactivate(ctx context.Context, id string) error {
	return s.keyRepo.Deactivate(ctx, id)
}

// Verify implements apikey.Service.
func (s *APIKeyServiceImpl) Verify(ctx context.Context, key string) (apikey.APIKey, error) {
	if key == "" {
		return apikey.APIKey{}, apikey.ErrKeyMissing
	}

	record, err := s.keyRepo.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, apikey.ErrKeyNotFound) {
			return apikey.APIKey{}, apikey.ErrKeyInvalid
		}
		return apikey.APIKey{}, fmt.Errorf("failed to look up api key: %w", err)
	}
	if !record.Active {
		return apikey.APIKey{}, apikey.ErrKeyInvalid
	}

	if err := s.keyRepo.TouchLastUsed(ctx, record.ID); err != nil {
		return apikey.APIKey{}, fmt.Errorf("failed to record key use: %w", err)
	}
	return record, nil
}

func toResponse(k apikey.APIKey) apikey.KeyResponse {
	resp := apikey.KeyResponse{
		ID:          k.ID,
		Name:        k.Name,
		Description: k.Description,
		Key:         k.Key,
		Active:      k.Active,
		CreatedAt:   k.CreatedAt.Format(time.RFC3339),
	}
	if k.LastUsedAt != nil {
		last := k.LastUsedAt.Format(time.RFC3339)
		resp.LastUsedAt = &last
	}
	return resp
}
