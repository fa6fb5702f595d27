package apikey

import "context"

// APIKeyRepository defines data access for external API keys.
type APIKeyRepository interface {
	Create(ctx context.Context, k APIKey) (APIKey, error)
	GetByKey(ctx context.Context, key string) (APIKey, error)
	List(ctx context.Context) ([]APIKey, error)
	TouchLastUsed(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error
}

// Service defines admin-facing API key management plus the verification
// used by the external-API middleware.
type Service interface {
	Create(ctx context.Context, req CreateKeyRequest) (KeyResponse, error)
	List(ctx context.Context) ([]KeyResponse, error)
	Deactivate(ctx context.Context, id string) error

	// Verify checks a presented key, records its use, and returns the key
	// record when valid.
	Verify(ctx context.Context, key string) (APIKey, error)
}
