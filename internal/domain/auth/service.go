package auth

import "context"

// Service defines authentication business logic.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (RefreshResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
	Me(ctx context.Context) (AgentProfile, error)
}
