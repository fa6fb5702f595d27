package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/collable/pointage-backend/internal/domain/agent"
	"github.com/collable/pointage-backend/internal/domain/auth"
	"github.com/collable/pointage-backend/internal/pkg/jwt"
	"github.com/collable/pointage-backend/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	agentRepo  agent.AgentRepository
	jwtService jwt.Service
	jwtRepo    postgresql.JWTRepository
}

func NewAuthService(agentRepo agent.AgentRepository, jwtService jwt.Service, jwtRepo postgresql.JWTRepository) auth.Service {
	return &AuthServiceImpl{
		agentRepo:  agentRepo,
		jwtService: jwtService,
		jwtRepo:    jwtRepo,
	}
}

// Login implements auth.Service.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	ag, err := s.agentRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, agent.ErrAgentNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get agent: %w", err)
	}
	if !ag.Active {
		return auth.LoginResponse{}, agent.ErrAgentInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(ag.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(ag.ID, ag.Email, string(ag.Role))
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(ag.ID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	if err := s.jwtRepo.CreateRefreshToken(ctx, ag.ID, refreshToken, refreshExpiresAt); err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		Agent: auth.AgentProfile{
			ID:    ag.ID,
			Name:  ag.Name,
			Email: ag.Email,
			Role:  string(ag.Role),
		},
	}, nil
}

// Refresh implements auth.Service.
func (s *AuthServiceImpl) Refresh(ctx context.Context, req auth.RefreshRequest) (auth.RefreshResponse, error) {
	if req.RefreshToken == "" {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	agentID, err := s.jwtService.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}

	revoked, err := s.jwtRepo.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return auth.RefreshResponse{}, auth.ErrInvalidToken
		}
		return auth.RefreshResponse{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if revoked {
		return auth.RefreshResponse{}, auth.ErrRefreshTokenRevoked
	}

	ag, err := s.agentRepo.GetByID(ctx, agentID)
	if err != nil {
		return auth.RefreshResponse{}, auth.ErrInvalidToken
	}
	if !ag.Active {
		return auth.RefreshResponse{}, agent.ErrAgentInactive
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(ag.ID, ag.Email, string(ag.Role))
	if err != nil {
		return auth.RefreshResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.RefreshResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
	}, nil
}

// Logout implements auth.Service.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return auth.ErrInvalidToken
	}
	if _, err := s.jwtService.ParseRefreshToken(refreshToken); err != nil {
		return auth.ErrInvalidToken
	}
	if err := s.jwtRepo.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// ChangePassword implements auth.Service.
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	agentID, err := claimsAgentID(ctx)
	if err != nil {
		return err
	}

	ag, err := s.agentRepo.GetByID(ctx, agentID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(ag.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.agentRepo.UpdatePassword(ctx, ag.ID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// Me implements auth.Service.
func (s *AuthServiceImpl) Me(ctx context.Context) (auth.AgentProfile, error) {
	agentID, err := claimsAgentID(ctx)
	if err != nil {
		return auth.AgentProfile{}, err
	}

	ag, err := s.agentRepo.GetByID(ctx, agentID)
	if err != nil {
		return auth.AgentProfile{}, err
	}

	return auth.AgentProfile{
		ID:    ag.ID,
		Name:  ag.Name,
		Email: ag.Email,
		Role:  string(ag.Role),
	}, nil
}

func claimsAgentID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	agentID, ok := claims["agent_id"].(string)
	if !ok || agentID == "" {
		return "", fmt.Errorf("agent_id claim is missing or invalid")
	}
	return agentID, nil
}
