package auth

import (
	"context"
	"testing"

	"github.com/collable/pointage-backend/internal/domain/agent"
	"github.com/collable/pointage-backend/internal/domain/auth"
	"github.com/collable/pointage-backend/internal/pkg/jwt"
	"github.com/collable/pointage-backend/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testAgentID = "11111111-1111-4111-8111-111111111111"

type fakeAgentRepo struct {
	agents    map[string]agent.Agent
	passwords map[string]string
}

func newFakeAgentRepo(t *testing.T, active bool) *fakeAgentRepo {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	a := agent.Agent{
		ID:           testAgentID,
		Name:         "Alice Martin",
		Email:        "alice@example.com",
		Role:         agent.RoleAdmin,
		PasswordHash: string(hash),
		Active:       active,
	}
	return &fakeAgentRepo{
		agents:    map[string]agent.Agent{a.ID: a},
		passwords: map[string]string{},
	}
}

func (f *fakeAgentRepo) Create(ctx context.Context, a agent.Agent) (agent.Agent, error) {
	return a, nil
}

func (f *fakeAgentRepo) GetByID(ctx context.Context, id string) (agent.Agent, error) {
	a, ok := f.agents[id]
	if !ok {
		return agent.Agent{}, agent.ErrAgentNotFound
	}
	return a, nil
}

func (f *fakeAgentRepo) GetByEmail(ctx context.Context, email string) (agent.Agent, error) {
	for _, a := range f.agents {
		if a.Email == email {
			return a, nil
		}
	}
	return agent.Agent{}, agent.ErrAgentNotFound
}

func (f *fakeAgentRepo) List(ctx context.Context) ([]agent.Agent, error) { return nil, nil }
func (f *fakeAgentRepo) Update(ctx context.Context, req agent.UpdateAgentRequest) error {
	return nil
}

func (f *fakeAgentRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	f.passwords[id] = hash
	return nil
}

func (f *fakeAgentRepo) Deactivate(ctx context.Context, id string) error { return nil }

type storedRefreshToken struct {
	agentID string
	revoked bool
}

// fakeJWTRepo keeps issued refresh tokens keyed by the raw token string.
type fakeJWTRepo struct {
	tokens map[string]*storedRefreshToken
}

func newFakeJWTRepo() *fakeJWTRepo {
	return &fakeJWTRepo{tokens: map[string]*storedRefreshToken{}}
}

func (f *fakeJWTRepo) CreateRefreshToken(ctx context.Context, agentID string, token string, expiresAt int64) error {
	f.tokens[token] = &storedRefreshToken{agentID: agentID}
	return nil
}

func (f *fakeJWTRepo) IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error) {
	stored, ok := f.tokens[token]
	if !ok {
		return false, auth.ErrInvalidToken
	}
	return stored.revoked, nil
}

func (f *fakeJWTRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	if stored, ok := f.tokens[token]; ok {
		stored.revoked = true
	}
	return nil
}

var _ postgresql.JWTRepository = (*fakeJWTRepo)(nil)

func newTestService(t *testing.T, active bool) (auth.Service, jwt.Service, *fakeAgentRepo, *fakeJWTRepo) {
	t.Helper()
	repo := newFakeAgentRepo(t, active)
	jwtRepo := newFakeJWTRepo()
	jwtService := jwt.NewJWTService("test-secret", "15m", "168h")
	return NewAuthService(repo, jwtService, jwtRepo), jwtService, repo, jwtRepo
}

func authedContext(t *testing.T, jwtService jwt.Service, accessToken string) context.Context {
	t.Helper()
	token, err := jwtService.JWTAuth().Decode(accessToken)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestAuthService_Login(t *testing.T) {
	s, _, _, _ := newTestService(t, true)

	resp, err := s.Login(context.Background(), auth.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, testAgentID, resp.Agent.ID)
	assert.Equal(t, "admin", resp.Agent.Role)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	s, _, _, _ := newTestService(t, true)

	_, err := s.Login(context.Background(), auth.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_LoginUnknownEmail(t *testing.T) {
	s, _, _, _ := newTestService(t, true)

	// Unknown email and wrong password are indistinguishable to the caller.
	_, err := s.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct horse",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_LoginInactiveAgent(t *testing.T) {
	s, _, _, _ := newTestService(t, false)

	_, err := s.Login(context.Background(), auth.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	assert.ErrorIs(t, err, agent.ErrAgentInactive)
}

func TestAuthService_Refresh(t *testing.T) {
	s, _, _, _ := newTestService(t, true)

	login, err := s.Login(context.Background(), auth.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	resp, err := s.Refresh(context.Background(), auth.RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestAuthService_RefreshRejectsAccessToken(t *testing.T) {
	s, _, _, _ := newTestService(t, true)

	login, err := s.Login(context.Background(), auth.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = s.Refresh(context.Background(), auth.RefreshRequest{RefreshToken: login.AccessToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthService_LogoutRevokesRefreshToken(t *testing.T) {
	s, _, _, _ := newTestService(t, true)

	login, err := s.Login(context.Background(), auth.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	require.NoError(t, s.Logout(context.Background(), login.RefreshToken))

	_, err = s.Refresh(context.Background(), auth.RefreshRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestAuthService_RevocationHeldByTokenStore(t *testing.T) {
	s, jwtService, agents, jwtRepo := newTestService(t, true)

	login, err := s.Login(context.Background(), auth.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	require.NoError(t, s.Logout(context.Background(), login.RefreshToken))

	// A fresh service instance over the same token store still sees the
	// revocation, so a restart cannot resurrect a logged-out token.
	restarted := NewAuthService(agents, jwtService, jwtRepo)
	_, err = restarted.Refresh(context.Background(), auth.RefreshRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestAuthService_RefreshRejectsUnissuedToken(t *testing.T) {
	s, jwtService, _, _ := newTestService(t, true)

	// Well formed and correctly signed, but never recorded by a login.
	foreign, _, err := jwtService.GenerateRefreshToken(testAgentID)
	require.NoError(t, err)

	_, err = s.Refresh(context.Background(), auth.RefreshRequest{RefreshToken: foreign})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthService_ChangePassword(t *testing.T) {
	s, jwtService, repo, _ := newTestService(t, true)

	login, err := s.Login(context.Background(), auth.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	ctx := authedContext(t, jwtService, login.AccessToken)

	err = s.ChangePassword(ctx, auth.ChangePasswordRequest{
		CurrentPassword: "correct horse",
		NewPassword:     "battery staple",
	})
	require.NoError(t, err)

	stored := repo.passwords[testAgentID]
	require.NotEmpty(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("battery staple")))
}

func TestAuthService_ChangePasswordWrongCurrent(t *testing.T) {
	s, jwtService, _, _ := newTestService(t, true)

	login, err := s.Login(context.Background(), auth.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	ctx := authedContext(t, jwtService, login.AccessToken)

	err = s.ChangePassword(ctx, auth.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "battery staple",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Me(t *testing.T) {
	s, jwtService, _, _ := newTestService(t, true)

	login, err := s.Login(context.Background(), auth.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	ctx := authedContext(t, jwtService, login.AccessToken)

	profile, err := s.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", profile.Email)
	assert.Equal(t, "Alice Martin", profile.Name)
}
