package qrcode

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/collable/pointage-backend/internal/domain/attendance"
	"github.com/collable/pointage-backend/internal/domain/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCodeRepo struct {
	codes  []qrcode.Code
	nextID int
}

func (f *fakeCodeRepo) Rotate(ctx context.Context, c qrcode.Code) (qrcode.Code, error) {
	for i := range f.codes {
		f.codes[i].Active = false
	}
	f.nextID++
	c.ID = "code-" + string(rune('0'+f.nextID))
	c.Active = true
	f.codes = append(f.codes, c)
	return c, nil
}

func (f *fakeCodeRepo) GetActive(ctx context.Context) (qrcode.Code, error) {
	for i := len(f.codes) - 1; i >= 0; i-- {
		if f.codes[i].Active {
			return f.codes[i], nil
		}
	}
	return qrcode.Code{}, qrcode.ErrNoActiveCode
}

func (f *fakeCodeRepo) GetByToken(ctx context.Context, token string) (qrcode.Code, error) {
	for _, c := range f.codes {
		if c.Token == token {
			return c, nil
		}
	}
	return qrcode.Code{}, qrcode.ErrNoActiveCode
}

func TestQRCodeService_RotateIssuesFreshCode(t *testing.T) {
	repo := &fakeCodeRepo{}
	s := NewQRCodeService(repo)

	first, err := s.Rotate(context.Background())
	require.NoError(t, err)
	assert.Len(t, first.Token, 64)
	assert.True(t, strings.HasPrefix(first.ImagePNG, "data:image/png;base64,"))

	second, err := s.Rotate(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)

	// Rotation retires every previous code.
	old, err := repo.GetByToken(context.Background(), first.Token)
	require.NoError(t, err)
	assert.False(t, old.Active)

	active, err := repo.GetActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, second.Token, active.Token)
}

func TestQRCodeService_ActiveCreatesCodeWhenNoneExists(t *testing.T) {
	repo := &fakeCodeRepo{}
	s := NewQRCodeService(repo)

	resp, err := s.Active(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Len(t, repo.codes, 1)
}

func TestQRCodeService_ActiveReusesSameDayCode(t *testing.T) {
	repo := &fakeCodeRepo{}
	s := NewQRCodeService(repo)

	first, err := s.Active(context.Background())
	require.NoError(t, err)

	second, err := s.Active(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.Token, second.Token)
	assert.Len(t, repo.codes, 1)
}

func TestQRCodeService_ActiveReplacesStaleCode(t *testing.T) {
	repo := &fakeCodeRepo{codes: []qrcode.Code{{
		ID:       "code-0",
		Token:    "stale-token",
		IssuedAt: time.Now().In(attendance.Timezone).AddDate(0, 0, -1),
		Active:   true,
	}}}
	s := NewQRCodeService(repo)

	resp, err := s.Active(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, "stale-token", resp.Token)

	ok, err := s.IsCodeValid(context.Background(), "stale-token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestQRCodeService_IsCodeValid(t *testing.T) {
	repo := &fakeCodeRepo{}
	s := NewQRCodeService(repo)

	resp, err := s.Rotate(context.Background())
	require.NoError(t, err)

	ok, err := s.IsCodeValid(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.IsCodeValid(context.Background(), "never-issued")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestQRCodeService_PriorDayCodeRejectedEvenIfActive(t *testing.T) {
	// An active flag left over from yesterday must not pass validation.
	repo := &fakeCodeRepo{codes: []qrcode.Code{{
		ID:       "code-0",
		Token:    "yesterday-token",
		IssuedAt: time.Now().In(attendance.Timezone).AddDate(0, 0, -1),
		Active:   true,
	}}}
	s := NewQRCodeService(repo)

	ok, err := s.IsCodeValid(context.Background(), "yesterday-token")
	require.NoError(t, err)
	assert.False(t, ok)
}
