package qrcode

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/collable/pointage-backend/internal/domain/attendance"
	"github.com/collable/pointage-backend/internal/domain/qrcode"
	gqr "github.com/skip2/go-qrcode"
)

type QRCodeServiceImpl struct {
	codeRepo qrcode.CodeRepository
}

func NewQRCodeService(codeRepo qrcode.CodeRepository) qrcode.Service {
	return &QRCodeServiceImpl{codeRepo: codeRepo}
}

// Rotate implements qrcode.Service.
func (s *QRCodeServiceImpl) Rotate(ctx context.Context) (qrcode.CodeResponse, error) {
	token, err := generateToken()
	if err != nil {
		return qrcode.CodeResponse{}, err
	}

	code, err := s.codeRepo.Rotate(ctx, qrcode.Code{
		Token:    token,
		IssuedAt: time.Now().In(attendance.Timezone),
		Active:   true,
	})
	if err != nil {
		return qrcode.CodeResponse{}, fmt.Errorf("failed to rotate codes: %w", err)
	}

	return toResponse(code)
}

// Active implements qrcode.Service.
func (s *QRCodeServiceImpl) Active(ctx context.Context) (qrcode.CodeResponse, error) {
	code, err := s.codeRepo.GetActive(ctx)
	if errors.Is(err, qrcode.ErrNoActiveCode) {
		return s.Rotate(ctx)
	}
	if err != nil {
		return qrcode.CodeResponse{}, fmt.Errorf("failed to get active code: %w", err)
	}

	// Codes are valid for the issuance day only; a stale one is replaced.
	if !sameDay(code.IssuedAt, time.Now()) {
		return s.Rotate(ctx)
	}

	return toResponse(code)
}

// IsCodeValid implements qrcode.Service.
func (s *QRCodeServiceImpl) IsCodeValid(ctx context.Context, token string) (bool, error) {
	code, err := s.codeRepo.GetByToken(ctx, token)
	if errors.Is(err, qrcode.ErrNoActiveCode) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up code: %w", err)
	}

	if !code.Active {
		return false, nil
	}
	return sameDay(code.IssuedAt, time.Now()), nil
}

func generateToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(raw), nil
}

func sameDay(a, b time.Time) bool {
	a = a.In(attendance.Timezone)
	b = b.In(attendance.Timezone)
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func toResponse(code qrcode.Code) (qrcode.CodeResponse, error) {
	png, err := gqr.Encode(code.Token, gqr.Medium, 256)
	if err != nil {
		return qrcode.CodeResponse{}, fmt.Errorf("failed to render code image: %w", err)
	}

	return qrcode.CodeResponse{
		ID:       code.ID,
		Token:    code.Token,
		IssuedAt: code.IssuedAt.In(attendance.Timezone).Format(time.RFC3339),
		ImagePNG: "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
	}, nil
}
