package qrcode

import "context"

// CodeRepository defines data access for issued scan codes.
type CodeRepository interface {
	// Rotate atomically marks every active code inactive and persists c as
	// the new active code.
	Rotate(ctx context.Context, c Code) (Code, error)

	// GetActive returns the currently active code, or ErrNoActiveCode.
	GetActive(ctx context.Context) (Code, error)

	// GetByToken returns a code by its token value regardless of state, or
	// ErrNoActiveCode when unknown.
	GetByToken(ctx context.Context, token string) (Code, error)
}

// Service manages the rotating scan code and answers validity checks.
type Service interface {
	// Rotate deactivates existing codes and issues a fresh one, returning it
	// with its rendered PNG image.
	Rotate(ctx context.Context) (CodeResponse, error)

	// Active returns the current code (creating one if none exists) with its
	// rendered PNG image.
	Active(ctx context.Context) (CodeResponse, error)

	// IsCodeValid reports whether a presented token is the active code AND
	// was issued on the current calendar date. Prior-day codes are rejected
	// even if still flagged active.
	IsCodeValid(ctx context.Context, token string) (bool, error)
}

type CodeResponse struct {
	ID       string `json:"id"`
	Token    string `json:"token"`
	IssuedAt string `json:"issued_at"`
	// ImagePNG is a data URI (image/png, base64).
	ImagePNG string `json:"image_png"`
}
