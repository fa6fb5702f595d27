package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/collable/pointage-backend/internal/domain/qrcode"
	"github.com/collable/pointage-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type codeRepositoryImpl struct {
	db *database.DB
}

func NewCodeRepository(db *database.DB) qrcode.CodeRepository {
	return &codeRepositoryImpl{db: db}
}

const codeColumns = `id, token, issued_at, active`

func scanCode(row pgx.Row) (qrcode.Code, error) {
	var c qrcode.Code
	err := row.Scan(&c.ID, &c.Token, &c.IssuedAt, &c.Active)
	return c, err
}

// Rotate implements qrcode.CodeRepository. Retiring the old codes and
// inserting the new one commit together; a failure leaves the previous
// active code in place.
func (r *codeRepositoryImpl) Rotate(ctx context.Context, c qrcode.Code) (qrcode.Code, error) {
	var created qrcode.Code

	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		q := GetQuerier(txCtx, r.db)

		if _, err := q.Exec(txCtx, `UPDATE scan_codes SET active = FALSE WHERE active = TRUE`); err != nil {
			return fmt.Errorf("failed to deactivate scan codes: %w", err)
		}

		query := `
			INSERT INTO scan_codes (token, issued_at, active)
			VALUES ($1, $2, TRUE)
			RETURNING ` + codeColumns

		var err error
		created, err = scanCode(q.QueryRow(txCtx, query, c.Token, c.IssuedAt))
		if err != nil {
			return fmt.Errorf("failed to insert scan code: %w", err)
		}
		return nil
	})
	if err != nil {
		return qrcode.Code{}, err
	}
	return created, nil
}

// GetActive implements qrcode.CodeRepository.
func (r *codeRepositoryImpl) GetActive(ctx context.Context) (qrcode.Code, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + codeColumns + ` FROM scan_codes WHERE active = TRUE ORDER BY issued_at DESC LIMIT 1`

	c, err := scanCode(q.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return qrcode.Code{}, qrcode.ErrNoActiveCode
		}
		return qrcode.Code{}, fmt.Errorf("failed to get active scan code: %w", err)
	}
	return c, nil
}

// GetByToken implements qrcode.CodeRepository.
func (r *codeRepositoryImpl) GetByToken(ctx context.Context, token string) (qrcode.Code, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + codeColumns + ` FROM scan_codes WHERE token = $1`

	c, err := scanCode(q.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return qrcode.Code{}, qrcode.ErrNoActiveCode
		}
		return qrcode.Code{}, fmt.Errorf("failed to get scan code by token: %w", err)
	}
	return c, nil
}
