package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pacsbooking/internal/domain"
)

type loginCodeRepository struct {
	DB *sql.DB
}

// NewLoginCodeRepository returns a domain.LoginCodeRepository implemented with Postgres.
func NewLoginCodeRepository(db *sql.DB) domain.LoginCodeRepository {
	return &loginCodeRepository{DB: db}
}

func (r *loginCodeRepository) Create(ctx context.Context, phone, codeHash string, expiresAt time.Time) error {
	query := `
		INSERT INTO login_codes (phone, code_hash, expires_at)
		VALUES ($1, $2, $3)
	`
	_, err := r.DB.ExecContext(ctx, query, phone, codeHash, expiresAt)
	return err
}

func (r *loginCodeRepository) GetLatest(ctx context.Context, phone string) (*domain.LoginCode, error) {
	query := `
		SELECT id, phone, code_hash, expires_at
		FROM login_codes
		WHERE phone = $1 AND expires_at > NOW()
		ORDER BY expires_at DESC
		LIMIT 1
	`
	c := &domain.LoginCode{}
	err := r.DB.QueryRowContext(ctx, query, phone).Scan(&c.ID, &c.Phone, &c.CodeHash, &c.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *loginCodeRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM login_codes WHERE id = $1`, id)
	return err
}
