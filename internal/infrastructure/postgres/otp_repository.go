package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/medisupply-api/internal/domain/entity"
	"github.com/jhoicas/medisupply-api/internal/domain/repository"
)

var _ repository.OTPRepository = (*OTPRepo)(nil)

// OTPRepo códigos de segundo factor en PostgreSQL.
type OTPRepo struct {
	q Querier
}

// NewOTPRepository construye el adaptador.
func NewOTPRepository(q Querier) *OTPRepo {
	return &OTPRepo{q: q}
}

func (r *OTPRepo) Create(ctx context.Context, otp *entity.OTP) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO otps (id, code, expires_at, expiration_minutes, is_used, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		otp.ID, otp.Code, otp.ExpiresAt, otp.ExpirationMinutes, otp.IsUsed, otp.UserID, otp.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert otp: %w", err)
	}
	return nil
}

// Redeem canjea el código con un único UPDATE condicional; dos canjes concurrentes no pueden ganar ambos.
func (r *OTPRepo) Redeem(ctx context.Context, userID, code string, now time.Time) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE otps SET is_used = true
		WHERE user_id = $1 AND code = $2 AND is_used = false AND expires_at > $3`,
		userID, code, now,
	)
	if err != nil {
		return false, fmt.Errorf("redeem otp: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
