package repository

import (
	"context"
	"time"

	"github.com/jhoicas/medisupply-api/internal/domain/entity"
)

// OTPRepository persistencia de códigos de segundo factor.
type OTPRepository interface {
	Create(ctx context.Context, otp *entity.OTP) error
	// Redeem marca como usado el código vigente en now en una sola operación.
	// false si no había código válido (inexistente, vencido o ya canjeado).
	Redeem(ctx context.Context, userID, code string, now time.Time) (bool, error)
}
