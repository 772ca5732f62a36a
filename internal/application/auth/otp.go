package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/medisupply-api/internal/domain"
	"github.com/jhoicas/medisupply-api/internal/domain/entity"
)

// generateOTPCode 6 dígitos aleatorios, con ceros a la izquierda.
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func (uc *AuthUseCase) createOTP(ctx context.Context, user *entity.User) (*entity.OTP, error) {
	code, err := generateOTPCode()
	if err != nil {
		return nil, fmt.Errorf("auth: generar otp: %w", err)
	}
	now := uc.now()
	minutes := uc.cfg.OTPExpirationMinutes
	otp := &entity.OTP{
		ID:                uuid.New().String(),
		UserID:            user.ID,
		Code:              code,
		ExpirationMinutes: minutes,
		ExpiresAt:         now.Add(time.Duration(minutes) * time.Minute),
		CreatedAt:         now,
	}
	if err := uc.deps.OTPs.Create(ctx, otp); err != nil {
		return nil, err
	}
	return otp, nil
}

// verifyOTP marca el código como usado; un código sólo se canjea una vez.
func (uc *AuthUseCase) verifyOTP(ctx context.Context, user *entity.User, code string) error {
	ok, err := uc.deps.OTPs.Redeem(ctx, user.ID, code, uc.now())
	if err != nil {
		return err
	}
	if !ok {
		return domain.Unauthorized("Invalid or expired OTP")
	}
	return nil
}
