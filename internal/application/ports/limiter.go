package ports

import "context"

// LoginLimiter cuenta intentos fallidos de login por email.
type LoginLimiter interface {
	// Blocked indica si el email superó el máximo de intentos fallidos en la ventana.
	Blocked(ctx context.Context, email string) (bool, error)
	RegisterFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// NoopLimiter limitador desactivado (sin Redis).
type NoopLimiter struct{}

func (NoopLimiter) Blocked(context.Context, string) (bool, error) { return false, nil }
func (NoopLimiter) RegisterFailure(context.Context, string) error { return nil }
func (NoopLimiter) Reset(context.Context, string) error           { return nil }
