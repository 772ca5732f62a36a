package cache

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/medisupply-api/internal/application/ports"
)

var _ ports.LoginLimiter = (*LoginLimiter)(nil)

const loginFailuresPrefix = "login:failed:"

// LoginLimiter cuenta intentos fallidos por email en una ventana fija de Redis.
type LoginLimiter struct {
	redis       *RedisClient
	maxFailures int
	window      time.Duration
}

// NewLoginLimiter maxFailures <= 0 desactiva el bloqueo.
func NewLoginLimiter(redis *RedisClient, maxFailures int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{redis: redis, maxFailures: maxFailures, window: window}
}

func failuresKey(email string) string {
	return loginFailuresPrefix + strings.ToLower(strings.TrimSpace(email))
}

func (l *LoginLimiter) Blocked(ctx context.Context, email string) (bool, error) {
	if l.maxFailures <= 0 {
		return false, nil
	}
	v, ok, err := l.redis.Get(ctx, failuresKey(email))
	if err != nil || !ok {
		return false, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return false, nil
	}
	return n >= l.maxFailures, nil
}

func (l *LoginLimiter) RegisterFailure(ctx context.Context, email string) error {
	_, err := l.redis.Incr(ctx, failuresKey(email), l.window)
	return err
}

func (l *LoginLimiter) Reset(ctx context.Context, email string) error {
	return l.redis.Delete(ctx, failuresKey(email))
}
