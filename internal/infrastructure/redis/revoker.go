// Package redis guarda la lista de sesiones revocadas (logout) con TTL igual a la vida restante del token.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/borgia-ae/borgia-api/internal/application/auth"
	"github.com/borgia-ae/borgia-api/pkg/config"
)

var _ auth.SessionRevoker = (*Revoker)(nil)

const keyPrefix = "borgia:session:revoked:"

// Revoker implementa auth.SessionRevoker sobre Redis.
type Revoker struct {
	client *redis.Client
}

// NewClient conecta y comprueba con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	c := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return c, nil
}

// NewRevoker construye el revocador sobre un cliente ya conectado.
func NewRevoker(client *redis.Client) *Revoker {
	return &Revoker{client: client}
}

// Revoke marca el jti como revocado hasta que el token expire por sí mismo.
func (r *Revoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, keyPrefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// IsRevoked indica si el jti está en la lista de revocados.
func (r *Revoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := r.client.Get(ctx, keyPrefix+jti).Err()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("check session: %w", err)
	}
	return true, nil
}
