package auth

import (
	"context"
	"time"
)

// SessionRevoker guarda los jti revocados hasta que el token expira.
type SessionRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// NopRevoker no revoca nada (sin Redis el logout solo borra la cookie).
type NopRevoker struct{}

func (NopRevoker) Revoke(context.Context, string, time.Duration) error { return nil }
func (NopRevoker) IsRevoked(context.Context, string) (bool, error)     { return false, nil }
