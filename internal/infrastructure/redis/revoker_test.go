//go:build integration

package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	borgiaredis "github.com/borgia-ae/borgia-api/internal/infrastructure/redis"
	"github.com/borgia-ae/borgia-api/pkg/config"
)

func TestRevoker_RevocaHastaExpirar(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR no definido")
	}
	ctx := context.Background()
	client, err := borgiaredis.NewClient(ctx, config.RedisConfig{Addr: addr})
	require.NoError(t, err)
	defer client.Close()
	r := borgiaredis.NewRevoker(client)

	jti := uuid.NewString()
	revoked, err := r.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, jti, time.Minute))
	revoked, err = r.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.True(t, revoked)

	require.NoError(t, r.Revoke(ctx, "expirado", 0), "ttl 0 no hace nada")
	revoked, err = r.IsRevoked(ctx, "expirado")
	require.NoError(t, err)
	assert.False(t, revoked)
}
