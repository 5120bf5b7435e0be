package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borgia-ae/borgia-api/internal/application/catalog"
	"github.com/borgia-ae/borgia-api/internal/infrastructure/storage"
	"github.com/borgia-ae/borgia-api/pkg/config"
	"github.com/borgia-ae/borgia-api/pkg/logger"
)

func TestOpen_Memoria(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Storage: "memory"}}
	be, err := storage.Open(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer be.Close()

	cat, err := catalog.Load()
	require.NoError(t, err)
	require.NoError(t, catalog.NewBootstrap(cat, be.Permissions, be.Groups, be.Users, be.Shops, logger.Nop()).Run(1, ""))

	shop, err := be.Shops.GetByID(1)
	require.NoError(t, err)
	require.NotNil(t, shop, "la tienda por defecto se crea sobre el backend en memoria")

	perms, err := be.Permissions.List()
	require.NoError(t, err)
	assert.Len(t, perms, len(cat.Permissions))
}
