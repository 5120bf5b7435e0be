package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borgia-ae/borgia-api/internal/application/catalog"
	"github.com/borgia-ae/borgia-api/internal/application/dto"
	"github.com/borgia-ae/borgia-api/internal/application/usecase"
	"github.com/borgia-ae/borgia-api/internal/domain/entity"
	"github.com/borgia-ae/borgia-api/internal/infrastructure/memory"
	"github.com/borgia-ae/borgia-api/pkg/logger"
)

func seeded(t *testing.T) (*catalog.Catalog, *memory.Store) {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	st := memory.NewStore()
	require.NoError(t, catalog.NewBootstrap(cat, st.Permissions(), st.Groups(), st.Users(), st.Shops(), logger.Nop()).Run(1, ""))
	return cat, st
}

func TestAudit_BaseRecienSembrada(t *testing.T) {
	cat, st := seeded(t)
	shops := usecase.NewShopUseCase(st.Shops(), st.Groups(), st, cat, 1, logger.Nop())
	_, err := shops.Create(context.Background(), dto.CreateShopRequest{Name: "bar", Description: "Bar", Color: "#000000"})
	require.NoError(t, err)

	issues, err := catalog.Audit(cat, st.Groups(), st.Shops(), 1)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestAudit_DetectaIncoherencias(t *testing.T) {
	cat, st := seeded(t)
	// Tienda sin sus grupos y grupo de rol huérfano.
	require.NoError(t, st.Shops().Create(&entity.Shop{Name: "foyer", Description: "Foyer", Color: "#111111"}))
	require.NoError(t, st.Groups().Create(&entity.Group{Name: "chiefs-ghost"}))
	require.NoError(t, st.Groups().Create(&entity.Group{Name: "random"}))

	issues, err := catalog.Audit(cat, st.Groups(), st.Shops(), 1)
	require.NoError(t, err)
	assert.Contains(t, issues, "falta el grupo chiefs-foyer de la tienda foyer")
	assert.Contains(t, issues, "falta el grupo associates-foyer de la tienda foyer")
	assert.Contains(t, issues, "grupo chiefs-ghost apunta a la tienda inexistente ghost")
	assert.Contains(t, issues, "grupo random no está en el catálogo")
}
