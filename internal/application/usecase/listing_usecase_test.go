package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borgia-ae/borgia-api/internal/application/dto"
	"github.com/borgia-ae/borgia-api/internal/application/usecase"
	"github.com/borgia-ae/borgia-api/internal/domain"
	"github.com/borgia-ae/borgia-api/internal/domain/entity"
)

func newListing(f *fixture) *usecase.ListingUseCase {
	return usecase.NewListingUseCase(f.st.Users(), f.st.Groups(), f.st.Shops(), f.st.Products(), f.st.Ledger(),
		usecase.NewSettingUseCase(f.st.Settings()), defaultShopID)
}

func TestListing_UsuariosPorSaldoDescendente(t *testing.T) {
	f := newFixture(t)
	f.user(t, "low", "1.00", "members")
	f.user(t, "high", "30.00", "members")
	f.user(t, "mid", "12.50", "members")
	f.user(t, "special", "99.00", entity.GroupSpecials)

	items, err := newListing(f).List(usecase.KindUser, map[string]string{"order_by": "balance", "reverse": "True"})
	require.NoError(t, err)
	require.Len(t, items, 3, "admin y specials excluidos")

	var names []string
	for _, it := range items {
		names = append(names, it.Fields["username"].(string))
		for _, s := range []string{"password", "is_superuser", "is_staff", "last_login"} {
			assert.NotContains(t, it.Fields, s)
		}
	}
	assert.Equal(t, []string{"high", "mid", "low"}, names)
	require.NotNil(t, items[0].Count)
	assert.Equal(t, 3, *items[0].Count)
	assert.Equal(t, "30.00", items[0].Fields["balance"])
}

func TestListing_CampoSensibleNoFiltrable(t *testing.T) {
	f := newFixture(t)
	f.user(t, "u1", "0", "members")

	items, err := newListing(f).List(usecase.KindUser, map[string]string{"is_superuser": "True"})
	require.NoError(t, err)
	assert.Len(t, items, 1, "el filtro sobre un campo sensible se ignora")

	_, err = newListing(f).List(usecase.KindUser, map[string]string{"order_by": "password"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListing_ProductosBusquedaYFiltroBool(t *testing.T) {
	f := newFixture(t)
	s := f.shop(t, "bar")
	uc := usecase.NewProductUseCase(f.st.Products(), usecase.NewSettingUseCase(f.st.Settings()))
	_, err := uc.Create(s.ID, dto.CreateProductRequest{Name: "Biere blonde", UpstreamPrice: d("2")})
	require.NoError(t, err)
	_, err = uc.Create(s.ID, dto.CreateProductRequest{Name: "Coca", UpstreamPrice: d("1")})
	require.NoError(t, err)

	items, err := newListing(f).List(usecase.KindProduct, map[string]string{"search": "Bie", "is_active": "true"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Biere blonde", items[0].Fields["name"])
	assert.Equal(t, "2.10", items[0].Props["price"])
}

func TestListing_DetalleYTipoDesconocido(t *testing.T) {
	f := newFixture(t)
	l := newListing(f)

	items, err := l.Detail(usecase.KindProduct, "5353")
	require.NoError(t, err)
	assert.Nil(t, items)

	items, err = l.Detail(usecase.KindShop, "1")
	require.NoError(t, err)
	assert.Nil(t, items, "la tienda por defecto no se serializa")

	_, err = l.List("invoice", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, ok := usecase.Capability("invoice")
	assert.False(t, ok)
	c, ok := usecase.Capability(usecase.KindUser)
	assert.True(t, ok)
	assert.Equal(t, "view_user", c)
}
