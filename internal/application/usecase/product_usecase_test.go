package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borgia-ae/borgia-api/internal/application/dto"
	"github.com/borgia-ae/borgia-api/internal/application/usecase"
	"github.com/borgia-ae/borgia-api/internal/domain"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestProduct_PrecioAutomaticoYManual(t *testing.T) {
	f := newFixture(t)
	s := f.shop(t, "bar")
	settings := usecase.NewSettingUseCase(f.st.Settings())
	uc := usecase.NewProductUseCase(f.st.Products(), settings)

	out, err := uc.Create(s.ID, dto.CreateProductRequest{Name: "Bière", Unit: "CL", UpstreamPrice: d("2.00")})
	require.NoError(t, err)
	assert.Equal(t, "2.10", out.Price.StringFixed(2), "margen por defecto del 5 %")
	assert.True(t, out.IsActive)

	p, err := f.st.Products().GetByID(out.ID)
	require.NoError(t, err)
	out, err = uc.UpdatePrice(p, dto.UpdatePriceRequest{IsManualPrice: true, ManualPrice: d("1.50")})
	require.NoError(t, err)
	assert.Equal(t, "1.50", out.Price.StringFixed(2))
	assert.Equal(t, "2.10", out.AutomaticPrice.StringFixed(2))

	margin := d("10")
	_, err = settings.Update(1, dto.UpdateSettingRequest{MarginProfit: &margin})
	require.NoError(t, err)
	out, err = uc.UpdatePrice(p, dto.UpdatePriceRequest{IsManualPrice: false})
	require.NoError(t, err)
	assert.Equal(t, "2.20", out.Price.StringFixed(2), "el automático sigue al margen vigente")
}

func TestProduct_ValidacionPrecios(t *testing.T) {
	f := newFixture(t)
	s := f.shop(t, "bar")
	uc := usecase.NewProductUseCase(f.st.Products(), usecase.NewSettingUseCase(f.st.Settings()))

	_, err := uc.Create(s.ID, dto.CreateProductRequest{Name: "x", UpstreamPrice: d("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	zero := decimal.Zero
	_, err = uc.Create(s.ID, dto.CreateProductRequest{Name: "x", CorrectingFactor: &zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProduct_RemoveLoOcultaDelListado(t *testing.T) {
	f := newFixture(t)
	s := f.shop(t, "bar")
	uc := usecase.NewProductUseCase(f.st.Products(), usecase.NewSettingUseCase(f.st.Settings()))

	out, err := uc.Create(s.ID, dto.CreateProductRequest{Name: "Coca", UpstreamPrice: d("1")})
	require.NoError(t, err)
	p, err := f.st.Products().GetByID(out.ID)
	require.NoError(t, err)
	require.NoError(t, uc.Remove(p))

	list, err := uc.ListByShop(s.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	p, err = f.st.Products().GetByID(out.ID)
	require.NoError(t, err)
	require.NotNil(t, p, "baja lógica: la fila sigue existiendo")
	assert.True(t, p.IsRemoved)
}
