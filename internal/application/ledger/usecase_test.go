package ledger_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borgia-ae/borgia-api/internal/application/dto"
	"github.com/borgia-ae/borgia-api/internal/application/ledger"
	"github.com/borgia-ae/borgia-api/internal/application/usecase"
	"github.com/borgia-ae/borgia-api/internal/domain"
	"github.com/borgia-ae/borgia-api/internal/domain/entity"
	"github.com/borgia-ae/borgia-api/internal/domain/repository"
	"github.com/borgia-ae/borgia-api/internal/infrastructure/memory"
	"github.com/borgia-ae/borgia-api/pkg/logger"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	st  *memory.Store
	uc  *ledger.LedgerUseCase
	bar *entity.Shop
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := memory.NewStore()
	bar := &entity.Shop{Name: "bar", Description: "Bar", Color: "#ff0000", CreatedAt: time.Now()}
	require.NoError(t, st.Shops().Create(bar))
	uc := ledger.NewLedgerUseCase(st, st.Ledger(), st.Products(), usecase.NewSettingUseCase(st.Settings()), logger.Nop())
	return &fixture{st: st, uc: uc, bar: bar}
}

func (f *fixture) user(t *testing.T, username, balance string) *entity.User {
	t.Helper()
	u := &entity.User{Username: username, Balance: d(balance), IsActive: true, DateJoined: time.Now()}
	require.NoError(t, f.st.Users().Create(u))
	return u
}

func (f *fixture) product(t *testing.T, shopID int64, name, upstream string) *entity.Product {
	t.Helper()
	p := &entity.Product{ShopID: shopID, Name: name, UpstreamPrice: d(upstream), CorrectingFactor: d("1"), IsActive: true}
	require.NoError(t, f.st.Products().Create(p))
	return p
}

func (f *fixture) balance(t *testing.T, id int64) string {
	t.Helper()
	u, err := f.st.Users().GetByID(id)
	require.NoError(t, err)
	return u.Balance.StringFixed(2)
}

// ─── Sale ────────────────────────────────────────────────────────────────────

func TestSale_DebitaAlCompradorConPrecioVigente(t *testing.T) {
	f := newFixture(t)
	buyer := f.user(t, "buyer", "10.00")
	operator := f.user(t, "op", "0")
	beer := f.product(t, f.bar.ID, "Bière", "2.00")

	out, err := f.uc.Sale(context.Background(), operator.ID, f.bar.ID, dto.SaleRequest{
		BuyerID: buyer.ID,
		Lines:   []dto.SaleLineRequest{{ProductID: beer.ID, Quantity: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, "6.30", out.Amount.StringFixed(2), "3 × 2.10")
	assert.NotEmpty(t, out.ID)
	require.Len(t, out.Lines, 1)
	assert.Equal(t, "2.10", out.Lines[0].UnitPrice.StringFixed(2))

	assert.Equal(t, "3.70", f.balance(t, buyer.ID))
	assert.Equal(t, "0.00", f.balance(t, operator.ID), "el operador no recibe saldo")

	sales, err := f.uc.ListShopSales(f.bar.ID, 10)
	require.NoError(t, err)
	assert.Len(t, sales, 1)
}

func TestSale_SaldoInsuficienteNoDejaRastro(t *testing.T) {
	f := newFixture(t)
	buyer := f.user(t, "buyer", "1.00")
	beer := f.product(t, f.bar.ID, "Bière", "2.00")

	_, err := f.uc.Sale(context.Background(), buyer.ID, f.bar.ID, dto.SaleRequest{
		BuyerID: buyer.ID, Lines: []dto.SaleLineRequest{{ProductID: beer.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assert.Equal(t, "1.00", f.balance(t, buyer.ID))

	events, err := f.st.Ledger().List(repository.LedgerFilter{})
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestSale_ProductoDeOtraTienda(t *testing.T) {
	f := newFixture(t)
	buyer := f.user(t, "buyer", "10.00")
	other := &entity.Shop{Name: "auberge", Color: "#00ff00"}
	require.NoError(t, f.st.Shops().Create(other))
	p := f.product(t, other.ID, "Vin", "3")

	_, err := f.uc.Sale(context.Background(), buyer.ID, f.bar.ID, dto.SaleRequest{
		BuyerID: buyer.ID, Lines: []dto.SaleLineRequest{{ProductID: p.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Sale(context.Background(), buyer.ID, f.bar.ID, dto.SaleRequest{
		BuyerID: buyer.ID, Lines: []dto.SaleLineRequest{{ProductID: 5353, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSale_ProductoInactivo(t *testing.T) {
	f := newFixture(t)
	buyer := f.user(t, "buyer", "10.00")
	p := f.product(t, f.bar.ID, "Coca", "1")
	p.IsActive = false
	require.NoError(t, f.st.Products().Update(p))

	_, err := f.uc.Sale(context.Background(), buyer.ID, f.bar.ID, dto.SaleRequest{
		BuyerID: buyer.ID, Lines: []dto.SaleLineRequest{{ProductID: p.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSale_CantidadFueraDeRango(t *testing.T) {
	f := newFixture(t)
	buyer := f.user(t, "buyer", "10.00")
	beer := f.product(t, f.bar.ID, "Bière", "2.00")

	for _, q := range []int{0, -1, math.MaxInt32 + 1} {
		_, err := f.uc.Sale(context.Background(), buyer.ID, f.bar.ID, dto.SaleRequest{
			BuyerID: buyer.ID, Lines: []dto.SaleLineRequest{{ProductID: beer.ID, Quantity: q}},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad %d", q)
	}
	assert.Equal(t, "10.00", f.balance(t, buyer.ID))
}

// ─── Transfer / Recharging / Exceptional ─────────────────────────────────────

func TestTransfer_ConservaLaSuma(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "a", "20.00")
	b := f.user(t, "b", "5.00")

	_, err := f.uc.Transfer(context.Background(), a.ID, dto.TransferRequest{RecipientID: b.ID, Amount: d("7.50"), Justification: "pizza"})
	require.NoError(t, err)
	assert.Equal(t, "12.50", f.balance(t, a.ID))
	assert.Equal(t, "12.50", f.balance(t, b.ID))

	_, err = f.uc.Transfer(context.Background(), a.ID, dto.TransferRequest{RecipientID: a.ID, Amount: d("1"), Justification: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "no se transfiere a uno mismo")

	_, err = f.uc.Transfer(context.Background(), a.ID, dto.TransferRequest{RecipientID: b.ID, Amount: d("100"), Justification: "x"})
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
}

func TestTransfer_DestinatarioInactivo(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "a", "20.00")
	b := f.user(t, "b", "0")
	b.IsActive = false
	require.NoError(t, f.st.Users().Update(b))

	_, err := f.uc.Transfer(context.Background(), a.ID, dto.TransferRequest{RecipientID: b.ID, Amount: d("1"), Justification: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Equal(t, "20.00", f.balance(t, a.ID))
}

func TestRecharging_AcreditaYValidaMedioDePago(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "u", "0")
	op := f.user(t, "op", "0")

	out, err := f.uc.Recharging(context.Background(), op.ID, dto.RechargingRequest{UserID: u.ID, Amount: d("15"), PaymentMethod: entity.PaymentCheque})
	require.NoError(t, err)
	assert.Equal(t, entity.EventRecharging, out.Kind)
	assert.Equal(t, "15.00", f.balance(t, u.ID))

	_, err = f.uc.Recharging(context.Background(), op.ID, dto.RechargingRequest{UserID: u.ID, Amount: d("15"), PaymentMethod: "bitcoin"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Recharging(context.Background(), op.ID, dto.RechargingRequest{UserID: u.ID, Amount: d("0"), PaymentMethod: entity.PaymentCash})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "importe no positivo")
}

func TestExceptionalMovement_DebitoPuedeDejarNegativo(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "u", "2.00")
	op := f.user(t, "op", "0")

	_, err := f.uc.ExceptionalMovement(context.Background(), op.ID, dto.ExceptionalMovementRequest{
		RecipientID: u.ID, Amount: d("5"), IsCredit: false, Justification: "casse verre",
	})
	require.NoError(t, err)
	assert.Equal(t, "-3.00", f.balance(t, u.ID))

	_, err = f.uc.ExceptionalMovement(context.Background(), op.ID, dto.ExceptionalMovementRequest{
		RecipientID: u.ID, Amount: d("5"), IsCredit: true,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "falta la justificación")
}
