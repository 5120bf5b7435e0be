package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borgia-ae/borgia-api/internal/domain"
	"github.com/borgia-ae/borgia-api/internal/domain/entity"
	"github.com/borgia-ae/borgia-api/internal/domain/ledger"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func shopID(v int64) *int64 { return &v }

func TestApply_Transferencia(t *testing.T) {
	e := &entity.LedgerEvent{Kind: entity.EventTransfer, Amount: d("5"), SenderID: 2, RecipientID: 3}
	require.NoError(t, ledger.Validate(e))

	out, err := ledger.Apply(e, map[int64]decimal.Decimal{2: d("10"), 3: d("0")})
	require.NoError(t, err)
	assert.True(t, out[2].Equal(d("5")))
	assert.True(t, out[3].Equal(d("5")))
}

func TestApply_SaldoInsuficiente(t *testing.T) {
	e := &entity.LedgerEvent{Kind: entity.EventSale, Amount: d("5"), SenderID: 2, ShopID: shopID(2)}
	_, err := ledger.Apply(e, map[int64]decimal.Decimal{2: d("4.99")})
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
}

func TestApply_DebitoExcepcionalPuedeDejarNegativo(t *testing.T) {
	e := &entity.LedgerEvent{Kind: entity.EventExceptional, Amount: d("20"), RecipientID: 2, Justification: "casse"}
	out, err := ledger.Apply(e, map[int64]decimal.Decimal{2: d("5")})
	require.NoError(t, err)
	assert.True(t, out[2].Equal(d("-15")))
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		ev   entity.LedgerEvent
	}{
		{"importe cero", entity.LedgerEvent{Kind: entity.EventRecharging, SenderID: 1, PaymentMethod: entity.PaymentCash}},
		{"transferencia a sí mismo", entity.LedgerEvent{Kind: entity.EventTransfer, Amount: d("1"), SenderID: 1, RecipientID: 1}},
		{"venta sin tienda", entity.LedgerEvent{Kind: entity.EventSale, Amount: d("1"), SenderID: 1}},
		{"medio de pago", entity.LedgerEvent{Kind: entity.EventRecharging, Amount: d("1"), SenderID: 1, PaymentMethod: "bitcoin"}},
		{"sin justificación", entity.LedgerEvent{Kind: entity.EventExceptional, Amount: d("1"), RecipientID: 1}},
		{"tipo desconocido", entity.LedgerEvent{Kind: "refund", Amount: d("1")}},
		{"líneas no cuadran", entity.LedgerEvent{Kind: entity.EventSale, Amount: d("3"), SenderID: 1, ShopID: shopID(2),
			Lines: []entity.SaleLine{{ProductID: 1, Quantity: 2, UnitPrice: d("1")}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, ledger.Validate(&tc.ev), domain.ErrInvalidInput)
		})
	}
}

func TestReplayCoincideConApply(t *testing.T) {
	events := []*entity.LedgerEvent{
		{Kind: entity.EventRecharging, Amount: d("50"), SenderID: 2, PaymentMethod: entity.PaymentCash},
		{Kind: entity.EventSale, Amount: d("3.20"), SenderID: 2, ShopID: shopID(2)},
		{Kind: entity.EventTransfer, Amount: d("10"), SenderID: 2, RecipientID: 3},
		{Kind: entity.EventTransfer, Amount: d("1"), SenderID: 3, RecipientID: 2},
		{Kind: entity.EventExceptional, Amount: d("2"), RecipientID: 2, IsCredit: true, Justification: "x"},
	}
	balances := map[int64]decimal.Decimal{2: decimal.Zero, 3: decimal.Zero}
	for _, e := range events {
		var err error
		balances, err = ledger.Apply(e, balances)
		require.NoError(t, err)
	}
	assert.True(t, ledger.Replay(2, events).Equal(balances[2]))
	assert.True(t, balances[2].Equal(d("39.80")))
	assert.True(t, ledger.Replay(3, events).Equal(d("9")))
}

func TestLockOrder(t *testing.T) {
	e := &entity.LedgerEvent{Kind: entity.EventTransfer, Amount: d("1"), SenderID: 9, RecipientID: 4}
	assert.Equal(t, []int64{4, 9}, ledger.LockOrder(ledger.Effects(e)))
}

func TestPrice(t *testing.T) {
	p := &entity.Product{UpstreamPrice: d("1.00"), CorrectingFactor: d("1.5")}
	assert.Equal(t, "1.58", ledger.Price(p, d("5")).StringFixed(2))

	p.IsManualPrice = true
	p.ManualPrice = d("2")
	assert.Equal(t, "2.00", ledger.Price(p, d("5")).StringFixed(2))
}
