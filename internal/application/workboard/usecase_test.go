package workboard_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borgia-ae/borgia-api/internal/application/catalog"
	"github.com/borgia-ae/borgia-api/internal/application/dto"
	"github.com/borgia-ae/borgia-api/internal/application/usecase"
	"github.com/borgia-ae/borgia-api/internal/application/workboard"
	"github.com/borgia-ae/borgia-api/internal/domain"
	"github.com/borgia-ae/borgia-api/internal/domain/authz"
	"github.com/borgia-ae/borgia-api/internal/domain/entity"
	"github.com/borgia-ae/borgia-api/internal/infrastructure/memory"
	"github.com/borgia-ae/borgia-api/pkg/logger"
)

type fixture struct {
	st    *memory.Store
	shops *usecase.ShopUseCase
	uc    *workboard.WorkboardUseCase
	bar   *entity.Shop
}

type fakeRenderer struct{ got *dto.CheckupResponse }

func (r *fakeRenderer) RenderCheckup(c *dto.CheckupResponse) ([]byte, error) {
	r.got = c
	return []byte("%PDF"), nil
}

func newFixture(t *testing.T, renderer workboard.CheckupRenderer) *fixture {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	st := memory.NewStore()
	require.NoError(t, catalog.NewBootstrap(cat, st.Permissions(), st.Groups(), st.Users(), st.Shops(), logger.Nop()).Run(1, ""))
	shops := usecase.NewShopUseCase(st.Shops(), st.Groups(), st, cat, 1, logger.Nop())
	s, err := shops.Create(context.Background(), dto.CreateShopRequest{Name: "bar", Description: "Bar", Color: "#ff0000"})
	require.NoError(t, err)
	bar, err := st.Shops().GetByID(s.ID)
	require.NoError(t, err)
	uc := workboard.NewWorkboardUseCase(st.Users(), st.Groups(), st.Shops(), st.Products(), st.Ledger(), renderer)
	return &fixture{st: st, shops: shops, uc: uc, bar: bar}
}

func (f *fixture) user(t *testing.T, username string, groups ...string) (*entity.User, authz.Subject) {
	t.Helper()
	u := &entity.User{Username: username, Balance: decimal.Zero, IsActive: true, DateJoined: time.Now()}
	require.NoError(t, f.st.Users().Create(u))
	for _, name := range groups {
		g, err := f.st.Groups().GetByName(name)
		require.NoError(t, err)
		require.NoError(t, f.st.Groups().AddMember(g.ID, u.ID))
	}
	gs, err := f.st.Groups().ListByUser(u.ID)
	require.NoError(t, err)
	return u, authz.Subject{UserID: u.ID, Groups: gs}
}

func (f *fixture) sale(t *testing.T, buyer int64, at time.Time, lines ...entity.SaleLine) {
	t.Helper()
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Total())
	}
	shopID := f.bar.ID
	require.NoError(t, f.st.Ledger().Create(&entity.LedgerEvent{
		ID: at.Format(time.RFC3339Nano), Kind: entity.EventSale, Datetime: at, Amount: total,
		SenderID: buyer, ShopID: &shopID, Lines: lines,
	}))
}

// ─── Members ─────────────────────────────────────────────────────────────────

func TestMembers_TotalesYMensual(t *testing.T) {
	f := newFixture(t, nil)
	u, sub := f.user(t, "m1", "members")
	now := time.Now()
	f.sale(t, u.ID, now, entity.SaleLine{ProductID: 1, Quantity: 2, UnitPrice: decimal.RequireFromString("1.50")})
	f.sale(t, u.ID, now.Add(-time.Minute), entity.SaleLine{ProductID: 1, Quantity: 1, UnitPrice: decimal.RequireFromString("2.00")})

	out, err := f.uc.Members(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, "m1", out.User.Username)
	assert.Len(t, out.Sales, 2)
	require.Len(t, out.ShopTotals, 1)
	assert.Equal(t, "bar", out.ShopTotals[0].Shop.Name)
	assert.Equal(t, "5.00", out.ShopTotals[0].Amount.StringFixed(2))

	require.Len(t, out.Monthly, 12)
	last := out.Monthly[11]
	assert.Equal(t, now.Format("Jan-06"), last.Label)
	assert.Equal(t, "5.00", last.Amount.StringFixed(2))
	assert.True(t, out.Monthly[0].Amount.IsZero())
}

func TestMembers_UltimosCinco(t *testing.T) {
	f := newFixture(t, nil)
	u, sub := f.user(t, "m1", "members")
	now := time.Now()
	for i := 0; i < 8; i++ {
		f.sale(t, u.ID, now.Add(-time.Duration(i)*time.Minute), entity.SaleLine{ProductID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(1)})
	}

	out, err := f.uc.Members(context.Background(), sub)
	require.NoError(t, err)
	assert.Len(t, out.Sales, 5)
	assert.Equal(t, "8.00", out.ShopTotals[0].Amount.StringFixed(2), "el total usa todas las ventas")
}

func TestMembers_ExcepcionalesSoloComoDestinatario(t *testing.T) {
	f := newFixture(t, nil)
	op, opSub := f.user(t, "tresorier", "members")
	bob, bobSub := f.user(t, "bob", "members")
	now := time.Now()
	require.NoError(t, f.st.Ledger().Create(&entity.LedgerEvent{
		ID: "exc-1", Kind: entity.EventExceptional, Datetime: now, Amount: decimal.NewFromInt(3),
		SenderID: op.ID, RecipientID: bob.ID, OperatorID: op.ID, IsCredit: true, Justification: "remboursement",
	}))
	require.NoError(t, f.st.Ledger().Create(&entity.LedgerEvent{
		ID: "rec-1", Kind: entity.EventRecharging, Datetime: now, Amount: decimal.NewFromInt(10),
		SenderID: bob.ID, OperatorID: op.ID, PaymentMethod: "cash",
	}))

	out, err := f.uc.Members(context.Background(), opSub)
	require.NoError(t, err)
	assert.Empty(t, out.ExceptionalMovements, "el operador no ve los movimientos que aplicó a otros")
	assert.Empty(t, out.Rechargings)

	out, err = f.uc.Members(context.Background(), bobSub)
	require.NoError(t, err)
	assert.Len(t, out.ExceptionalMovements, 1)
	assert.Len(t, out.Rechargings, 1)
}

// ─── Managers ────────────────────────────────────────────────────────────────

func TestManagers_SoloPresidents(t *testing.T) {
	f := newFixture(t, nil)
	_, member := f.user(t, "m1", "members")
	_, president := f.user(t, "p1", entity.GroupPresidents)

	_, err := f.uc.Managers(context.Background(), member)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := f.uc.Managers(context.Background(), president)
	require.NoError(t, err)
	assert.Empty(t, out.Sales)
}

// ─── NavTree ─────────────────────────────────────────────────────────────────

func TestNavTree_ChiefsGestionaAssociates(t *testing.T) {
	f := newFixture(t, nil)
	_, chief := f.user(t, "c1", "members", "chiefs-bar")

	nav, err := f.uc.NavTree(chief, "chiefs-bar", f.bar)
	require.NoError(t, err)
	require.NotEmpty(t, nav)
	assert.Equal(t, "Accueil Magasin Bar", nav[0].Label)
	assert.Equal(t, fmt.Sprintf("/chiefs-bar/shops/%d/workboard/", f.bar.ID), nav[0].URL)

	management := nav[len(nav)-1]
	assert.Equal(t, "lm_group_management", management.ID)
	require.Len(t, management.Subs, 1)
	assert.Equal(t, "Gestion Associés Bar", management.Subs[0].Label)
}

func TestNavTree_AssociatesSinGestion(t *testing.T) {
	f := newFixture(t, nil)
	_, associate := f.user(t, "a1", "members", "associates-bar")

	nav, err := f.uc.NavTree(associate, "associates-bar", f.bar)
	require.NoError(t, err)
	assert.Empty(t, nav[len(nav)-1].Subs)
}

// ─── Checkup ─────────────────────────────────────────────────────────────────

func TestCheckup_TopProductosYPDF(t *testing.T) {
	r := &fakeRenderer{}
	f := newFixture(t, r)
	u, _ := f.user(t, "m1", "members")
	beer := &entity.Product{ShopID: f.bar.ID, Name: "Bière", IsActive: true, CorrectingFactor: decimal.NewFromInt(1)}
	coke := &entity.Product{ShopID: f.bar.ID, Name: "Coca", IsActive: true, CorrectingFactor: decimal.NewFromInt(1)}
	require.NoError(t, f.st.Products().Create(beer))
	require.NoError(t, f.st.Products().Create(coke))

	now := time.Now()
	f.sale(t, u.ID, now, entity.SaleLine{ProductID: beer.ID, Quantity: 3, UnitPrice: decimal.RequireFromString("2.10")})
	f.sale(t, u.ID, now.Add(-time.Hour), entity.SaleLine{ProductID: coke.ID, Quantity: 1, UnitPrice: decimal.RequireFromString("1.00")})

	out, err := f.uc.Checkup(context.Background(), f.bar)
	require.NoError(t, err)
	assert.Equal(t, 2, out.SalesCount)
	assert.Equal(t, "7.30", out.SalesAmount.StringFixed(2))
	assert.Equal(t, 2, out.ProductsCount)
	require.Len(t, out.TopProducts, 2)
	assert.Equal(t, "Bière", out.TopProducts[0].Name)
	assert.Equal(t, 3, out.TopProducts[0].Quantity)

	pdf, err := f.uc.CheckupPDF(context.Background(), f.bar)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), pdf)
	require.NotNil(t, r.got)
	assert.Equal(t, "bar", r.got.Shop.Name)
}

// ─── ErrorContext ────────────────────────────────────────────────────────────

func TestErrorContext_GrupoDelPath(t *testing.T) {
	f := newFixture(t, nil)
	baseline, err := authz.LoadBaseline(f.st.Groups(), "members")
	require.NoError(t, err)
	b := workboard.NewErrorContextBuilder(f.st.Groups(), f.shops, baseline)
	_, chief := f.user(t, "c1", "members", "chiefs-bar")

	ctx := b.Build(chief, "/chiefs-bar/shops/1/update/")
	assert.Equal(t, "chiefs-bar", ctx.GroupName)
	assert.Equal(t, "chiefs-bar", ctx.FirstJob)
	require.Len(t, ctx.Shops, 1)
	assert.Equal(t, "bar", ctx.Shops[0].Name)

	ctx = b.Build(chief, "/nope/workboard/")
	assert.Equal(t, "members", ctx.GroupName, "grupo desconocido: grupo interno")

	_, member := f.user(t, "m1", "members")
	assert.Empty(t, b.Build(member, "/").FirstJob)
}
