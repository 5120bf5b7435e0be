// Package workboard agrega datos del libro y de las tiendas en paneles por rol.
package workboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/borgia-ae/borgia-api/internal/application/auth"
	"github.com/borgia-ae/borgia-api/internal/application/dto"
	appledger "github.com/borgia-ae/borgia-api/internal/application/ledger"
	"github.com/borgia-ae/borgia-api/internal/application/usecase"
	"github.com/borgia-ae/borgia-api/internal/domain"
	"github.com/borgia-ae/borgia-api/internal/domain/authz"
	"github.com/borgia-ae/borgia-api/internal/domain/entity"
	"github.com/borgia-ae/borgia-api/internal/domain/repository"
)

const (
	lastEvents   = 5  // eventos recientes por tipo en los paneles
	monthsWindow = 12 // meses del gráfico mensual
	topProducts  = 5
)

// WorkboardUseCase construye los paneles de miembros, de presidents y de tienda.
type WorkboardUseCase struct {
	users    repository.UserRepository
	groups   repository.GroupRepository
	shops    repository.ShopRepository
	products repository.ProductRepository
	events   repository.LedgerRepository
	renderer CheckupRenderer
	now      func() time.Time
}

// NewWorkboardUseCase construye el caso de uso.
func NewWorkboardUseCase(
	users repository.UserRepository,
	groups repository.GroupRepository,
	shops repository.ShopRepository,
	products repository.ProductRepository,
	events repository.LedgerRepository,
	renderer CheckupRenderer,
) *WorkboardUseCase {
	return &WorkboardUseCase{
		users: users, groups: groups, shops: shops, products: products, events: events,
		renderer: renderer, now: time.Now,
	}
}

type eventsResult struct {
	events []*entity.LedgerEvent
	err    error
}

func (uc *WorkboardUseCase) fetch(f repository.LedgerFilter) <-chan eventsResult {
	ch := make(chan eventsResult, 1)
	go func() {
		ev, err := uc.events.List(f)
		ch <- eventsResult{ev, err}
	}()
	return ch
}

// Members panel del usuario: últimos eventos de cada tipo, totales por tienda y gasto mensual.
func (uc *WorkboardUseCase) Members(ctx context.Context, sub authz.Subject) (*dto.MembersWorkboardResponse, error) {
	user, err := uc.users.GetByID(sub.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	// ── Consultas en paralelo ──────────────────────────────────────────────────
	salesCh := uc.fetch(repository.LedgerFilter{Kind: entity.EventSale, UserID: user.ID})
	transfersCh := uc.fetch(repository.LedgerFilter{Kind: entity.EventTransfer, UserID: user.ID, Limit: lastEvents})
	rechargingsCh := uc.fetch(repository.LedgerFilter{Kind: entity.EventRecharging, SenderID: user.ID, Limit: lastEvents})
	// El operador figura como sender del movimiento excepcional.
	exceptionalCh := uc.fetch(repository.LedgerFilter{Kind: entity.EventExceptional, RecipientID: user.ID, Limit: lastEvents})

	sales, transfers, rechargings, exceptional := <-salesCh, <-transfersCh, <-rechargingsCh, <-exceptionalCh
	for name, r := range map[string]eventsResult{
		"ventas": sales, "transferencias": transfers, "recargas": rechargings, "excepcionales": exceptional,
	} {
		if r.err != nil {
			return nil, fmt.Errorf("workboard: %s: %w", name, r.err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Las ventas del usuario son las que él paga.
	var bought []*entity.LedgerEvent
	for _, e := range sales.events {
		if e.SenderID == user.ID {
			bought = append(bought, e)
		}
	}

	totals, err := uc.shopTotals(bought)
	if err != nil {
		return nil, err
	}
	return &dto.MembersWorkboardResponse{
		User:                 *auth.ToUserResponse(user, sub.Groups),
		Sales:                appledger.ToEventResponses(head(bought, lastEvents)),
		Transfers:            appledger.ToEventResponses(transfers.events),
		Rechargings:          appledger.ToEventResponses(rechargings.events),
		ExceptionalMovements: appledger.ToEventResponses(exceptional.events),
		ShopTotals:           totals,
		Monthly:              monthly(bought, uc.now()),
	}, nil
}

// Managers panel de presidents: últimas ventas de todas las tiendas.
func (uc *WorkboardUseCase) Managers(ctx context.Context, sub authz.Subject) (*dto.ManagersWorkboardResponse, error) {
	if !sub.IsAssociationManager() {
		return nil, domain.ErrForbidden
	}
	r := <-uc.fetch(repository.LedgerFilter{Kind: entity.EventSale, Limit: lastEvents})
	if r.err != nil {
		return nil, fmt.Errorf("workboard: ventas: %w", r.err)
	}
	return &dto.ManagersWorkboardResponse{Sales: appledger.ToEventResponses(r.events)}, ctx.Err()
}

// Shop panel de una tienda con el menú lateral según los permisos del sujeto.
func (uc *WorkboardUseCase) Shop(ctx context.Context, sub authz.Subject, groupName string, shop *entity.Shop) (*dto.ShopWorkboardResponse, error) {
	r := <-uc.fetch(repository.LedgerFilter{Kind: entity.EventSale, ShopID: shop.ID, Since: monthsStart(uc.now())})
	if r.err != nil {
		return nil, fmt.Errorf("workboard: ventas de tienda: %w", r.err)
	}
	nav, err := uc.NavTree(sub, groupName, shop)
	if err != nil {
		return nil, err
	}
	groups, err := uc.groups.ListByShop(shop.ID)
	if err != nil {
		return nil, err
	}
	return &dto.ShopWorkboardResponse{
		Shop:    shopResponse(shop, groups),
		Sales:   appledger.ToEventResponses(head(r.events, lastEvents)),
		Monthly: monthly(r.events, uc.now()),
		NavTree: nav,
	}, ctx.Err()
}

// NavTree menú lateral de tienda: inicio, checkup, ventas, productos y gestión de sus grupos.
func (uc *WorkboardUseCase) NavTree(sub authz.Subject, groupName string, shop *entity.Shop) ([]dto.NavLink, error) {
	base := fmt.Sprintf("/%s/shops/%d", groupName, shop.ID)
	nav := []dto.NavLink{{
		ID: "lm_workboard", Label: "Accueil Magasin " + usecase.DisplayShopName(shop.Name),
		Icon: "briefcase", URL: base + "/workboard/",
	}}
	if sub.Has("view_shop") {
		nav = append(nav, dto.NavLink{ID: "lm_shop_checkup", Label: "Checkup", Icon: "user", URL: base + "/checkup/"})
	}
	if sub.Has("view_sale") {
		nav = append(nav, dto.NavLink{ID: "lm_sale_list", Label: "Ventes", Icon: "shopping-cart", URL: base + "/sales/"})
	}
	if sub.Has("view_product") {
		nav = append(nav, dto.NavLink{ID: "lm_product_list", Label: "Produits", Icon: "cube", URL: base + "/products/"})
	}

	groups, err := uc.groups.ListByShop(shop.ID)
	if err != nil {
		return nil, err
	}
	management := dto.NavLink{ID: "lm_group_management", Label: "Gestion groupes magasin", Icon: "users"}
	for _, g := range groups {
		if !sub.Has(authz.ManagePermission(g.Name)) {
			continue
		}
		management.Subs = append(management.Subs, dto.NavLink{
			ID:    "lm_group_manage_" + g.Name,
			Label: "Gestion " + usecase.DisplayGroupName(g.Name),
			Icon:  "users",
			URL:   fmt.Sprintf("/%s/groups/%d/", groupName, g.ID),
		})
	}
	return append(nav, management), nil
}

// Checkup resumen de ventas y productos de la tienda.
func (uc *WorkboardUseCase) Checkup(ctx context.Context, shop *entity.Shop) (*dto.CheckupResponse, error) {
	salesCh := uc.fetch(repository.LedgerFilter{Kind: entity.EventSale, ShopID: shop.ID})
	type productsResult struct {
		products []*entity.Product
		err      error
	}
	productsCh := make(chan productsResult, 1)
	go func() {
		p, err := uc.products.ListByShop(shop.ID)
		productsCh <- productsResult{p, err}
	}()

	sales, products := <-salesCh, <-productsCh
	if sales.err != nil {
		return nil, fmt.Errorf("checkup: ventas: %w", sales.err)
	}
	if products.err != nil {
		return nil, fmt.Errorf("checkup: productos: %w", products.err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	names := make(map[int64]string, len(products.products))
	for _, p := range products.products {
		names[p.ID] = p.Name
	}
	sold := map[int64]*dto.ProductSold{}
	amount := decimal.Zero
	for _, e := range sales.events {
		amount = amount.Add(e.Amount)
		for _, l := range e.Lines {
			ps, ok := sold[l.ProductID]
			if !ok {
				ps = &dto.ProductSold{ProductID: l.ProductID, Name: names[l.ProductID], Amount: decimal.Zero}
				sold[l.ProductID] = ps
			}
			ps.Quantity += l.Quantity
			ps.Amount = ps.Amount.Add(l.Total())
		}
	}
	top := make([]dto.ProductSold, 0, len(sold))
	for _, ps := range sold {
		top = append(top, *ps)
	}
	sort.Slice(top, func(i, j int) bool {
		if c := top[i].Amount.Cmp(top[j].Amount); c != 0 {
			return c > 0
		}
		return top[i].ProductID < top[j].ProductID
	})
	if len(top) > topProducts {
		top = top[:topProducts]
	}

	return &dto.CheckupResponse{
		Shop:          shopResponse(shop, nil),
		SalesCount:    len(sales.events),
		SalesAmount:   amount,
		ProductsCount: len(products.products),
		TopProducts:   top,
		Monthly:       monthly(sales.events, uc.now()),
	}, nil
}

// CheckupPDF genera el checkup y lo renderiza en PDF.
func (uc *WorkboardUseCase) CheckupPDF(ctx context.Context, shop *entity.Shop) ([]byte, error) {
	c, err := uc.Checkup(ctx, shop)
	if err != nil {
		return nil, err
	}
	return uc.renderer.RenderCheckup(c)
}

func (uc *WorkboardUseCase) shopTotals(sales []*entity.LedgerEvent) ([]dto.ShopTotal, error) {
	sums := map[int64]decimal.Decimal{}
	for _, e := range sales {
		if e.ShopID == nil {
			continue
		}
		sums[*e.ShopID] = sums[*e.ShopID].Add(e.Amount)
	}
	out := make([]dto.ShopTotal, 0, len(sums))
	for id, amount := range sums {
		s, err := uc.shops.GetByID(id)
		if err != nil {
			return nil, err
		}
		if s == nil {
			continue
		}
		out = append(out, dto.ShopTotal{Shop: dto.ShopSummary{ID: s.ID, Name: s.Name, Color: s.Color}, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Shop.ID < out[j].Shop.ID })
	return out, nil
}

// monthsStart primer instante del mes más antiguo de la ventana.
func monthsStart(now time.Time) time.Time {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return first.AddDate(0, -(monthsWindow - 1), 0)
}

// monthly suma los importes por mes en los últimos 12 meses (etiquetas "Jan-26").
func monthly(events []*entity.LedgerEvent, now time.Time) []dto.MonthlyPoint {
	start := monthsStart(now)
	out := make([]dto.MonthlyPoint, monthsWindow)
	for i := range out {
		m := start.AddDate(0, i, 0)
		out[i] = dto.MonthlyPoint{Label: m.Format("Jan-06"), Amount: decimal.Zero}
	}
	for _, e := range events {
		t := e.Datetime.In(now.Location())
		if t.Before(start) {
			continue
		}
		i := (t.Year()-start.Year())*12 + int(t.Month()) - int(start.Month())
		if i >= 0 && i < monthsWindow {
			out[i].Amount = out[i].Amount.Add(e.Amount)
		}
	}
	return out
}

func head(events []*entity.LedgerEvent, n int) []*entity.LedgerEvent {
	if len(events) > n {
		return events[:n]
	}
	return events
}

func shopResponse(s *entity.Shop, groups []*entity.Group) dto.ShopResponse {
	out := dto.ShopResponse{ID: s.ID, Name: s.Name, Description: s.Description, Color: s.Color, CreatedAt: s.CreatedAt}
	for _, g := range groups {
		out.Groups = append(out.Groups, dto.GroupSummary{ID: g.ID, Name: g.Name})
	}
	return out
}
