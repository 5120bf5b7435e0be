package usecase

import (
	"strconv"

	"github.com/borgia-ae/borgia-api/internal/domain"
	"github.com/borgia-ae/borgia-api/internal/domain/entity"
	"github.com/borgia-ae/borgia-api/internal/domain/listing"
	"github.com/borgia-ae/borgia-api/internal/domain/repository"
)

// Tipos de recurso del endpoint genérico de listados.
const (
	KindUser    = "user"
	KindShop    = "shop"
	KindProduct = "product"
	KindGroup   = "group"
	KindSale    = "sale"
)

// ListingUseCase endpoint genérico: filtra, busca, ordena y recorta en memoria sobre
// los esquemas declarados por tipo.
type ListingUseCase struct {
	users         repository.UserRepository
	groups        repository.GroupRepository
	shops         repository.ShopRepository
	products      repository.ProductRepository
	events        repository.LedgerRepository
	settings      *SettingUseCase
	defaultShopID int64
}

// NewListingUseCase construye el caso de uso.
func NewListingUseCase(
	users repository.UserRepository,
	groups repository.GroupRepository,
	shops repository.ShopRepository,
	products repository.ProductRepository,
	events repository.LedgerRepository,
	settings *SettingUseCase,
	defaultShopID int64,
) *ListingUseCase {
	return &ListingUseCase{
		users: users, groups: groups, shops: shops, products: products, events: events,
		settings: settings, defaultShopID: defaultShopID,
	}
}

// Capability permiso necesario para listar el tipo; ok=false si el tipo no existe.
func Capability(kind string) (string, bool) {
	switch kind {
	case KindUser, KindShop, KindProduct, KindGroup, KindSale:
		return "view_" + kind, true
	}
	return "", false
}

// List ejecuta el listado del tipo con los parámetros GET.
func (uc *ListingUseCase) List(kind string, params map[string]string) ([]listing.Item, error) {
	switch kind {
	case KindUser:
		rows, specials, err := uc.userRows()
		if err != nil {
			return nil, err
		}
		return run(userSchema(specials), rows, params)
	case KindShop:
		shops, err := uc.shops.List()
		if err != nil {
			return nil, err
		}
		return run(shopSchema(uc.defaultShopID), shops, params)
	case KindProduct:
		products, err := uc.products.List()
		if err != nil {
			return nil, err
		}
		return run(productSchema(uc.settings.Current), products, params)
	case KindGroup:
		groups, err := uc.groups.List()
		if err != nil {
			return nil, err
		}
		return run(groupSchema(), groups, params)
	case KindSale:
		sales, err := uc.events.List(repository.LedgerFilter{Kind: entity.EventSale})
		if err != nil {
			return nil, err
		}
		return run(saleSchema(), sales, params)
	}
	return nil, domain.ErrNotFound
}

// Detail serializa un único elemento; devuelve nil (sin error) si no existe.
func (uc *ListingUseCase) Detail(kind, pk string) ([]listing.Item, error) {
	if kind == KindSale {
		e, err := uc.events.GetByID(pk)
		if err != nil || e == nil || e.Kind != entity.EventSale {
			return nil, err
		}
		return listing.Detail(saleSchema(), &e), nil
	}
	id, err := strconv.ParseInt(pk, 10, 64)
	if err != nil {
		return nil, nil
	}
	switch kind {
	case KindUser:
		u, err := uc.users.GetByID(id)
		if err != nil || u == nil {
			return nil, err
		}
		groups, err := uc.groups.ListByUser(id)
		if err != nil {
			return nil, err
		}
		specials, err := uc.specialsID()
		if err != nil {
			return nil, err
		}
		row := userRow{User: u, groups: groupIDs(groups)}
		return listing.Detail(userSchema(specials), &row), nil
	case KindShop:
		s, err := uc.shops.GetByID(id)
		if err != nil || s == nil {
			return nil, err
		}
		return listing.Detail(shopSchema(uc.defaultShopID), &s), nil
	case KindProduct:
		p, err := uc.products.GetByID(id)
		if err != nil || p == nil {
			return nil, err
		}
		return listing.Detail(productSchema(uc.settings.Current), &p), nil
	case KindGroup:
		g, err := uc.groups.GetByID(id)
		if err != nil || g == nil {
			return nil, err
		}
		return listing.Detail(groupSchema(), &g), nil
	}
	return nil, domain.ErrNotFound
}

func run[T any](s listing.Schema[T], rows []T, params map[string]string) ([]listing.Item, error) {
	q, err := listing.ParseQuery(s, params)
	if err != nil {
		return nil, err
	}
	return listing.Run(s, rows, q).Items, nil
}

func (uc *ListingUseCase) userRows() ([]userRow, int64, error) {
	users, err := uc.users.List()
	if err != nil {
		return nil, 0, err
	}
	groups, err := uc.groups.List()
	if err != nil {
		return nil, 0, err
	}
	memberOf := make(map[int64][]int64, len(users))
	var specials int64
	for _, g := range groups {
		if g.Name == entity.GroupSpecials {
			specials = g.ID
		}
		ids, err := uc.groups.Members(g.ID)
		if err != nil {
			return nil, 0, err
		}
		for _, uid := range ids {
			memberOf[uid] = append(memberOf[uid], g.ID)
		}
	}
	rows := make([]userRow, len(users))
	for i, u := range users {
		rows[i] = userRow{User: u, groups: memberOf[u.ID]}
	}
	return rows, specials, nil
}

func (uc *ListingUseCase) specialsID() (int64, error) {
	g, err := uc.groups.GetByName(entity.GroupSpecials)
	if err != nil || g == nil {
		return 0, err
	}
	return g.ID, nil
}

func groupIDs(groups []*entity.Group) []int64 {
	out := make([]int64, len(groups))
	for i, g := range groups {
		out[i] = g.ID
	}
	return out
}
