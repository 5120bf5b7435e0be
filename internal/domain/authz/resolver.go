package authz

import (
	"errors"
	"fmt"

	"github.com/borgia-ae/borgia-api/internal/domain"
	"github.com/borgia-ae/borgia-api/internal/domain/entity"
)

// Verdict resultado de una decisión de autorización.
type Verdict int

const (
	Deny Verdict = iota
	Allow
	NotFound
)

func (v Verdict) String() string {
	switch v {
	case Allow:
		return "allow"
	case NotFound:
		return "not_found"
	default:
		return "deny"
	}
}

// Scope tipo de recurso sobre el que se actúa.
type Scope string

const (
	ScopeGlobal  Scope = "global"
	ScopeShop    Scope = "shop"
	ScopeProduct Scope = "product"
)

// Target recurso objetivo de una acción. ShopID/ProductID según Scope.
type Target struct {
	Scope     Scope
	ShopID    int64
	ProductID int64
}

// Global objetivo sin tienda.
func Global() Target { return Target{Scope: ScopeGlobal} }

// OnShop objetivo ligado a una tienda.
func OnShop(shopID int64) Target { return Target{Scope: ScopeShop, ShopID: shopID} }

// OnProduct objetivo ligado a un producto de una tienda.
func OnProduct(shopID, productID int64) Target {
	return Target{Scope: ScopeProduct, ShopID: shopID, ProductID: productID}
}

// Resource recursos cargados al resolver un Target.
type Resource struct {
	Shop    *entity.Shop
	Product *entity.Product
}

// ScopeStrategy resuelve un Target a sus recursos.
// Devuelve domain.ErrNotFound si el recurso no existe en ese contexto.
type ScopeStrategy interface {
	Resolve(t Target) (Resource, error)
}

// ShopLookup puerto mínimo para cargar tiendas.
type ShopLookup interface {
	GetByID(id int64) (*entity.Shop, error)
}

// ProductLookup puerto mínimo para cargar productos.
type ProductLookup interface {
	GetByID(id int64) (*entity.Product, error)
}

type globalScope struct{}

func (globalScope) Resolve(Target) (Resource, error) { return Resource{}, nil }

type shopScope struct{ shops ShopLookup }

func (s shopScope) Resolve(t Target) (Resource, error) {
	shop, err := s.shops.GetByID(t.ShopID)
	if err != nil {
		return Resource{}, fmt.Errorf("resolver tienda: %w", err)
	}
	if shop == nil {
		return Resource{}, domain.ErrNotFound
	}
	return Resource{Shop: shop}, nil
}

type productScope struct {
	shop     shopScope
	products ProductLookup
}

func (s productScope) Resolve(t Target) (Resource, error) {
	res, err := s.shop.Resolve(t)
	if err != nil {
		return Resource{}, err
	}
	p, err := s.products.GetByID(t.ProductID)
	if err != nil {
		return Resource{}, fmt.Errorf("resolver producto: %w", err)
	}
	// Un producto de otra tienda no existe en este contexto.
	if p == nil || p.IsRemoved || p.ShopID != res.Shop.ID {
		return Resource{}, domain.ErrNotFound
	}
	res.Product = p
	return res, nil
}

// Resolver decide si un usuario puede ejecutar una acción sobre un recurso.
// No tiene efectos secundarios: el llamador traduce el veredicto a 403/404.
type Resolver struct {
	strategies map[Scope]ScopeStrategy
}

// NewResolver construye el resolver con las estrategias global, shop y product.
func NewResolver(shops ShopLookup, products ProductLookup) *Resolver {
	ss := shopScope{shops: shops}
	return &Resolver{strategies: map[Scope]ScopeStrategy{
		ScopeGlobal:  globalScope{},
		ScopeShop:    ss,
		ScopeProduct: productScope{shop: ss, products: products},
	}}
}

// WithStrategy registra o reemplaza la estrategia de un scope.
func (r *Resolver) WithStrategy(scope Scope, s ScopeStrategy) *Resolver {
	r.strategies[scope] = s
	return r
}

// Authorize evalúa, en orden: existencia del recurso (NotFound), permiso base (Deny),
// presidents (Allow), objetivo global (Allow) y pertenencia a un grupo de la tienda.
// Los recursos cargados se devuelven para que el handler no los vuelva a consultar.
func (r *Resolver) Authorize(sub Subject, capability string, t Target) (Verdict, Resource, error) {
	strategy, ok := r.strategies[t.Scope]
	if !ok {
		return Deny, Resource{}, fmt.Errorf("scope desconocido %q", t.Scope)
	}
	res, err := strategy.Resolve(t)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return NotFound, Resource{}, nil
		}
		return Deny, Resource{}, err
	}
	if capability != "" && !sub.Has(capability) {
		return Deny, res, nil
	}
	if sub.IsAssociationManager() {
		return Allow, res, nil
	}
	if res.Shop == nil {
		return Allow, res, nil
	}
	if sub.BoundTo(res.Shop.ID) {
		return Allow, res, nil
	}
	return Deny, res, nil
}
