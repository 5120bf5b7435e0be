package memory

import (
	"sort"
	"time"

	"github.com/borgia-ae/borgia-api/internal/domain"
	"github.com/borgia-ae/borgia-api/internal/domain/entity"
	"github.com/borgia-ae/borgia-api/internal/domain/repository"
)

var (
	_ repository.ShopRepository    = (*ShopRepo)(nil)
	_ repository.ProductRepository = (*ProductRepo)(nil)
)

// ShopRepo tiendas en memoria.
type ShopRepo struct{ base }

func (r *ShopRepo) Create(shop *entity.Shop) error {
	return r.view(func(s *state) error {
		for _, sh := range s.shops {
			if sh.Name == shop.Name {
				return domain.ErrDuplicate
			}
		}
		if shop.ID == 0 {
			shop.ID = s.next("shops")
		} else if shop.ID > s.seq["shops"] {
			s.seq["shops"] = shop.ID
		}
		if shop.CreatedAt.IsZero() {
			shop.CreatedAt = time.Now()
		}
		c := *shop
		s.shops[shop.ID] = &c
		return nil
	})
}

func (r *ShopRepo) GetByID(id int64) (*entity.Shop, error) {
	var out *entity.Shop
	err := r.view(func(s *state) error {
		if sh, ok := s.shops[id]; ok {
			c := *sh
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *ShopRepo) GetByName(name string) (*entity.Shop, error) {
	var out *entity.Shop
	err := r.view(func(s *state) error {
		for _, sh := range s.shops {
			if sh.Name == name {
				c := *sh
				out = &c
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *ShopRepo) Update(shop *entity.Shop) error {
	return r.view(func(s *state) error {
		if _, ok := s.shops[shop.ID]; !ok {
			return domain.ErrNotFound
		}
		for _, sh := range s.shops {
			if sh.ID != shop.ID && sh.Name == shop.Name {
				return domain.ErrDuplicate
			}
		}
		c := *shop
		s.shops[shop.ID] = &c
		return nil
	})
}

func (r *ShopRepo) List() ([]*entity.Shop, error) {
	var out []*entity.Shop
	err := r.view(func(s *state) error {
		for _, sh := range s.shops {
			c := *sh
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

// ProductRepo productos en memoria.
type ProductRepo struct{ base }

func (r *ProductRepo) Create(product *entity.Product) error {
	return r.view(func(s *state) error {
		if _, ok := s.shops[product.ShopID]; !ok {
			return domain.ErrNotFound
		}
		if product.ID == 0 {
			product.ID = s.next("products")
		} else if product.ID > s.seq["products"] {
			s.seq["products"] = product.ID
		}
		now := time.Now()
		if product.CreatedAt.IsZero() {
			product.CreatedAt = now
		}
		product.UpdatedAt = now
		c := *product
		s.products[product.ID] = &c
		return nil
	})
}

func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	var out *entity.Product
	err := r.view(func(s *state) error {
		if p, ok := s.products[id]; ok {
			c := *p
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(product *entity.Product) error {
	return r.view(func(s *state) error {
		if _, ok := s.products[product.ID]; !ok {
			return domain.ErrNotFound
		}
		product.UpdatedAt = time.Now()
		c := *product
		s.products[product.ID] = &c
		return nil
	})
}

func (r *ProductRepo) list(match func(*entity.Product) bool) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.view(func(s *state) error {
		for _, p := range s.products {
			if match(p) {
				c := *p
				out = append(out, &c)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r *ProductRepo) ListByShop(shopID int64) ([]*entity.Product, error) {
	return r.list(func(p *entity.Product) bool { return p.ShopID == shopID && !p.IsRemoved })
}

func (r *ProductRepo) List() ([]*entity.Product, error) {
	return r.list(func(p *entity.Product) bool { return !p.IsRemoved })
}
