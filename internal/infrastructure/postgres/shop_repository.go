package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/borgia-ae/borgia-api/internal/domain"
	"github.com/borgia-ae/borgia-api/internal/domain/entity"
	"github.com/borgia-ae/borgia-api/internal/domain/repository"
)

var _ repository.ShopRepository = (*ShopRepo)(nil)

// ShopRepo tiendas sobre PostgreSQL.
type ShopRepo struct {
	q Querier
}

// NewShopRepository construye el adaptador. Acepta pool o tx (Querier).
func NewShopRepository(q Querier) *ShopRepo {
	return &ShopRepo{q: q}
}

// Create inserta la tienda. Con ID explícito (tienda por defecto) sincroniza la secuencia.
func (r *ShopRepo) Create(shop *entity.Shop) error {
	ctx := context.Background()
	var err error
	if shop.ID != 0 {
		err = r.q.QueryRow(ctx, `
			INSERT INTO shops (id, name, description, color) VALUES ($1, $2, $3, $4)
			RETURNING created_at`, shop.ID, shop.Name, shop.Description, shop.Color,
		).Scan(&shop.CreatedAt)
		if err == nil {
			err = syncSequence(ctx, r.q, "shops")
		}
	} else {
		err = r.q.QueryRow(ctx, `
			INSERT INTO shops (name, description, color) VALUES ($1, $2, $3)
			RETURNING id, created_at`, shop.Name, shop.Description, shop.Color,
		).Scan(&shop.ID, &shop.CreatedAt)
	}
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert shop: %w", err)
	}
	return nil
}

func (r *ShopRepo) one(where string, arg any) (*entity.Shop, error) {
	var s entity.Shop
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, description, color, created_at FROM shops WHERE `+where, arg,
	).Scan(&s.ID, &s.Name, &s.Description, &s.Color, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shop: %w", err)
	}
	return &s, nil
}

// GetByID obtiene una tienda por ID.
func (r *ShopRepo) GetByID(id int64) (*entity.Shop, error) {
	return r.one(`id = $1`, id)
}

// GetByName obtiene una tienda por nombre.
func (r *ShopRepo) GetByName(name string) (*entity.Shop, error) {
	return r.one(`name = $1`, name)
}

// Update actualiza nombre, descripción y color.
func (r *ShopRepo) Update(shop *entity.Shop) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE shops SET name = $2, description = $3, color = $4 WHERE id = $1`,
		shop.ID, shop.Name, shop.Description, shop.Color)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update shop: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List todas las tiendas ordenadas por id.
func (r *ShopRepo) List() ([]*entity.Shop, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, description, color, created_at FROM shops ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	defer rows.Close()
	var list []*entity.Shop
	for rows.Next() {
		var s entity.Shop
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Color, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan shop: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
