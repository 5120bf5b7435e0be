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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, shop_id, name, unit, is_manual_price, manual_price, upstream_price,
	correcting_factor, is_active, is_removed, created_at, updated_at`

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.ShopID, &p.Name, &p.Unit, &p.IsManualPrice, &p.ManualPrice, &p.UpstreamPrice,
		&p.CorrectingFactor, &p.IsActive, &p.IsRemoved, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un producto y asigna ID y fechas.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (shop_id, name, unit, is_manual_price, manual_price, upstream_price,
			correcting_factor, is_active, is_removed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(context.Background(), query,
		product.ShopID, product.Name, product.Unit, product.IsManualPrice, product.ManualPrice,
		product.UpstreamPrice, product.CorrectingFactor, product.IsActive, product.IsRemoved,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: tienda %d", domain.ErrNotFound, product.ShopID)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID (incluidos los eliminados).
func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(context.Background(), `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza el producto; la tienda no cambia nunca.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, unit = $3, is_manual_price = $4, manual_price = $5, upstream_price = $6,
			correcting_factor = $7, is_active = $8, is_removed = $9, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`
	err := r.q.QueryRow(context.Background(), query,
		product.ID, product.Name, product.Unit, product.IsManualPrice, product.ManualPrice, product.UpstreamPrice,
		product.CorrectingFactor, product.IsActive, product.IsRemoved,
	).Scan(&product.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (r *ProductRepo) list(where string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE NOT is_removed `+where+` ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ListByShop productos no eliminados de la tienda.
func (r *ProductRepo) ListByShop(shopID int64) ([]*entity.Product, error) {
	return r.list(`AND shop_id = $1`, shopID)
}

// List todos los productos no eliminados.
func (r *ProductRepo) List() ([]*entity.Product, error) {
	return r.list("")
}
