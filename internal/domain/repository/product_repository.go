package repository

import "github.com/borgia-ae/borgia-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	Update(product *entity.Product) error
	ListByShop(shopID int64) ([]*entity.Product, error)
	List() ([]*entity.Product, error)
}
