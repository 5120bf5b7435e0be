package repository

import "github.com/borgia-ae/borgia-api/internal/domain/entity"

// ShopRepository define el puerto de persistencia para Shop (DIP).
type ShopRepository interface {
	Create(shop *entity.Shop) error
	GetByID(id int64) (*entity.Shop, error)
	GetByName(name string) (*entity.Shop, error)
	Update(shop *entity.Shop) error
	List() ([]*entity.Shop, error)
}
