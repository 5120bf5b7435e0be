package repository

import (
	"github.com/shopspring/decimal"

	"github.com/borgia-ae/borgia-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id int64) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	Update(user *entity.User) error
	List() ([]*entity.User, error)
	// GetForUpdate bloquea la fila del usuario (SELECT FOR UPDATE) dentro de una tx.
	GetForUpdate(id int64) (*entity.User, error)
	UpdateBalance(id int64, balance decimal.Decimal) error
	TouchLastLogin(id int64) error
}
