package repository

import (
	"time"

	"github.com/borgia-ae/borgia-api/internal/domain/entity"
)

// LedgerFilter filtros de consulta de eventos (campos vacíos = sin filtro).
// Los resultados se ordenan por fecha descendente.
type LedgerFilter struct {
	Kind        string
	UserID      int64 // eventos donde el usuario es sender o recipient
	SenderID    int64
	RecipientID int64
	ShopID      int64
	Since       time.Time
	Limit       int
}

// LedgerRepository define el puerto para los eventos del libro (solo inserción y lectura).
type LedgerRepository interface {
	Create(event *entity.LedgerEvent) error
	GetByID(id string) (*entity.LedgerEvent, error)
	List(filter LedgerFilter) ([]*entity.LedgerEvent, error)
}
