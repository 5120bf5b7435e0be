package ledger

import (
	"context"

	"github.com/borgia-ae/borgia-api/internal/domain/repository"
)

// TxRunner ejecuta operaciones del libro en una transacción (implementado en infraestructura).
// Los repos recibidos están atados a la tx; las filas de usuario se bloquean con GetForUpdate.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		users repository.UserRepository,
		events repository.LedgerRepository,
	) error) error
}
