package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/borgia-ae/borgia-api/internal/application/ledger"
	"github.com/borgia-ae/borgia-api/internal/application/usecase"
	"github.com/borgia-ae/borgia-api/internal/domain/repository"
)

var (
	_ ledger.TxRunner       = (*TxRunner)(nil)
	_ usecase.AdminTxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) within(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Run transacción del libro: usuarios (con SELECT FOR UPDATE) y eventos.
func (r *TxRunner) Run(ctx context.Context, fn func(
	users repository.UserRepository,
	events repository.LedgerRepository,
) error) error {
	return r.within(ctx, func(tx pgx.Tx) error {
		return fn(NewUserRepository(tx), NewLedgerRepository(tx))
	})
}

// RunAdmin transacción de alta y renombrado de tiendas con sus grupos y permisos.
func (r *TxRunner) RunAdmin(ctx context.Context, fn func(
	shops repository.ShopRepository,
	groups repository.GroupRepository,
	perms repository.PermissionRepository,
) error) error {
	return r.within(ctx, func(tx pgx.Tx) error {
		return fn(NewShopRepository(tx), NewGroupRepository(tx), NewPermissionRepository(tx))
	})
}

// RunMembers transacción de alta de un usuario con sus grupos.
func (r *TxRunner) RunMembers(ctx context.Context, fn func(
	users repository.UserRepository,
	groups repository.GroupRepository,
) error) error {
	return r.within(ctx, func(tx pgx.Tx) error {
		return fn(NewUserRepository(tx), NewGroupRepository(tx))
	})
}
