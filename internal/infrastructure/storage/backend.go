// Package storage elige el almacenamiento según APP_STORAGE y expone sus repositorios.
package storage

import (
	"context"
	"fmt"

	"github.com/borgia-ae/borgia-api/internal/application/ledger"
	"github.com/borgia-ae/borgia-api/internal/application/usecase"
	"github.com/borgia-ae/borgia-api/internal/domain/repository"
	"github.com/borgia-ae/borgia-api/internal/infrastructure/memory"
	"github.com/borgia-ae/borgia-api/internal/infrastructure/postgres"
	"github.com/borgia-ae/borgia-api/pkg/config"
	"github.com/borgia-ae/borgia-api/pkg/logger"
)

// TxRunner transacciones del libro, de alta de tiendas y de alta de miembros.
type TxRunner interface {
	ledger.TxRunner
	usecase.AdminTxRunner
	usecase.MembersTxRunner
}

// Backend repositorios de un almacenamiento abierto.
type Backend struct {
	Users       repository.UserRepository
	Groups      repository.GroupRepository
	Permissions repository.PermissionRepository
	Shops       repository.ShopRepository
	Products    repository.ProductRepository
	Events      repository.LedgerRepository
	Settings    repository.SettingRepository
	Tx          TxRunner

	closeFn func()
}

// Close libera las conexiones (no-op en memoria).
func (b *Backend) Close() {
	if b.closeFn != nil {
		b.closeFn()
	}
}

// Open abre PostgreSQL (con migraciones si DB.AutoMigrate) o el store en memoria.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Backend, error) {
	if cfg.App.Storage == "memory" {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return Memory(memory.NewStore()), nil
	}

	if cfg.DB.AutoMigrate {
		if err := Migrate(cfg.DB, func(m *postgres.Migrator) error { return m.Up() }); err != nil {
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return &Backend{
		Users:       postgres.NewUserRepository(pool),
		Groups:      postgres.NewGroupRepository(pool),
		Permissions: postgres.NewPermissionRepository(pool),
		Shops:       postgres.NewShopRepository(pool),
		Products:    postgres.NewProductRepository(pool),
		Events:      postgres.NewLedgerRepository(pool),
		Settings:    postgres.NewSettingRepository(pool),
		Tx:          postgres.NewTxRunner(pool),
		closeFn:     pool.Close,
	}, nil
}

// Memory envuelve un store en memoria ya creado.
func Memory(st *memory.Store) *Backend {
	return &Backend{
		Users:       st.Users(),
		Groups:      st.Groups(),
		Permissions: st.Permissions(),
		Shops:       st.Shops(),
		Products:    st.Products(),
		Events:      st.Ledger(),
		Settings:    st.Settings(),
		Tx:          st,
	}
}

// Migrate abre el migrador sobre la base configurada, ejecuta fn y lo cierra.
func Migrate(cfg config.DBConfig, fn func(m *postgres.Migrator) error) error {
	m, err := postgres.NewMigrator(cfg.ConnectionString())
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()
	return fn(m)
}
