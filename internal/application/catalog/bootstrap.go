package catalog

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/borgia-ae/borgia-api/internal/domain/entity"
	"github.com/borgia-ae/borgia-api/internal/domain/repository"
	"github.com/borgia-ae/borgia-api/pkg/logger"
)

// DefaultShopName nombre de la tienda reservada (ventas sin tienda, excluida de listados).
const DefaultShopName = "default"

// Bootstrap deja la base lista para arrancar: catálogo, tienda por defecto y administrador.
type Bootstrap struct {
	seeder *Seeder
	users  repository.UserRepository
	groups repository.GroupRepository
	shops  repository.ShopRepository
	log    *logger.Logger
}

// NewBootstrap construye el bootstrap sobre los repositorios dados.
func NewBootstrap(
	cat *Catalog,
	perms repository.PermissionRepository,
	groups repository.GroupRepository,
	users repository.UserRepository,
	shops repository.ShopRepository,
	log *logger.Logger,
) *Bootstrap {
	return &Bootstrap{
		seeder: NewSeeder(cat, perms, groups, log),
		users:  users, groups: groups, shops: shops, log: log,
	}
}

// Run siembra el catálogo, la tienda por defecto con el id dado y el usuario admin.
// Con adminPassword vacío no se crea el administrador.
func (b *Bootstrap) Run(defaultShopID int64, adminPassword string) error {
	if err := b.seeder.Run(); err != nil {
		return err
	}
	if err := b.ensureDefaultShop(defaultShopID); err != nil {
		return err
	}
	if adminPassword == "" {
		return nil
	}
	return b.ensureAdmin(adminPassword)
}

func (b *Bootstrap) ensureDefaultShop(id int64) error {
	s, err := b.shops.GetByID(id)
	if err != nil {
		return fmt.Errorf("bootstrap: tienda por defecto: %w", err)
	}
	if s != nil {
		return nil
	}
	s = &entity.Shop{ID: id, Name: DefaultShopName, Description: "Tienda por defecto", Color: "#000000", CreatedAt: time.Now()}
	if err := b.shops.Create(s); err != nil {
		return fmt.Errorf("bootstrap: crear tienda por defecto: %w", err)
	}
	b.log.Info().Int64("shop_id", id).Msg("tienda por defecto creada")
	return nil
}

func (b *Bootstrap) ensureAdmin(password string) error {
	u, err := b.users.GetByUsername(entity.ReservedUsername)
	if err != nil {
		return fmt.Errorf("bootstrap: admin: %w", err)
	}
	if u != nil {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("bootstrap: hash: %w", err)
	}
	u = &entity.User{
		Username:     entity.ReservedUsername,
		PasswordHash: string(hash),
		FirstName:    "Admin",
		LastName:     "Borgia",
		Balance:      decimal.Zero,
		IsActive:     true,
		IsSuperuser:  true,
		IsStaff:      true,
		DateJoined:   time.Now(),
	}
	if err := b.users.Create(u); err != nil {
		return fmt.Errorf("bootstrap: crear admin: %w", err)
	}
	presidents, err := b.groups.GetByName(entity.GroupPresidents)
	if err != nil {
		return err
	}
	if presidents != nil {
		if err := b.groups.AddMember(presidents.ID, u.ID); err != nil {
			return fmt.Errorf("bootstrap: admin en presidents: %w", err)
		}
	}
	b.log.Info().Int64("user_id", u.ID).Msg("usuario admin creado")
	return nil
}
