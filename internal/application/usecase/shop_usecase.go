package usecase

import (
	"context"
	"fmt"

	"github.com/borgia-ae/borgia-api/internal/application/catalog"
	"github.com/borgia-ae/borgia-api/internal/application/dto"
	"github.com/borgia-ae/borgia-api/internal/domain"
	"github.com/borgia-ae/borgia-api/internal/domain/authz"
	"github.com/borgia-ae/borgia-api/internal/domain/entity"
	"github.com/borgia-ae/borgia-api/internal/domain/repository"
	"github.com/borgia-ae/borgia-api/pkg/logger"
)

// ShopUseCase alta, consulta y renombrado de tiendas.
// Cada tienda tiene exactamente dos grupos ligados (chiefs-/associates-) y sus permisos de gestión.
type ShopUseCase struct {
	shops         repository.ShopRepository
	groups        repository.GroupRepository
	tx            AdminTxRunner
	cat           *catalog.Catalog
	defaultShopID int64
	log           *logger.Logger
}

// NewShopUseCase construye el caso de uso.
func NewShopUseCase(
	shops repository.ShopRepository,
	groups repository.GroupRepository,
	tx AdminTxRunner,
	cat *catalog.Catalog,
	defaultShopID int64,
	log *logger.Logger,
) *ShopUseCase {
	return &ShopUseCase{shops: shops, groups: groups, tx: tx, cat: cat, defaultShopID: defaultShopID, log: log}
}

// Create crea la tienda, sus grupos chiefs-/associates- con los permisos por defecto y los
// permisos manage_group_* (concedidos a presidents y al rol que gestiona al otro), todo en una tx.
func (uc *ShopUseCase) Create(ctx context.Context, in dto.CreateShopRequest) (*dto.ShopResponse, error) {
	shop := &entity.Shop{Name: in.Name, Description: in.Description, Color: in.Color}
	var created []*entity.Group

	err := uc.tx.RunAdmin(ctx, func(shops repository.ShopRepository, groups repository.GroupRepository, perms repository.PermissionRepository) error {
		existing, err := shops.GetByName(in.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		if err := shops.Create(shop); err != nil {
			return err
		}
		presidents, err := groups.GetByName(entity.GroupPresidents)
		if err != nil {
			return err
		}

		byRole := make(map[string]*entity.Group, len(authz.ShopRoles))
		for _, role := range authz.ShopRoles {
			name := authz.GroupFor(shop.Name, role)
			if err := perms.Ensure(&entity.Permission{
				Codename: authz.ManagePermission(name),
				Name:     authz.ManagePermissionName(name),
			}); err != nil {
				return err
			}
			shopID := shop.ID
			g := &entity.Group{
				Name:        name,
				ShopID:      &shopID,
				Role:        role,
				Permissions: append([]string{}, uc.cat.RoleGrants(role)...),
			}
			if err := groups.Create(g); err != nil {
				return fmt.Errorf("crear grupo %s: %w", name, err)
			}
			byRole[role] = g
			created = append(created, g)
			if presidents != nil {
				if err := groups.Grant(presidents.ID, authz.ManagePermission(name)); err != nil {
					return err
				}
			}
		}
		for _, role := range authz.ShopRoles {
			for _, managed := range uc.cat.RoleManages(role) {
				target, ok := byRole[managed]
				if !ok {
					continue
				}
				if err := groups.Grant(byRole[role].ID, authz.ManagePermission(target.Name)); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("shop_id", shop.ID).Str("shop", shop.Name).Msg("tienda creada")
	return toShopResponse(shop, created), nil
}

// Update modifica la tienda. Si cambia el nombre renombra en la misma tx sus grupos y los
// permisos manage_group_* para que la convención de nombres siga siendo válida.
func (uc *ShopUseCase) Update(ctx context.Context, id int64, in dto.UpdateShopRequest) (*dto.ShopResponse, error) {
	var (
		shop   *entity.Shop
		groups []*entity.Group
	)
	err := uc.tx.RunAdmin(ctx, func(shops repository.ShopRepository, groupRepo repository.GroupRepository, perms repository.PermissionRepository) error {
		var err error
		shop, err = shops.GetByID(id)
		if err != nil {
			return err
		}
		if shop == nil {
			return domain.ErrNotFound
		}
		oldName := shop.Name
		if in.Description != nil {
			shop.Description = *in.Description
		}
		if in.Color != nil {
			shop.Color = *in.Color
		}
		if in.Name != nil {
			shop.Name = *in.Name
		}
		if err := shops.Update(shop); err != nil {
			return err
		}
		groups, err = groupRepo.ListByShop(shop.ID)
		if err != nil {
			return err
		}
		if shop.Name == oldName {
			return nil
		}
		for _, g := range groups {
			newName := authz.GroupFor(shop.Name, g.Role)
			if err := perms.Rename(authz.ManagePermission(g.Name), authz.ManagePermission(newName), authz.ManagePermissionName(newName)); err != nil {
				return fmt.Errorf("renombrar permiso de %s: %w", g.Name, err)
			}
			if err := groupRepo.Rename(g.ID, newName); err != nil {
				return fmt.Errorf("renombrar grupo %s: %w", g.Name, err)
			}
			g.Name = newName
		}
		uc.log.Info().Int64("shop_id", shop.ID).Str("from", oldName).Str("to", shop.Name).Msg("tienda renombrada")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toShopResponse(shop, groups), nil
}

// Get devuelve la tienda con sus grupos ligados.
func (uc *ShopUseCase) Get(id int64) (*dto.ShopResponse, error) {
	shop, err := uc.shops.GetByID(id)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, domain.ErrNotFound
	}
	groups, err := uc.groups.ListByShop(id)
	if err != nil {
		return nil, err
	}
	return toShopResponse(shop, groups), nil
}

// List devuelve las tiendas sin la tienda por defecto.
func (uc *ShopUseCase) List() ([]dto.ShopResponse, error) {
	shops, err := uc.shops.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ShopResponse, 0, len(shops))
	for _, s := range shops {
		if s.ID == uc.defaultShopID {
			continue
		}
		out = append(out, *toShopResponse(s, nil))
	}
	return out, nil
}

// Summaries referencias cortas de las tiendas visibles (contexto de navegación).
func (uc *ShopUseCase) Summaries() ([]dto.ShopSummary, error) {
	shops, err := uc.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ShopSummary, len(shops))
	for i, s := range shops {
		out[i] = dto.ShopSummary{ID: s.ID, Name: s.Name, Color: s.Color}
	}
	return out, nil
}

func toShopResponse(s *entity.Shop, groups []*entity.Group) *dto.ShopResponse {
	out := &dto.ShopResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Color:       s.Color,
		CreatedAt:   s.CreatedAt,
	}
	for _, g := range groups {
		out.Groups = append(out.Groups, dto.GroupSummary{ID: g.ID, Name: g.Name})
	}
	return out
}
