package catalog

import (
	"fmt"

	"github.com/borgia-ae/borgia-api/internal/domain/entity"
	"github.com/borgia-ae/borgia-api/internal/domain/repository"
	"github.com/borgia-ae/borgia-api/pkg/logger"
)

// Seeder crea permisos y grupos del catálogo si no existen. Es idempotente.
type Seeder struct {
	cat    *Catalog
	perms  repository.PermissionRepository
	groups repository.GroupRepository
	log    *logger.Logger
}

// NewSeeder construye el seeder.
func NewSeeder(cat *Catalog, perms repository.PermissionRepository, groups repository.GroupRepository, log *logger.Logger) *Seeder {
	return &Seeder{cat: cat, perms: perms, groups: groups, log: log}
}

// Run asegura permisos, grupos y concesiones.
func (s *Seeder) Run() error {
	for _, p := range s.cat.Permissions {
		if err := s.perms.Ensure(&entity.Permission{Codename: p.Codename, Name: p.Name}); err != nil {
			return fmt.Errorf("seed permiso %s: %w", p.Codename, err)
		}
	}
	for _, def := range s.cat.Groups {
		g, err := s.groups.GetByName(def.Name)
		if err != nil {
			return fmt.Errorf("seed grupo %s: %w", def.Name, err)
		}
		if g == nil {
			g = &entity.Group{Name: def.Name}
			if err := s.groups.Create(g); err != nil {
				return fmt.Errorf("seed crear grupo %s: %w", def.Name, err)
			}
			s.log.Info().Str("group", def.Name).Msg("grupo creado")
		}
		for _, codename := range s.cat.Expand(def.Grants) {
			if g.Grants(codename) {
				continue
			}
			if err := s.groups.Grant(g.ID, codename); err != nil {
				return fmt.Errorf("seed conceder %s a %s: %w", codename, def.Name, err)
			}
		}
	}
	return nil
}
