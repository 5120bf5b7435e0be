package authz

import (
	"fmt"

	"github.com/borgia-ae/borgia-api/internal/domain"
	"github.com/borgia-ae/borgia-api/internal/domain/entity"
)

// GroupLookup puerto mínimo para cargar grupos por nombre.
type GroupLookup interface {
	GetByName(name string) (*entity.Group, error)
}

// Baseline grupos que deben existir siempre (páginas de error y contexto por defecto).
type Baseline struct {
	Externals *entity.Group
	Specials  *entity.Group
	Internals *entity.Group
}

// LoadBaseline carga externals, specials y el grupo interno configurado.
// Un grupo ausente es un error de configuración fatal (domain.ErrMissingBaselineGroup).
func LoadBaseline(groups GroupLookup, internals string) (*Baseline, error) {
	load := func(name string) (*entity.Group, error) {
		g, err := groups.GetByName(name)
		if err != nil {
			return nil, fmt.Errorf("cargar grupo %s: %w", name, err)
		}
		if g == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrMissingBaselineGroup, name)
		}
		return g, nil
	}
	var (
		b   Baseline
		err error
	)
	if b.Externals, err = load(entity.GroupExternals); err != nil {
		return nil, err
	}
	if b.Specials, err = load(entity.GroupSpecials); err != nil {
		return nil, err
	}
	if b.Internals, err = load(internals); err != nil {
		return nil, err
	}
	return &b, nil
}

// IsBaseline indica si el nombre es uno de los grupos base.
func (b *Baseline) IsBaseline(name string) bool {
	return name == b.Externals.Name || name == b.Specials.Name || name == b.Internals.Name
}

// FirstJob devuelve el primer grupo del usuario que no sea base (su "puesto"), o nil.
func (b *Baseline) FirstJob(sub Subject) *entity.Group {
	for _, g := range sub.Groups {
		if !b.IsBaseline(g.Name) {
			return g
		}
	}
	return nil
}
