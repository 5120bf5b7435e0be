package authz

import "github.com/borgia-ae/borgia-api/internal/domain/entity"

// Subject es el usuario que actúa con sus grupos cargados.
// Sus capacidades efectivas son la unión de los permisos de sus grupos.
type Subject struct {
	UserID int64
	Groups []*entity.Group
}

// Has indica si algún grupo del usuario concede el permiso.
func (s Subject) Has(codename string) bool {
	for _, g := range s.Groups {
		if g.Grants(codename) {
			return true
		}
	}
	return false
}

// MemberOf indica si el usuario pertenece al grupo con ese nombre.
func (s Subject) MemberOf(name string) bool {
	return s.Group(name) != nil
}

// Group devuelve el grupo del usuario con ese nombre, o nil.
func (s Subject) Group(name string) *entity.Group {
	for _, g := range s.Groups {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// IsAssociationManager indica si el usuario está en presidents.
func (s Subject) IsAssociationManager() bool {
	return s.MemberOf(entity.GroupPresidents)
}

// BoundTo indica si el usuario pertenece a un grupo ligado a la tienda.
func (s Subject) BoundTo(shopID int64) bool {
	for _, g := range s.Groups {
		if g.ShopID != nil && *g.ShopID == shopID {
			return true
		}
	}
	return false
}

// Capabilities unión ordenada por aparición de los permisos del usuario.
func (s Subject) Capabilities() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, g := range s.Groups {
		for _, p := range g.Permissions {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}
