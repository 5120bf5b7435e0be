package entity

// Nombres de grupos con semántica propia.
const (
	GroupPresidents = "presidents"
	GroupExternals  = "externals"
	GroupSpecials   = "specials"
)

// Roles de un grupo ligado a una tienda.
const (
	RoleChiefs     = "chiefs"
	RoleAssociates = "associates"
)

// Group es un conjunto de usuarios con permisos (codenames) concedidos.
// ShopID y Role se guardan explícitamente para los grupos chiefs-/associates-;
// el nombre se mantiene sincronizado con el de la tienda.
type Group struct {
	ID          int64
	Name        string
	ShopID      *int64
	Role        string // chiefs, associates o vacío
	Permissions []string
}

// IsShopBound indica si el grupo gestiona una tienda.
func (g *Group) IsShopBound() bool {
	return g.ShopID != nil
}

// Grants indica si el grupo concede el permiso.
func (g *Group) Grants(codename string) bool {
	for _, p := range g.Permissions {
		if p == codename {
			return true
		}
	}
	return false
}

// Permission es un permiso con codename único (p. ej. add_sale, manage_group_chiefs-bar).
type Permission struct {
	ID       int64
	Codename string
	Name     string
}
