package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var raw []byte

// All marcador para conceder todos los permisos estáticos.
const All = "all"

// PermissionDef permiso declarado en el catálogo.
type PermissionDef struct {
	Codename string `yaml:"codename"`
	Name     string `yaml:"name"`
}

// GroupDef grupo creado por el seed con sus permisos.
type GroupDef struct {
	Name   string   `yaml:"name"`
	Grants []string `yaml:"grants"`
}

// Catalog permisos estáticos, grupos por defecto y permisos de los roles de tienda.
type Catalog struct {
	Permissions []PermissionDef     `yaml:"permissions"`
	Baseline    []string            `yaml:"baseline"`
	Groups      []GroupDef          `yaml:"groups"`
	ShopRoles   map[string][]string `yaml:"shop_roles"`
	Manages     map[string][]string `yaml:"manages"`
}

// Load decodifica el catálogo embebido y valida que todo permiso concedido esté declarado.
func Load() (*Catalog, error) {
	return Parse(raw)
}

// Parse decodifica un catálogo YAML.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("catalog: decodificar: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	known := c.codenames()
	check := func(owner string, grants []string) error {
		for _, g := range grants {
			if g == All {
				continue
			}
			if _, ok := known[g]; !ok {
				return fmt.Errorf("catalog: %s concede permiso no declarado %q", owner, g)
			}
		}
		return nil
	}
	for _, g := range c.Groups {
		if err := check(g.Name, g.Grants); err != nil {
			return err
		}
	}
	for role, grants := range c.ShopRoles {
		if err := check(role, grants); err != nil {
			return err
		}
	}
	declared := make(map[string]bool, len(c.Groups))
	for _, g := range c.Groups {
		declared[g.Name] = true
	}
	for _, b := range c.Baseline {
		if !declared[b] {
			return fmt.Errorf("catalog: grupo base %q sin declarar", b)
		}
	}
	return nil
}

func (c *Catalog) codenames() map[string]struct{} {
	out := make(map[string]struct{}, len(c.Permissions))
	for _, p := range c.Permissions {
		out[p.Codename] = struct{}{}
	}
	return out
}

// Expand sustituye "all" por la lista de permisos estáticos.
func (c *Catalog) Expand(grants []string) []string {
	var out []string
	for _, g := range grants {
		if g == All {
			for _, p := range c.Permissions {
				out = append(out, p.Codename)
			}
			continue
		}
		out = append(out, g)
	}
	return out
}

// RoleGrants permisos por defecto de un rol de tienda (chiefs, associates).
func (c *Catalog) RoleGrants(role string) []string {
	return c.ShopRoles[role]
}

// RoleManages roles de la misma tienda cuyos miembros puede gestionar el rol.
func (c *Catalog) RoleManages(role string) []string {
	return c.Manages[role]
}
