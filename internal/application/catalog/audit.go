package catalog

import (
	"fmt"
	"sort"

	"github.com/borgia-ae/borgia-api/internal/domain/authz"
	"github.com/borgia-ae/borgia-api/internal/domain/repository"
)

// Audit comprueba la convención de nombres de grupos contra lo almacenado y devuelve
// una línea por incoherencia (vacío = todo correcto).
func Audit(cat *Catalog, groups repository.GroupRepository, shops repository.ShopRepository, defaultShopID int64) ([]string, error) {
	gs, err := groups.List()
	if err != nil {
		return nil, err
	}
	ss, err := shops.List()
	if err != nil {
		return nil, err
	}

	declared := make(map[string]bool, len(cat.Groups))
	for _, g := range cat.Groups {
		declared[g.Name] = true
	}
	byName := make(map[string]int64, len(ss))
	for _, s := range ss {
		byName[s.Name] = s.ID
	}

	var issues []string
	seen := make(map[string]bool, len(gs))
	for _, g := range gs {
		seen[g.Name] = true
		shopName, role, ok := authz.ShopFor(g.Name)
		switch {
		case !ok && g.IsShopBound():
			issues = append(issues, fmt.Sprintf("grupo %s ligado a tienda sin rol en el nombre", g.Name))
		case !ok && !declared[g.Name]:
			issues = append(issues, fmt.Sprintf("grupo %s no está en el catálogo", g.Name))
		case ok:
			id, exists := byName[shopName]
			if !exists {
				issues = append(issues, fmt.Sprintf("grupo %s apunta a la tienda inexistente %s", g.Name, shopName))
				continue
			}
			if g.ShopID == nil || *g.ShopID != id || g.Role != role {
				issues = append(issues, fmt.Sprintf("grupo %s no coincide con su tienda o rol", g.Name))
			}
		}
	}

	for _, b := range cat.Baseline {
		if !seen[b] {
			issues = append(issues, fmt.Sprintf("falta el grupo base %s", b))
		}
	}
	for _, s := range ss {
		if s.ID == defaultShopID {
			continue
		}
		for _, role := range authz.ShopRoles {
			if name := authz.GroupFor(s.Name, role); !seen[name] {
				issues = append(issues, fmt.Sprintf("falta el grupo %s de la tienda %s", name, s.Name))
			}
		}
	}
	sort.Strings(issues)
	return issues, nil
}
