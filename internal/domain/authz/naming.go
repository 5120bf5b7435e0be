package authz

import (
	"regexp"

	"github.com/borgia-ae/borgia-api/internal/domain/entity"
)

var shopGroupPattern = regexp.MustCompile(`^(chiefs|associates)-(.+)$`)

// GroupFor compone el nombre del grupo que gestiona la tienda con el rol dado.
func GroupFor(shopName, role string) string {
	return role + "-" + shopName
}

// ShopFor es la inversa parcial de GroupFor: devuelve el nombre de tienda y el rol
// codificados en el nombre del grupo, u ok=false si no sigue la convención.
func ShopFor(groupName string) (shopName, role string, ok bool) {
	m := shopGroupPattern.FindStringSubmatch(groupName)
	if m == nil {
		return "", "", false
	}
	return m[2], m[1], true
}

// ShopRoles roles posibles de un grupo ligado a tienda, en orden de jerarquía.
var ShopRoles = []string{entity.RoleChiefs, entity.RoleAssociates}

// ManagePermission codename del permiso que permite gestionar los miembros del grupo.
func ManagePermission(groupName string) string {
	return "manage_group_" + groupName
}

// ManagePermissionName nombre legible del permiso de gestión.
func ManagePermissionName(groupName string) string {
	return "Gérer le groupe " + groupName
}
