package usecase

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/borgia-ae/borgia-api/internal/domain/authz"
	"github.com/borgia-ae/borgia-api/internal/domain/entity"
)

// DisplayShopName nombre de tienda para la interfaz ("bar" -> "Bar").
func DisplayShopName(name string) string {
	return cases.Title(language.French).String(name)
}

// DisplayGroupName nombre legible de un grupo ("chiefs-bar" -> "Chefs Bar").
func DisplayGroupName(name string) string {
	if shop, role, ok := authz.ShopFor(name); ok {
		label := "Associés "
		if role == entity.RoleChiefs {
			label = "Chefs "
		}
		return label + DisplayShopName(shop)
	}
	switch name {
	case entity.GroupPresidents:
		return "Présidents"
	case entity.GroupExternals:
		return "Externes"
	case entity.GroupSpecials:
		return "Spéciaux"
	}
	return DisplayShopName(name)
}
