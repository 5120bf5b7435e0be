package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/borgia-ae/borgia-api/internal/application/workboard"
	"github.com/borgia-ae/borgia-api/internal/domain/authz"
)

// WorkboardHandler paneles de miembros, presidents y tiendas.
type WorkboardHandler struct {
	uc    *workboard.WorkboardUseCase
	guard *Guard
}

// NewWorkboardHandler construye el handler.
func NewWorkboardHandler(uc *workboard.WorkboardUseCase, guard *Guard) *WorkboardHandler {
	return &WorkboardHandler{uc: uc, guard: guard}
}

// Members godoc
// @Summary      Panel del miembro
// @Description  Últimos movimientos, totales por tienda y gasto mensual de los últimos 12 meses.
// @Tags         workboards
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MembersWorkboardResponse
// @Success      302
// @Router       /members/ [get]
func (h *WorkboardHandler) Members(c *fiber.Ctx) error {
	out, err := h.uc.Members(c.UserContext(), GetSubject(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Managers godoc
// @Summary      Panel de presidents
// @Tags         workboards
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ManagersWorkboardResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /managers/ [get]
func (h *WorkboardHandler) Managers(c *fiber.Ctx) error {
	out, err := h.uc.Managers(c.UserContext(), GetSubject(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Shop godoc
// @Summary      Panel de una tienda con su menú
// @Tags         workboards
// @Security     Bearer
// @Produce      json
// @Param        group_name  path  string  true  "Grupo con el que se actúa"
// @Param        shop_pk     path  int     true  "ID de la tienda"
// @Success      200  {object}  dto.ShopWorkboardResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /{group_name}/shops/{shop_pk}/workboard/ [get]
func (h *WorkboardHandler) Shop(c *fiber.Ctx) error {
	shopID, err := paramID(c, "shop_pk")
	if err != nil {
		return err
	}
	res, err := h.guard.Require(c, "", authz.OnShop(shopID))
	if err != nil {
		return err
	}
	out, err := h.uc.Shop(c.UserContext(), GetSubject(c), GetActingGroup(c).Name, res.Shop)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Checkup godoc
// @Summary      Resumen de actividad de la tienda
// @Tags         workboards
// @Security     Bearer
// @Produce      json
// @Param        group_name  path  string  true  "Grupo con el que se actúa"
// @Param        shop_pk     path  int     true  "ID de la tienda"
// @Success      200  {object}  dto.CheckupResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /{group_name}/shops/{shop_pk}/checkup/ [get]
func (h *WorkboardHandler) Checkup(c *fiber.Ctx) error {
	shopID, err := paramID(c, "shop_pk")
	if err != nil {
		return err
	}
	res, err := h.guard.Require(c, "view_shop", authz.OnShop(shopID))
	if err != nil {
		return err
	}
	out, err := h.uc.Checkup(c.UserContext(), res.Shop)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// CheckupPDF godoc
// @Summary      Resumen de actividad en PDF
// @Tags         workboards
// @Security     Bearer
// @Produce      application/pdf
// @Param        group_name  path  string  true  "Grupo con el que se actúa"
// @Param        shop_pk     path  int     true  "ID de la tienda"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /{group_name}/shops/{shop_pk}/checkup.pdf [get]
func (h *WorkboardHandler) CheckupPDF(c *fiber.Ctx) error {
	shopID, err := paramID(c, "shop_pk")
	if err != nil {
		return err
	}
	res, err := h.guard.Require(c, "view_shop", authz.OnShop(shopID))
	if err != nil {
		return err
	}
	doc, err := h.uc.CheckupPDF(c.UserContext(), res.Shop)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="checkup-%s.pdf"`, res.Shop.Name))
	return c.Send(doc)
}
