package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/borgia-ae/borgia-api/internal/application/dto"
	"github.com/borgia-ae/borgia-api/internal/application/usecase"
	"github.com/borgia-ae/borgia-api/internal/domain/authz"
)

// ShopHandler alta y gestión de tiendas.
type ShopHandler struct {
	uc    *usecase.ShopUseCase
	guard *Guard
}

// NewShopHandler construye el handler.
func NewShopHandler(uc *usecase.ShopUseCase, guard *Guard) *ShopHandler {
	return &ShopHandler{uc: uc, guard: guard}
}

// List godoc
// @Summary      Listar tiendas
// @Tags         shops
// @Security     Bearer
// @Produce      json
// @Param        group_name  path  string  true  "Grupo con el que se actúa"
// @Success      200  {array}   dto.ShopResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /{group_name}/shops/ [get]
func (h *ShopHandler) List(c *fiber.Ctx) error {
	if _, err := h.guard.Require(c, "view_shop", authz.Global()); err != nil {
		return err
	}
	out, err := h.uc.List()
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear tienda
// @Description  Crea también los grupos chiefs-/associates- y sus permisos de gestión.
// @Tags         shops
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        group_name  path  string                 true  "Grupo con el que se actúa"
// @Param        body        body  dto.CreateShopRequest  true  "Datos de la tienda"
// @Success      201  {object}  dto.ShopResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /{group_name}/shops/ [post]
func (h *ShopHandler) Create(c *fiber.Ctx) error {
	if _, err := h.guard.Require(c, "add_shop", authz.Global()); err != nil {
		return err
	}
	var in dto.CreateShopRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener tienda
// @Tags         shops
// @Security     Bearer
// @Produce      json
// @Param        group_name  path  string  true  "Grupo con el que se actúa"
// @Param        shop_pk     path  int     true  "ID de la tienda"
// @Success      200  {object}  dto.ShopResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /{group_name}/shops/{shop_pk}/ [get]
func (h *ShopHandler) GetByID(c *fiber.Ctx) error {
	shopID, err := paramID(c, "shop_pk")
	if err != nil {
		return err
	}
	if _, err := h.guard.Require(c, "view_shop", authz.OnShop(shopID)); err != nil {
		return err
	}
	out, err := h.uc.Get(shopID)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar tienda
// @Description  Un cambio de nombre renombra sus grupos y permisos en la misma transacción.
// @Tags         shops
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        group_name  path  string                 true  "Grupo con el que se actúa"
// @Param        shop_pk     path  int                    true  "ID de la tienda"
// @Param        body        body  dto.UpdateShopRequest  true  "Campos a modificar"
// @Success      200  {object}  dto.ShopResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /{group_name}/shops/{shop_pk}/ [put]
func (h *ShopHandler) Update(c *fiber.Ctx) error {
	shopID, err := paramID(c, "shop_pk")
	if err != nil {
		return err
	}
	if _, err := h.guard.Require(c, "change_shop", authz.OnShop(shopID)); err != nil {
		return err
	}
	var in dto.UpdateShopRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), shopID, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
