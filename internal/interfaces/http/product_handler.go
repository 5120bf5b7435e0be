package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/borgia-ae/borgia-api/internal/application/dto"
	"github.com/borgia-ae/borgia-api/internal/application/usecase"
	"github.com/borgia-ae/borgia-api/internal/domain/authz"
	"github.com/borgia-ae/borgia-api/internal/domain/entity"
)

// ProductHandler maneja los productos de una tienda.
type ProductHandler struct {
	uc    *usecase.ProductUseCase
	guard *Guard
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, guard *Guard) *ProductHandler {
	return &ProductHandler{uc: uc, guard: guard}
}

// product autoriza sobre el producto del path; un producto de otra tienda es 404.
func (h *ProductHandler) product(c *fiber.Ctx, capability string) (*entity.Product, error) {
	shopID, err := paramID(c, "shop_pk")
	if err != nil {
		return nil, err
	}
	productID, err := paramID(c, "product_pk")
	if err != nil {
		return nil, err
	}
	res, err := h.guard.Require(c, capability, authz.OnProduct(shopID, productID))
	if err != nil {
		return nil, err
	}
	return res.Product, nil
}

// List godoc
// @Summary      Listar productos de la tienda
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        group_name  path  string  true  "Grupo con el que se actúa"
// @Param        shop_pk     path  int     true  "ID de la tienda"
// @Success      200  {array}   dto.ProductResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /{group_name}/shops/{shop_pk}/products/ [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	shopID, err := paramID(c, "shop_pk")
	if err != nil {
		return err
	}
	if _, err := h.guard.Require(c, "view_product", authz.OnShop(shopID)); err != nil {
		return err
	}
	out, err := h.uc.ListByShop(shopID)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        group_name  path  string                    true  "Grupo con el que se actúa"
// @Param        shop_pk     path  int                       true  "ID de la tienda"
// @Param        body        body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /{group_name}/shops/{shop_pk}/products/ [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	shopID, err := paramID(c, "shop_pk")
	if err != nil {
		return err
	}
	if _, err := h.guard.Require(c, "add_product", authz.OnShop(shopID)); err != nil {
		return err
	}
	var in dto.CreateProductRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(shopID, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        group_name  path  string  true  "Grupo con el que se actúa"
// @Param        shop_pk     path  int     true  "ID de la tienda"
// @Param        product_pk  path  int     true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /{group_name}/shops/{shop_pk}/products/{product_pk}/ [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.product(c, "view_product")
	if err != nil {
		return err
	}
	out, err := h.uc.Get(p)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        group_name  path  string                    true  "Grupo con el que se actúa"
// @Param        shop_pk     path  int                       true  "ID de la tienda"
// @Param        product_pk  path  int                       true  "ID del producto"
// @Param        body        body  dto.UpdateProductRequest  true  "Campos a modificar"
// @Success      200  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /{group_name}/shops/{shop_pk}/products/{product_pk}/ [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	p, err := h.product(c, "change_product")
	if err != nil {
		return err
	}
	var in dto.UpdateProductRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(p, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UpdatePrice godoc
// @Summary      Cambiar el precio del producto
// @Description  Activa el precio manual o vuelve al precio automático (coste × factor × margen).
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        group_name  path  string                  true  "Grupo con el que se actúa"
// @Param        shop_pk     path  int                     true  "ID de la tienda"
// @Param        product_pk  path  int                     true  "ID del producto"
// @Param        body        body  dto.UpdatePriceRequest  true  "Precio"
// @Success      200  {object}  dto.ProductResponse
// @Router       /{group_name}/shops/{shop_pk}/products/{product_pk}/price/ [put]
func (h *ProductHandler) UpdatePrice(c *fiber.Ctx) error {
	p, err := h.product(c, "change_price_product")
	if err != nil {
		return err
	}
	var in dto.UpdatePriceRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdatePrice(p, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ToggleActive godoc
// @Summary      Activar o desactivar el producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        group_name  path  string  true  "Grupo con el que se actúa"
// @Param        shop_pk     path  int     true  "ID de la tienda"
// @Param        product_pk  path  int     true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Router       /{group_name}/shops/{shop_pk}/products/{product_pk}/deactivate/ [post]
func (h *ProductHandler) ToggleActive(c *fiber.Ctx) error {
	p, err := h.product(c, "change_product")
	if err != nil {
		return err
	}
	out, err := h.uc.ToggleActive(p)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Remove godoc
// @Summary      Eliminar producto (baja lógica)
// @Tags         products
// @Security     Bearer
// @Param        group_name  path  string  true  "Grupo con el que se actúa"
// @Param        shop_pk     path  int     true  "ID de la tienda"
// @Param        product_pk  path  int     true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /{group_name}/shops/{shop_pk}/products/{product_pk}/ [delete]
func (h *ProductHandler) Remove(c *fiber.Ctx) error {
	p, err := h.product(c, "delete_product")
	if err != nil {
		return err
	}
	if err := h.uc.Remove(p); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
