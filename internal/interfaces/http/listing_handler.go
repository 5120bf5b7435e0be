package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/borgia-ae/borgia-api/internal/application/usecase"
	"github.com/borgia-ae/borgia-api/internal/domain"
	"github.com/borgia-ae/borgia-api/internal/domain/authz"
	"github.com/borgia-ae/borgia-api/internal/domain/listing"
)

// ListingHandler endpoint genérico de listados y detalle por tipo de recurso.
type ListingHandler struct {
	uc    *usecase.ListingUseCase
	guard *Guard
}

// NewListingHandler construye el handler.
func NewListingHandler(uc *usecase.ListingUseCase, guard *Guard) *ListingHandler {
	return &ListingHandler{uc: uc, guard: guard}
}

func (h *ListingHandler) authorize(c *fiber.Ctx) (string, error) {
	kind := c.Params("kind")
	capability, ok := usecase.Capability(kind)
	if !ok {
		return "", domain.ErrNotFound
	}
	if _, err := h.guard.Require(c, capability, authz.Global()); err != nil {
		return "", err
	}
	return kind, nil
}

// List godoc
// @Summary      Listado genérico
// @Description  Parámetros reservados: order_by, reverse, search, begin, end; el resto son filtros de igualdad.
// @Description  Los campos sensibles nunca se devuelven ni se pueden filtrar.
// @Tags         listing
// @Security     Bearer
// @Produce      json
// @Param        group_name  path   string  true   "Grupo con el que se actúa"
// @Param        kind        path   string  true   "user, shop, product, group o sale"
// @Param        order_by    query  string  false  "Campo o prop de orden"
// @Param        reverse     query  string  false  "True para orden descendente"
// @Param        search      query  string  false  "Prefijo buscado en los campos de búsqueda"
// @Param        begin       query  int     false  "Inicio de la ventana"
// @Param        end         query  int     false  "Fin de la ventana"
// @Success      200  {array}   listing.Item
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /{group_name}/api/{kind}/ [get]
func (h *ListingHandler) List(c *fiber.Ctx) error {
	kind, err := h.authorize(c)
	if err != nil {
		return err
	}
	items, err := h.uc.List(kind, c.Queries())
	if err != nil {
		return err
	}
	if items == nil {
		items = []listing.Item{}
	}
	return c.JSON(items)
}

// Detail godoc
// @Summary      Detalle genérico
// @Description  Devuelve un array de un elemento, o [[]] si no existe.
// @Tags         listing
// @Security     Bearer
// @Produce      json
// @Param        group_name  path  string  true  "Grupo con el que se actúa"
// @Param        kind        path  string  true  "user, shop, product, group o sale"
// @Param        pk          path  string  true  "Clave del elemento"
// @Success      200  {array}   listing.Item
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /{group_name}/api/{kind}/{pk}/ [get]
func (h *ListingHandler) Detail(c *fiber.Ctx) error {
	kind, err := h.authorize(c)
	if err != nil {
		return err
	}
	items, err := h.uc.Detail(kind, c.Params("pk"))
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return c.JSON([][]any{{}})
	}
	return c.JSON(items)
}
