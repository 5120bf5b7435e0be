package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/borgia-ae/borgia-api/internal/application/dto"
	"github.com/borgia-ae/borgia-api/internal/application/usecase"
	"github.com/borgia-ae/borgia-api/internal/domain/authz"
)

// UserHandler gestión de miembros dentro de un grupo.
type UserHandler struct {
	uc      *usecase.UserUseCase
	listing *usecase.ListingUseCase
	guard   *Guard
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase, listing *usecase.ListingUseCase, guard *Guard) *UserHandler {
	return &UserHandler{uc: uc, listing: listing, guard: guard}
}

// List godoc
// @Summary      Listar usuarios
// @Description  Acepta los parámetros del listado genérico (order_by, reverse, search, begin, end y filtros).
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        group_name  path   string  true   "Grupo con el que se actúa"
// @Param        order_by    query  string  false  "Campo de orden"
// @Param        reverse     query  string  false  "True para orden descendente"
// @Success      200  {array}   listing.Item
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /{group_name}/users/ [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	if _, err := h.guard.Require(c, "view_user", authz.Global()); err != nil {
		return err
	}
	items, err := h.listing.List(usecase.KindUser, c.Queries())
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// Create godoc
// @Summary      Crear usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        group_name  path  string                 true  "Grupo con el que se actúa"
// @Param        body        body  dto.CreateUserRequest  true  "Datos del usuario"
// @Success      201  {object}  dto.UserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /{group_name}/users/ [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	if _, err := h.guard.Require(c, "add_user", authz.Global()); err != nil {
		return err
	}
	var in dto.CreateUserRequest
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
// @Summary      Obtener usuario
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        group_name  path  string  true  "Grupo con el que se actúa"
// @Param        pk          path  int     true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /{group_name}/users/{pk}/ [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "pk")
	if err != nil {
		return err
	}
	// Cada usuario puede ver su propia ficha.
	if id != GetUserID(c) {
		if _, err := h.guard.Require(c, "view_user", authz.Global()); err != nil {
			return err
		}
	}
	out, err := h.uc.Get(id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        group_name  path  string                 true  "Grupo con el que se actúa"
// @Param        pk          path  int                    true  "ID del usuario"
// @Param        body        body  dto.UpdateUserRequest  true  "Campos a modificar"
// @Success      200  {object}  dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /{group_name}/users/{pk}/ [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "pk")
	if err != nil {
		return err
	}
	if _, err := h.guard.Require(c, "change_user", authz.Global()); err != nil {
		return err
	}
	return h.update(c, id)
}

// UpdateSelf godoc
// @Summary      Actualizar mis datos
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        group_name  path  string                 true  "Grupo con el que se actúa"
// @Param        body        body  dto.UpdateUserRequest  true  "Campos a modificar"
// @Success      200  {object}  dto.UserResponse
// @Router       /{group_name}/users/self/ [put]
func (h *UserHandler) UpdateSelf(c *fiber.Ctx) error {
	return h.update(c, GetUserID(c))
}

func (h *UserHandler) update(c *fiber.Ctx, id int64) error {
	var in dto.UpdateUserRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar usuario
// @Description  Un usuario puede desactivarse a sí mismo; para otros hace falta deactivate_user.
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        group_name  path  string  true  "Grupo con el que se actúa"
// @Param        pk          path  int     true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /{group_name}/users/{pk}/deactivate/ [post]
func (h *UserHandler) Deactivate(c *fiber.Ctx) error {
	id, err := paramID(c, "pk")
	if err != nil {
		return err
	}
	out, err := h.uc.Deactivate(GetSubject(c), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
