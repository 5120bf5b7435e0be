package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/borgia-ae/borgia-api/internal/application/dto"
	"github.com/borgia-ae/borgia-api/internal/application/usecase"
)

// GroupHandler gestión de miembros de un grupo (exige manage_group_<nombre>).
type GroupHandler struct {
	uc *usecase.GroupUseCase
}

// NewGroupHandler construye el handler.
func NewGroupHandler(uc *usecase.GroupUseCase) *GroupHandler {
	return &GroupHandler{uc: uc}
}

// GetByID godoc
// @Summary      Obtener grupo con sus miembros
// @Tags         groups
// @Security     Bearer
// @Produce      json
// @Param        group_name  path  string  true  "Grupo con el que se actúa"
// @Param        pk          path  int     true  "ID del grupo gestionado"
// @Success      200  {object}  dto.GroupResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /{group_name}/groups/{pk}/ [get]
func (h *GroupHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "pk")
	if err != nil {
		return err
	}
	out, err := h.uc.Get(GetSubject(c), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UpdateMembers godoc
// @Summary      Reemplazar los miembros del grupo
// @Tags         groups
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        group_name  path  string                         true  "Grupo con el que se actúa"
// @Param        pk          path  int                            true  "ID del grupo gestionado"
// @Param        body        body  dto.UpdateGroupMembersRequest  true  "IDs de los miembros"
// @Success      200  {object}  dto.GroupResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /{group_name}/groups/{pk}/ [put]
func (h *GroupHandler) UpdateMembers(c *fiber.Ctx) error {
	id, err := paramID(c, "pk")
	if err != nil {
		return err
	}
	var in dto.UpdateGroupMembersRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateMembers(GetSubject(c), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
