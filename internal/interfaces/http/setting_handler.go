package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/borgia-ae/borgia-api/internal/application/dto"
	"github.com/borgia-ae/borgia-api/internal/application/usecase"
	"github.com/borgia-ae/borgia-api/internal/domain/authz"
)

// SettingHandler configuración global de la asociación.
type SettingHandler struct {
	uc    *usecase.SettingUseCase
	guard *Guard
}

// NewSettingHandler construye el handler.
func NewSettingHandler(uc *usecase.SettingUseCase, guard *Guard) *SettingHandler {
	return &SettingHandler{uc: uc, guard: guard}
}

// Get godoc
// @Summary      Configuración vigente
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Param        group_name  path  string  true  "Grupo con el que se actúa"
// @Success      200  {object}  dto.SettingResponse
// @Router       /{group_name}/settings/ [get]
func (h *SettingHandler) Get(c *fiber.Ctx) error {
	if _, err := h.guard.Require(c, "view_setting", authz.Global()); err != nil {
		return err
	}
	out, err := h.uc.Get()
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Modificar la configuración
// @Description  Cada cambio crea una versión nueva; las anteriores se conservan.
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        group_name  path  string                    true  "Grupo con el que se actúa"
// @Param        body        body  dto.UpdateSettingRequest  true  "Campos a modificar"
// @Success      200  {object}  dto.SettingResponse
// @Router       /{group_name}/settings/ [put]
func (h *SettingHandler) Update(c *fiber.Ctx) error {
	if _, err := h.guard.Require(c, "change_setting", authz.Global()); err != nil {
		return err
	}
	var in dto.UpdateSettingRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
