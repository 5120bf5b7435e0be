package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gookit/validate"

	"github.com/borgia-ae/borgia-api/internal/domain"
)

// bind parsea el cuerpo (JSON o formulario) y aplica las reglas validate del DTO.
func bind(c *fiber.Ctx, in any) error {
	if err := c.BodyParser(in); err != nil {
		return fmt.Errorf("%w: cuerpo inválido", domain.ErrInvalidInput)
	}
	v := validate.Struct(in)
	if !v.Validate() {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, v.Errors.One())
	}
	return nil
}
