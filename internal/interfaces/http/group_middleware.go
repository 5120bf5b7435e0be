package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/borgia-ae/borgia-api/internal/domain"
	"github.com/borgia-ae/borgia-api/internal/domain/entity"
)

// groupFinder contrato mínimo para resolver el grupo del path.
// Lo implementa *usecase.GroupUseCase.
type groupFinder interface {
	GetByName(name string) (*entity.Group, error)
}

// RequireActingGroup valida el grupo con el que actúa el usuario (parámetro :group_name).
// Debe usarse DESPUÉS de SessionMiddleware.
//
//   - 404 si el grupo no existe.
//   - 403 si el usuario no pertenece al grupo.
func RequireActingGroup(groups groupFinder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Params("group_name")
		g, err := groups.GetByName(name)
		if err != nil {
			return err
		}
		if g == nil {
			return domain.ErrNotFound
		}
		if !GetSubject(c).MemberOf(g.Name) {
			return domain.ErrForbidden
		}
		c.Locals(LocalActingGroup, g)
		return c.Next()
	}
}
