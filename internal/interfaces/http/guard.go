package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/borgia-ae/borgia-api/internal/domain"
	"github.com/borgia-ae/borgia-api/internal/domain/authz"
	"github.com/borgia-ae/borgia-api/pkg/logger"
)

// Guard aplica el resolver de permisos en los handlers: NotFound → 404, Deny → 403.
type Guard struct {
	resolver *authz.Resolver
	metrics  *Metrics
	log      *logger.Logger
}

// NewGuard construye el guard. metrics puede ser nil.
func NewGuard(resolver *authz.Resolver, metrics *Metrics, log *logger.Logger) *Guard {
	return &Guard{resolver: resolver, metrics: metrics, log: log}
}

// Require autoriza al sujeto de la sesión y devuelve los recursos ya cargados.
// capability vacío solo exige pertenencia a la tienda del objetivo.
func (g *Guard) Require(c *fiber.Ctx, capability string, t authz.Target) (authz.Resource, error) {
	sub := GetSubject(c)
	verdict, res, err := g.resolver.Authorize(sub, capability, t)
	if err != nil {
		return authz.Resource{}, err
	}
	if g.metrics != nil {
		g.metrics.ObserveVerdict(capability, verdict)
	}
	switch verdict {
	case authz.NotFound:
		return authz.Resource{}, domain.ErrNotFound
	case authz.Deny:
		g.log.Debug().Int64("user_id", sub.UserID).Str("capability", capability).
			Str("scope", string(t.Scope)).Int64("shop_id", t.ShopID).Msg("acceso denegado")
		return authz.Resource{}, domain.ErrForbidden
	}
	return res, nil
}

// paramID lee un id numérico del path. Un id mal formado no corresponde a ningún recurso.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrNotFound
	}
	return id, nil
}
