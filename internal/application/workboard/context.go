package workboard

import (
	"strings"

	"github.com/borgia-ae/borgia-api/internal/application/dto"
	"github.com/borgia-ae/borgia-api/internal/domain/authz"
	"github.com/borgia-ae/borgia-api/internal/domain/repository"
)

// ShopSummaries fuente de las tiendas listables (excluye la tienda por defecto).
type ShopSummaries interface {
	Summaries() ([]dto.ShopSummary, error)
}

// ErrorContextBuilder reconstruye la navegación para las respuestas de error.
type ErrorContextBuilder struct {
	groups   repository.GroupRepository
	shops    ShopSummaries
	baseline *authz.Baseline
}

// NewErrorContextBuilder construye el builder.
func NewErrorContextBuilder(groups repository.GroupRepository, shops ShopSummaries, baseline *authz.Baseline) *ErrorContextBuilder {
	return &ErrorContextBuilder{groups: groups, shops: shops, baseline: baseline}
}

// Build usa el primer segmento del path como grupo si existe; si no, el grupo interno.
// Los errores de carga se ignoran: el contexto es opcional.
func (b *ErrorContextBuilder) Build(sub authz.Subject, path string) *dto.ErrorContext {
	ctx := &dto.ErrorContext{GroupName: b.baseline.Internals.Name, Shops: []dto.ShopSummary{}}

	if seg := firstSegment(path); seg != "" {
		if g, err := b.groups.GetByName(seg); err == nil && g != nil {
			ctx.GroupName = g.Name
		}
	}
	if job := b.baseline.FirstJob(sub); job != nil {
		ctx.FirstJob = job.Name
	}
	if shops, err := b.shops.Summaries(); err == nil {
		ctx.Shops = shops
	}
	return ctx
}

func firstSegment(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	return path
}
