package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/borgia-ae/borgia-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// AutomaticPrice precio calculado: compra × factor corrector × (1 + margen/100), a 2 decimales.
func AutomaticPrice(p *entity.Product, marginProfit decimal.Decimal) decimal.Decimal {
	factor := p.CorrectingFactor
	if factor.IsZero() {
		factor = decimal.NewFromInt(1)
	}
	margin := decimal.NewFromInt(1).Add(marginProfit.Div(hundred))
	return p.UpstreamPrice.Mul(factor).Mul(margin).Round(2)
}

// Price precio de venta vigente: manual si está forzado, si no el automático.
func Price(p *entity.Product, marginProfit decimal.Decimal) decimal.Decimal {
	if p.IsManualPrice {
		return p.ManualPrice
	}
	return AutomaticPrice(p, marginProfit)
}
