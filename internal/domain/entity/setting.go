package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Setting es una versión de la configuración editable en caliente.
// Cada cambio crea una nueva versión; se lee siempre la última.
type Setting struct {
	Version                  int64
	CenterName               string
	MarginProfit             decimal.Decimal // porcentaje, p. ej. 5 = 5 %
	BalanceThresholdPurchase decimal.Decimal // saldo mínimo para que una venta no avise
	UpdatedBy                int64
	CreatedAt                time.Time
}

// DefaultSetting valores iniciales cuando aún no existe ninguna versión.
func DefaultSetting() *Setting {
	return &Setting{
		CenterName:               "Borgia",
		MarginProfit:             decimal.NewFromInt(5),
		BalanceThresholdPurchase: decimal.Zero,
	}
}
