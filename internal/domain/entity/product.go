package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida de un producto.
const (
	UnitUnit       = ""   // por unidad
	UnitCentiliter = "CL" // fûts
	UnitGram       = "G"
)

// Product pertenece a exactamente una Shop.
// El precio es automático (precio de compra × factor × margen) salvo que IsManualPrice esté activo.
type Product struct {
	ID               int64
	ShopID           int64
	Name             string
	Unit             string
	IsManualPrice    bool
	ManualPrice      decimal.Decimal // >= 0
	UpstreamPrice    decimal.Decimal // precio de compra
	CorrectingFactor decimal.Decimal
	IsActive         bool
	IsRemoved        bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
