package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto en la tienda de la ruta.
type CreateProductRequest struct {
	Name             string           `json:"name" validate:"required|max_len:255"`
	Unit             string           `json:"unit" validate:"in:,CL,G"`
	UpstreamPrice    decimal.Decimal  `json:"upstream_price"`
	CorrectingFactor *decimal.Decimal `json:"correcting_factor"`
	IsManualPrice    bool             `json:"is_manual_price"`
	ManualPrice      decimal.Decimal  `json:"manual_price"`
}

// UpdateProductRequest entrada para actualizar un producto (campos nil = sin cambio).
type UpdateProductRequest struct {
	Name             *string          `json:"name" validate:"max_len:255"`
	Unit             *string          `json:"unit" validate:"in:,CL,G"`
	UpstreamPrice    *decimal.Decimal `json:"upstream_price"`
	CorrectingFactor *decimal.Decimal `json:"correcting_factor"`
}

// UpdatePriceRequest cambia entre precio manual y automático.
type UpdatePriceRequest struct {
	IsManualPrice bool            `json:"is_manual_price"`
	ManualPrice   decimal.Decimal `json:"manual_price"`
}

// ProductResponse salida de un producto con su precio vigente.
type ProductResponse struct {
	ID               int64           `json:"id"`
	ShopID           int64           `json:"shop_id"`
	Name             string          `json:"name"`
	Unit             string          `json:"unit"`
	IsManualPrice    bool            `json:"is_manual_price"`
	ManualPrice      decimal.Decimal `json:"manual_price"`
	UpstreamPrice    decimal.Decimal `json:"upstream_price"`
	CorrectingFactor decimal.Decimal `json:"correcting_factor"`
	AutomaticPrice   decimal.Decimal `json:"automatic_price"`
	Price            decimal.Decimal `json:"price"`
	IsActive         bool            `json:"is_active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
