package dto

import (
	"time"
)

// CreateShopRequest entrada para crear una tienda (crea también sus grupos chiefs-/associates-).
type CreateShopRequest struct {
	Name        string `json:"name" validate:"required|max_len:255|regex:^[a-z0-9_-]+$"`
	Description string `json:"description" validate:"required"`
	Color       string `json:"color" validate:"required|regex:^#[0-9a-fA-F]{6}$"`
}

// UpdateShopRequest entrada para actualizar una tienda. Cambiar Name renombra sus grupos.
type UpdateShopRequest struct {
	Name        *string `json:"name" validate:"max_len:255|regex:^[a-z0-9_-]+$"`
	Description *string `json:"description"`
	Color       *string `json:"color" validate:"regex:^#[0-9a-fA-F]{6}$"`
}

// ShopResponse salida de una tienda.
type ShopResponse struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Color       string         `json:"color"`
	CreatedAt   time.Time      `json:"created_at"`
	Groups      []GroupSummary `json:"groups,omitempty"`
}

// ShopSummary referencia corta a una tienda.
type ShopSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}
