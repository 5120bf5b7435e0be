package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpdateSettingRequest crea una nueva versión de la configuración (campos nil = se copian).
type UpdateSettingRequest struct {
	CenterName               *string          `json:"center_name" validate:"max_len:255"`
	MarginProfit             *decimal.Decimal `json:"margin_profit"`
	BalanceThresholdPurchase *decimal.Decimal `json:"balance_threshold_purchase"`
}

// SettingResponse versión vigente de la configuración.
type SettingResponse struct {
	Version                  int64           `json:"version"`
	CenterName               string          `json:"center_name"`
	MarginProfit             decimal.Decimal `json:"margin_profit"`
	BalanceThresholdPurchase decimal.Decimal `json:"balance_threshold_purchase"`
	UpdatedBy                int64           `json:"updated_by,omitempty"`
	CreatedAt                time.Time       `json:"created_at"`
}
