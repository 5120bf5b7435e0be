package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest producto y cantidad vendidos.
type SaleLineRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"required|min:1|max:2147483647"`
}

// SaleRequest venta en la tienda de la ruta; el precio se calcula en servidor.
type SaleRequest struct {
	BuyerID int64             `json:"buyer_id" validate:"required"`
	Lines   []SaleLineRequest `json:"lines" validate:"required"`
}

// TransferRequest transferencia del usuario autenticado a otro miembro.
type TransferRequest struct {
	RecipientID   int64           `json:"recipient_id" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	Justification string          `json:"justification" validate:"required|max_len:255"`
}

// RechargingRequest recarga del saldo de un miembro registrada por un operador.
type RechargingRequest struct {
	UserID        int64           `json:"user_id" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method" validate:"required|in:cash,cheque,lydia"`
}

// ExceptionalMovementRequest crédito o débito excepcional.
type ExceptionalMovementRequest struct {
	RecipientID   int64           `json:"recipient_id" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	IsCredit      bool            `json:"is_credit"`
	Justification string          `json:"justification" validate:"required|max_len:255"`
}

// SaleLineResponse línea de venta.
type SaleLineResponse struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// LedgerEventResponse salida de un evento del libro.
type LedgerEventResponse struct {
	ID            string             `json:"id"`
	Kind          string             `json:"kind"`
	Datetime      time.Time          `json:"datetime"`
	Amount        decimal.Decimal    `json:"amount"`
	SenderID      int64              `json:"sender_id,omitempty"`
	RecipientID   int64              `json:"recipient_id,omitempty"`
	OperatorID    int64              `json:"operator_id,omitempty"`
	ShopID        *int64             `json:"shop_id,omitempty"`
	Justification string             `json:"justification,omitempty"`
	IsCredit      bool               `json:"is_credit,omitempty"`
	PaymentMethod string             `json:"payment_method,omitempty"`
	Lines         []SaleLineResponse `json:"lines,omitempty"`
}
