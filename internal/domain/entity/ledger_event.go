package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de evento del libro.
const (
	EventSale        = "sale"
	EventTransfer    = "transfer"
	EventRecharging  = "recharging"
	EventExceptional = "exceptionalmovement"
)

// Medios de pago de una recarga.
const (
	PaymentCash   = "cash"
	PaymentCheque = "cheque"
	PaymentLydia  = "lydia"
)

// LedgerEvent es un movimiento inmutable que afecta saldos.
// Sale: Sender paga (Recipient es el operador de la tienda). Transfer: Sender -> Recipient.
// Recharging: Sender recibe el dinero, Operator lo registra. ExceptionalMovement: afecta a Recipient según IsCredit.
type LedgerEvent struct {
	ID            string
	Kind          string
	Datetime      time.Time
	Amount        decimal.Decimal // siempre > 0; el signo lo da el tipo
	SenderID      int64
	RecipientID   int64
	OperatorID    int64
	ShopID        *int64
	Justification string
	IsCredit      bool
	PaymentMethod string
	Lines         []SaleLine
}

// SaleLine detalle de una venta.
type SaleLine struct {
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
}

// Total precio de la línea.
func (l SaleLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
