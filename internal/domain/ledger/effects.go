package ledger

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/borgia-ae/borgia-api/internal/domain"
	"github.com/borgia-ae/borgia-api/internal/domain/entity"
)

// Delta variación de saldo de un usuario provocada por un evento.
type Delta struct {
	UserID int64
	Amount decimal.Decimal
}

// Validate comprueba la forma del evento según su tipo (sin tocar saldos).
func Validate(e *entity.LedgerEvent) error {
	if !e.Amount.IsPositive() {
		return fmt.Errorf("%w: el importe debe ser positivo", domain.ErrInvalidInput)
	}
	switch e.Kind {
	case entity.EventSale:
		if e.SenderID == 0 || e.ShopID == nil {
			return fmt.Errorf("%w: una venta necesita comprador y tienda", domain.ErrInvalidInput)
		}
		if len(e.Lines) > 0 && !SaleTotal(e.Lines).Equal(e.Amount) {
			return fmt.Errorf("%w: el importe no coincide con las líneas", domain.ErrInvalidInput)
		}
	case entity.EventTransfer:
		if e.SenderID == 0 || e.RecipientID == 0 {
			return fmt.Errorf("%w: una transferencia necesita emisor y receptor", domain.ErrInvalidInput)
		}
		if e.SenderID == e.RecipientID {
			return fmt.Errorf("%w: no se puede transferir a uno mismo", domain.ErrInvalidInput)
		}
	case entity.EventRecharging:
		if e.SenderID == 0 {
			return fmt.Errorf("%w: una recarga necesita beneficiario", domain.ErrInvalidInput)
		}
		switch e.PaymentMethod {
		case entity.PaymentCash, entity.PaymentCheque, entity.PaymentLydia:
		default:
			return fmt.Errorf("%w: medio de pago %q", domain.ErrInvalidInput, e.PaymentMethod)
		}
	case entity.EventExceptional:
		if e.RecipientID == 0 {
			return fmt.Errorf("%w: un movimiento excepcional necesita destinatario", domain.ErrInvalidInput)
		}
		if e.Justification == "" {
			return fmt.Errorf("%w: falta la justificación", domain.ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: tipo de evento %q", domain.ErrInvalidInput, e.Kind)
	}
	return nil
}

// Effects deriva los cambios de saldo del evento.
//   - sale: -amount al comprador
//   - transfer: -amount al emisor, +amount al receptor
//   - recharging: +amount al beneficiario
//   - exceptionalmovement: ±amount al destinatario según IsCredit
func Effects(e *entity.LedgerEvent) []Delta {
	switch e.Kind {
	case entity.EventSale:
		return []Delta{{UserID: e.SenderID, Amount: e.Amount.Neg()}}
	case entity.EventTransfer:
		return []Delta{
			{UserID: e.SenderID, Amount: e.Amount.Neg()},
			{UserID: e.RecipientID, Amount: e.Amount},
		}
	case entity.EventRecharging:
		return []Delta{{UserID: e.SenderID, Amount: e.Amount}}
	case entity.EventExceptional:
		if e.IsCredit {
			return []Delta{{UserID: e.RecipientID, Amount: e.Amount}}
		}
		return []Delta{{UserID: e.RecipientID, Amount: e.Amount.Neg()}}
	}
	return nil
}

// RequiresFunds indica si el evento exige saldo suficiente del emisor.
// Los débitos excepcionales pueden dejar el saldo en negativo.
func RequiresFunds(kind string) bool {
	return kind == entity.EventSale || kind == entity.EventTransfer
}

// LockOrder devuelve los usuarios afectados en orden ascendente (orden de bloqueo de filas).
func LockOrder(deltas []Delta) []int64 {
	seen := make(map[int64]struct{}, len(deltas))
	ids := make([]int64, 0, len(deltas))
	for _, d := range deltas {
		if _, ok := seen[d.UserID]; ok {
			continue
		}
		seen[d.UserID] = struct{}{}
		ids = append(ids, d.UserID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Apply calcula los nuevos saldos. balances debe contener a todos los afectados.
// Devuelve domain.ErrInsufficientBalance si el evento exige fondos y algún débito deja el saldo negativo.
func Apply(e *entity.LedgerEvent, balances map[int64]decimal.Decimal) (map[int64]decimal.Decimal, error) {
	out := make(map[int64]decimal.Decimal, len(balances))
	for id, b := range balances {
		out[id] = b
	}
	for _, d := range Effects(e) {
		cur, ok := out[d.UserID]
		if !ok {
			return nil, fmt.Errorf("%w: usuario %d", domain.ErrUserNotFound, d.UserID)
		}
		next := cur.Add(d.Amount)
		if RequiresFunds(e.Kind) && d.Amount.IsNegative() && next.IsNegative() {
			return nil, domain.ErrInsufficientBalance
		}
		out[d.UserID] = next
	}
	return out, nil
}

// Replay recalcula el saldo de un usuario sumando los efectos de sus eventos.
func Replay(userID int64, events []*entity.LedgerEvent) decimal.Decimal {
	total := decimal.Zero
	for _, e := range events {
		for _, d := range Effects(e) {
			if d.UserID == userID {
				total = total.Add(d.Amount)
			}
		}
	}
	return total
}

// SaleTotal suma las líneas de una venta.
func SaleTotal(lines []entity.SaleLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Total())
	}
	return total
}
