package ledger

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/borgia-ae/borgia-api/internal/application/dto"
	"github.com/borgia-ae/borgia-api/internal/domain"
	"github.com/borgia-ae/borgia-api/internal/domain/entity"
	domainledger "github.com/borgia-ae/borgia-api/internal/domain/ledger"
	"github.com/borgia-ae/borgia-api/internal/domain/repository"
	"github.com/borgia-ae/borgia-api/pkg/logger"
)

// MarginSource devuelve la configuración vigente (margen para el precio automático).
type MarginSource interface {
	Current() (*entity.Setting, error)
}

// LedgerUseCase registra ventas, transferencias, recargas y movimientos excepcionales.
// Cada operación inserta el evento y actualiza los saldos en la misma transacción,
// bloqueando las filas de usuario en orden ascendente.
type LedgerUseCase struct {
	tx       TxRunner
	events   repository.LedgerRepository
	products repository.ProductRepository
	settings MarginSource
	log      *logger.Logger
	now      func() time.Time
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	tx TxRunner,
	events repository.LedgerRepository,
	products repository.ProductRepository,
	settings MarginSource,
	log *logger.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{tx: tx, events: events, products: products, settings: settings, log: log, now: time.Now}
}

// Sale registra una venta: el comprador paga el total de las líneas al precio vigente.
func (uc *LedgerUseCase) Sale(ctx context.Context, operatorID, shopID int64, in dto.SaleRequest) (*dto.LedgerEventResponse, error) {
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("%w: venta sin líneas", domain.ErrInvalidInput)
	}
	setting, err := uc.settings.Current()
	if err != nil {
		return nil, err
	}
	lines := make([]entity.SaleLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		// sale_lines.quantity es int4.
		if l.Quantity <= 0 || l.Quantity > math.MaxInt32 {
			return nil, fmt.Errorf("%w: cantidad inválida", domain.ErrInvalidInput)
		}
		p, err := uc.products.GetByID(l.ProductID)
		if err != nil {
			return nil, err
		}
		// Un producto de otra tienda no existe en esta venta.
		if p == nil || p.ShopID != shopID || p.IsRemoved {
			return nil, fmt.Errorf("%w: producto %d", domain.ErrNotFound, l.ProductID)
		}
		if !p.IsActive {
			return nil, fmt.Errorf("%w: producto %d inactivo", domain.ErrConflict, l.ProductID)
		}
		lines = append(lines, entity.SaleLine{
			ProductID: p.ID,
			Quantity:  l.Quantity,
			UnitPrice: domainledger.Price(p, setting.MarginProfit),
		})
	}
	sid := shopID
	e := &entity.LedgerEvent{
		Kind:        entity.EventSale,
		Amount:      domainledger.SaleTotal(lines),
		SenderID:    in.BuyerID,
		RecipientID: operatorID,
		OperatorID:  operatorID,
		ShopID:      &sid,
		Lines:       lines,
	}
	return uc.record(ctx, e)
}

// Transfer transfiere saldo del usuario autenticado a otro miembro.
func (uc *LedgerUseCase) Transfer(ctx context.Context, senderID int64, in dto.TransferRequest) (*dto.LedgerEventResponse, error) {
	return uc.record(ctx, &entity.LedgerEvent{
		Kind:          entity.EventTransfer,
		Amount:        in.Amount,
		SenderID:      senderID,
		RecipientID:   in.RecipientID,
		OperatorID:    senderID,
		Justification: in.Justification,
	})
}

// Recharging acredita una recarga registrada por un operador.
func (uc *LedgerUseCase) Recharging(ctx context.Context, operatorID int64, in dto.RechargingRequest) (*dto.LedgerEventResponse, error) {
	return uc.record(ctx, &entity.LedgerEvent{
		Kind:          entity.EventRecharging,
		Amount:        in.Amount,
		SenderID:      in.UserID,
		OperatorID:    operatorID,
		PaymentMethod: in.PaymentMethod,
	})
}

// ExceptionalMovement acredita o debita a un miembro con justificación.
func (uc *LedgerUseCase) ExceptionalMovement(ctx context.Context, operatorID int64, in dto.ExceptionalMovementRequest) (*dto.LedgerEventResponse, error) {
	return uc.record(ctx, &entity.LedgerEvent{
		Kind:          entity.EventExceptional,
		Amount:        in.Amount,
		SenderID:      operatorID,
		RecipientID:   in.RecipientID,
		OperatorID:    operatorID,
		IsCredit:      in.IsCredit,
		Justification: in.Justification,
	})
}

// ListShopSales ventas de una tienda, más recientes primero.
func (uc *LedgerUseCase) ListShopSales(shopID int64, limit int) ([]dto.LedgerEventResponse, error) {
	events, err := uc.events.List(repository.LedgerFilter{Kind: entity.EventSale, ShopID: shopID, Limit: limit})
	if err != nil {
		return nil, err
	}
	return ToEventResponses(events), nil
}

func (uc *LedgerUseCase) record(ctx context.Context, e *entity.LedgerEvent) (*dto.LedgerEventResponse, error) {
	if err := domainledger.Validate(e); err != nil {
		return nil, err
	}
	e.ID = uuid.New().String()
	e.Datetime = uc.now()
	deltas := domainledger.Effects(e)

	err := uc.tx.Run(ctx, func(users repository.UserRepository, events repository.LedgerRepository) error {
		balances := make(map[int64]decimal.Decimal, len(deltas))
		for _, id := range domainledger.LockOrder(deltas) {
			u, err := users.GetForUpdate(id)
			if err != nil {
				return err
			}
			if u == nil || !u.IsActive {
				return fmt.Errorf("%w: %d", domain.ErrUserNotFound, id)
			}
			balances[id] = u.Balance
		}
		next, err := domainledger.Apply(e, balances)
		if err != nil {
			return err
		}
		if err := events.Create(e); err != nil {
			return err
		}
		for id, b := range next {
			if err := users.UpdateBalance(id, b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientBalance) {
			uc.log.Debug().Str("kind", e.Kind).Int64("sender", e.SenderID).Msg("saldo insuficiente")
		}
		return nil, err
	}
	uc.log.Info().Str("event_id", e.ID).Str("kind", e.Kind).Str("amount", e.Amount.String()).
		Int64("sender", e.SenderID).Int64("recipient", e.RecipientID).Msg("evento registrado")
	out := ToEventResponse(e)
	return &out, nil
}

// ToEventResponse mapea un evento a su DTO.
func ToEventResponse(e *entity.LedgerEvent) dto.LedgerEventResponse {
	out := dto.LedgerEventResponse{
		ID:            e.ID,
		Kind:          e.Kind,
		Datetime:      e.Datetime,
		Amount:        e.Amount,
		SenderID:      e.SenderID,
		RecipientID:   e.RecipientID,
		OperatorID:    e.OperatorID,
		ShopID:        e.ShopID,
		Justification: e.Justification,
		IsCredit:      e.IsCredit,
		PaymentMethod: e.PaymentMethod,
	}
	for _, l := range e.Lines {
		out.Lines = append(out.Lines, dto.SaleLineResponse{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Total:     l.Total(),
		})
	}
	return out
}

// ToEventResponses mapea una lista de eventos.
func ToEventResponses(events []*entity.LedgerEvent) []dto.LedgerEventResponse {
	out := make([]dto.LedgerEventResponse, len(events))
	for i, e := range events {
		out[i] = ToEventResponse(e)
	}
	return out
}
