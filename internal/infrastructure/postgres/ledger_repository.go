package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/borgia-ae/borgia-api/internal/domain"
	"github.com/borgia-ae/borgia-api/internal/domain/entity"
	"github.com/borgia-ae/borgia-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

const eventColumns = `id, kind, datetime, amount, sender_id, recipient_id, operator_id, shop_id,
	justification, is_credit, payment_method`

const eventSelect = `SELECT id::text, kind, datetime, amount, sender_id, recipient_id, operator_id, shop_id,
	justification, is_credit, payment_method FROM ledger_events`

// LedgerRepo eventos del libro y líneas de venta. Solo inserción y lectura.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Create inserta el evento y, si es una venta, sus líneas.
func (r *LedgerRepo) Create(e *entity.LedgerEvent) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO ledger_events (`+eventColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		e.ID, e.Kind, e.Datetime, e.Amount, nullableID(e.SenderID), nullableID(e.RecipientID),
		nullableID(e.OperatorID), e.ShopID, e.Justification, e.IsCredit, e.PaymentMethod,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert ledger event: %w", err)
	}
	if len(e.Lines) == 0 {
		return nil
	}

	products := make([]int64, len(e.Lines))
	quantities := make([]int32, len(e.Lines))
	prices := make([]decimal.Decimal, len(e.Lines))
	for i, l := range e.Lines {
		products[i] = l.ProductID
		quantities[i] = int32(l.Quantity)
		prices[i] = l.UnitPrice
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO sale_lines (event_id, position, product_id, quantity, unit_price)
		SELECT $1, t.ord, t.product_id, t.quantity, t.unit_price
		FROM unnest($2::bigint[], $3::int[], $4::numeric[]) WITH ORDINALITY AS t(product_id, quantity, unit_price, ord)`,
		e.ID, products, quantities, prices,
	)
	if err != nil {
		return fmt.Errorf("insert sale lines: %w", err)
	}
	return nil
}

func scanEvent(row pgx.Row) (*entity.LedgerEvent, error) {
	var (
		e                             entity.LedgerEvent
		sender, recipient, operatorID *int64
	)
	err := row.Scan(&e.ID, &e.Kind, &e.Datetime, &e.Amount, &sender, &recipient, &operatorID, &e.ShopID,
		&e.Justification, &e.IsCredit, &e.PaymentMethod)
	if err != nil {
		return nil, err
	}
	e.SenderID, e.RecipientID, e.OperatorID = derefID(sender), derefID(recipient), derefID(operatorID)
	return &e, nil
}

// GetByID obtiene un evento con sus líneas.
func (r *LedgerRepo) GetByID(id string) (*entity.LedgerEvent, error) {
	e, err := scanEvent(r.q.QueryRow(context.Background(),
		eventSelect+` WHERE id::text = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger event: %w", err)
	}
	if err := r.loadLines([]*entity.LedgerEvent{e}); err != nil {
		return nil, err
	}
	return e, nil
}

// List eventos filtrados, más recientes primero.
func (r *LedgerRepo) List(f repository.LedgerFilter) ([]*entity.LedgerEvent, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.Kind != "" {
		where = append(where, "kind = "+arg(f.Kind))
	}
	if f.UserID != 0 {
		p := arg(f.UserID)
		where = append(where, "(sender_id = "+p+" OR recipient_id = "+p+")")
	}
	if f.SenderID != 0 {
		where = append(where, "sender_id = "+arg(f.SenderID))
	}
	if f.RecipientID != 0 {
		where = append(where, "recipient_id = "+arg(f.RecipientID))
	}
	if f.ShopID != 0 {
		where = append(where, "shop_id = "+arg(f.ShopID))
	}
	if !f.Since.IsZero() {
		where = append(where, "datetime >= "+arg(f.Since))
	}

	query := eventSelect
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY datetime DESC`
	if f.Limit > 0 {
		query += ` LIMIT ` + arg(f.Limit)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger events: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger event: %w", err)
		}
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()
	if err := r.loadLines(list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadLines carga en una sola consulta las líneas de las ventas de la lista.
func (r *LedgerRepo) loadLines(events []*entity.LedgerEvent) error {
	byID := make(map[string]*entity.LedgerEvent)
	var ids []string
	for _, e := range events {
		if e.Kind == entity.EventSale {
			byID[e.ID] = e
			ids = append(ids, e.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	rows, err := r.q.Query(context.Background(), `
		SELECT event_id::text, product_id, quantity, unit_price
		FROM sale_lines WHERE event_id::text = ANY($1)
		ORDER BY event_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list sale lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			eventID string
			l       entity.SaleLine
		)
		if err := rows.Scan(&eventID, &l.ProductID, &l.Quantity, &l.UnitPrice); err != nil {
			return fmt.Errorf("scan sale line: %w", err)
		}
		if e, ok := byID[eventID]; ok {
			e.Lines = append(e.Lines, l)
		}
	}
	return rows.Err()
}
