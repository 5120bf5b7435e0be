package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/borgia-ae/borgia-api/internal/domain/entity"
	"github.com/borgia-ae/borgia-api/internal/domain/repository"
)

var _ repository.SettingRepository = (*SettingRepo)(nil)

// SettingRepo versiones de configuración; nunca se actualiza una fila existente.
type SettingRepo struct {
	q Querier
}

// NewSettingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSettingRepository(q Querier) *SettingRepo {
	return &SettingRepo{q: q}
}

// Current última versión, o nil si no hay ninguna.
func (r *SettingRepo) Current() (*entity.Setting, error) {
	var (
		s         entity.Setting
		updatedBy *int64
	)
	err := r.q.QueryRow(context.Background(), `
		SELECT version, center_name, margin_profit, balance_threshold_purchase, updated_by, created_at
		FROM settings ORDER BY version DESC LIMIT 1`,
	).Scan(&s.Version, &s.CenterName, &s.MarginProfit, &s.BalanceThresholdPurchase, &updatedBy, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("current setting: %w", err)
	}
	s.UpdatedBy = derefID(updatedBy)
	return &s, nil
}

// Append inserta una nueva versión y asigna Version y CreatedAt.
func (r *SettingRepo) Append(s *entity.Setting) error {
	err := r.q.QueryRow(context.Background(), `
		INSERT INTO settings (center_name, margin_profit, balance_threshold_purchase, updated_by)
		VALUES ($1, $2, $3, $4)
		RETURNING version, created_at`,
		s.CenterName, s.MarginProfit, s.BalanceThresholdPurchase, nullableID(s.UpdatedBy),
	).Scan(&s.Version, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("append setting: %w", err)
	}
	return nil
}
