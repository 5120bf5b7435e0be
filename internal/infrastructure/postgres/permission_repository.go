package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/borgia-ae/borgia-api/internal/domain"
	"github.com/borgia-ae/borgia-api/internal/domain/entity"
	"github.com/borgia-ae/borgia-api/internal/domain/repository"
)

var _ repository.PermissionRepository = (*PermissionRepo)(nil)

// PermissionRepo catálogo de permisos sobre PostgreSQL.
type PermissionRepo struct {
	q Querier
}

// NewPermissionRepository construye el adaptador. Acepta pool o tx (Querier).
func NewPermissionRepository(q Querier) *PermissionRepo {
	return &PermissionRepo{q: q}
}

// Ensure crea el permiso si no existe y rellena su ID.
func (r *PermissionRepo) Ensure(perm *entity.Permission) error {
	err := r.q.QueryRow(context.Background(), `
		INSERT INTO permissions (codename, name) VALUES ($1, $2)
		ON CONFLICT (codename) DO UPDATE SET codename = EXCLUDED.codename
		RETURNING id`, perm.Codename, perm.Name,
	).Scan(&perm.ID)
	if err != nil {
		return fmt.Errorf("ensure permission %s: %w", perm.Codename, err)
	}
	return nil
}

// GetByCodename obtiene un permiso por codename.
func (r *PermissionRepo) GetByCodename(codename string) (*entity.Permission, error) {
	var p entity.Permission
	err := r.q.QueryRow(context.Background(),
		`SELECT id, codename, name FROM permissions WHERE codename = $1`, codename,
	).Scan(&p.ID, &p.Codename, &p.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get permission: %w", err)
	}
	return &p, nil
}

// Rename cambia codename y nombre; las concesiones siguen al permiso por id.
func (r *PermissionRepo) Rename(oldCodename, newCodename, name string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE permissions SET codename = $2, name = $3 WHERE codename = $1`, oldCodename, newCodename, name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("rename permission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List todos los permisos ordenados por codename.
func (r *PermissionRepo) List() ([]*entity.Permission, error) {
	rows, err := r.q.Query(context.Background(), `SELECT id, codename, name FROM permissions ORDER BY codename`)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Permission
	for rows.Next() {
		var p entity.Permission
		if err := rows.Scan(&p.ID, &p.Codename, &p.Name); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
