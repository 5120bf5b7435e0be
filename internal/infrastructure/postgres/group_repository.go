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

var _ repository.GroupRepository = (*GroupRepo)(nil)

// Los permisos se agregan en la misma consulta para evitar N+1 al cargar el sujeto.
const groupSelect = `
	SELECT g.id, g.name, g.shop_id, g.role,
		COALESCE(array_agg(p.codename ORDER BY p.codename) FILTER (WHERE p.codename IS NOT NULL), '{}')
	FROM groups g
	LEFT JOIN group_permissions gp ON gp.group_id = g.id
	LEFT JOIN permissions p ON p.id = gp.permission_id`

// GroupRepo grupos, concesiones y membresías sobre PostgreSQL.
type GroupRepo struct {
	q Querier
}

// NewGroupRepository construye el adaptador. Acepta pool o tx (Querier).
func NewGroupRepository(q Querier) *GroupRepo {
	return &GroupRepo{q: q}
}

func scanGroup(row pgx.Row) (*entity.Group, error) {
	var g entity.Group
	if err := row.Scan(&g.ID, &g.Name, &g.ShopID, &g.Role, &g.Permissions); err != nil {
		return nil, err
	}
	return &g, nil
}

// Create inserta el grupo y sus permisos iniciales.
func (r *GroupRepo) Create(group *entity.Group) error {
	ctx := context.Background()
	err := r.q.QueryRow(ctx,
		`INSERT INTO groups (name, shop_id, role) VALUES ($1, $2, $3) RETURNING id`,
		group.Name, group.ShopID, group.Role,
	).Scan(&group.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert group: %w", err)
	}
	for _, codename := range group.Permissions {
		if err := r.grant(ctx, group.ID, codename); err != nil {
			return err
		}
	}
	return nil
}

func (r *GroupRepo) one(where string, arg any) (*entity.Group, error) {
	g, err := scanGroup(r.q.QueryRow(context.Background(), groupSelect+` WHERE `+where+` GROUP BY g.id`, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	return g, nil
}

// GetByID obtiene un grupo con sus permisos.
func (r *GroupRepo) GetByID(id int64) (*entity.Group, error) {
	return r.one(`g.id = $1`, id)
}

// GetByName obtiene un grupo por nombre.
func (r *GroupRepo) GetByName(name string) (*entity.Group, error) {
	return r.one(`g.name = $1`, name)
}

func (r *GroupRepo) many(where string, args ...any) ([]*entity.Group, error) {
	query := groupSelect
	if where != "" {
		query += ` WHERE ` + where
	}
	rows, err := r.q.Query(context.Background(), query+` GROUP BY g.id ORDER BY g.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()
	var list []*entity.Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		list = append(list, g)
	}
	return list, rows.Err()
}

// List todos los grupos.
func (r *GroupRepo) List() ([]*entity.Group, error) {
	return r.many("")
}

// ListByShop grupos ligados a la tienda.
func (r *GroupRepo) ListByShop(shopID int64) ([]*entity.Group, error) {
	return r.many(`g.shop_id = $1`, shopID)
}

// ListByUser grupos del usuario.
func (r *GroupRepo) ListByUser(userID int64) ([]*entity.Group, error) {
	return r.many(`g.id IN (SELECT group_id FROM group_members WHERE user_id = $1)`, userID)
}

// Rename cambia el nombre del grupo.
func (r *GroupRepo) Rename(id int64, name string) error {
	tag, err := r.q.Exec(context.Background(), `UPDATE groups SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("rename group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Members ids de los usuarios del grupo.
func (r *GroupRepo) Members(groupID int64) ([]int64, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT user_id FROM group_members WHERE group_id = $1 ORDER BY user_id`, groupID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[int64])
}

// AddMember añade el usuario al grupo (idempotente).
func (r *GroupRepo) AddMember(groupID, userID int64) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO group_members (group_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, groupID, userID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("add member: %w", err)
	}
	return nil
}

// SetMembers reemplaza los miembros del grupo. Usar dentro de una tx para que sea atómico.
func (r *GroupRepo) SetMembers(groupID int64, userIDs []int64) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM group_members WHERE group_id = $1`, groupID); err != nil {
		return fmt.Errorf("clear members: %w", err)
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO group_members (group_id, user_id) SELECT $1, unnest($2::bigint[]) ON CONFLICT DO NOTHING`,
		groupID, userIDs)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("set members: %w", err)
	}
	return nil
}

// Grant concede el permiso al grupo (idempotente).
func (r *GroupRepo) Grant(groupID int64, codename string) error {
	return r.grant(context.Background(), groupID, codename)
}

func (r *GroupRepo) grant(ctx context.Context, groupID int64, codename string) error {
	tag, err := r.q.Exec(ctx, `
		INSERT INTO group_permissions (group_id, permission_id)
		SELECT $1, id FROM permissions WHERE codename = $2
		ON CONFLICT DO NOTHING`, groupID, codename)
	if err != nil {
		return fmt.Errorf("grant %s: %w", codename, err)
	}
	if tag.RowsAffected() == 0 {
		// Sin fila: el permiso no existe o ya estaba concedido.
		p, err := NewPermissionRepository(r.q).GetByCodename(codename)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: permiso %s", domain.ErrNotFound, codename)
		}
	}
	return nil
}
