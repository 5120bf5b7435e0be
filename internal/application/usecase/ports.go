package usecase

import (
	"context"

	"github.com/borgia-ae/borgia-api/internal/domain/repository"
)

// AdminTxRunner ejecuta altas y renombrados de tiendas en una transacción:
// tienda, grupos ligados y permisos manage_group_* cambian juntos o no cambian.
type AdminTxRunner interface {
	RunAdmin(ctx context.Context, fn func(
		shops repository.ShopRepository,
		groups repository.GroupRepository,
		perms repository.PermissionRepository,
	) error) error
}

// MembersTxRunner crea un usuario y sus membresías en una misma transacción.
type MembersTxRunner interface {
	RunMembers(ctx context.Context, fn func(
		users repository.UserRepository,
		groups repository.GroupRepository,
	) error) error
}
