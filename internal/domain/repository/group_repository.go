package repository

import "github.com/borgia-ae/borgia-api/internal/domain/entity"

// GroupRepository define el puerto de persistencia para Group y sus membresías.
// Los grupos devueltos incluyen sus Permissions.
type GroupRepository interface {
	Create(group *entity.Group) error
	GetByID(id int64) (*entity.Group, error)
	GetByName(name string) (*entity.Group, error)
	List() ([]*entity.Group, error)
	ListByShop(shopID int64) ([]*entity.Group, error)
	ListByUser(userID int64) ([]*entity.Group, error)
	Rename(id int64, name string) error
	Members(groupID int64) ([]int64, error)
	AddMember(groupID, userID int64) error
	SetMembers(groupID int64, userIDs []int64) error
	Grant(groupID int64, codename string) error
}

// PermissionRepository define el puerto para el catálogo de permisos.
type PermissionRepository interface {
	// Ensure crea el permiso si no existe (idempotente).
	Ensure(perm *entity.Permission) error
	GetByCodename(codename string) (*entity.Permission, error)
	Rename(oldCodename, newCodename, name string) error
	List() ([]*entity.Permission, error)
}
