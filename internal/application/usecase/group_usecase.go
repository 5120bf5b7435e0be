package usecase

import (
	"github.com/borgia-ae/borgia-api/internal/application/dto"
	"github.com/borgia-ae/borgia-api/internal/domain"
	"github.com/borgia-ae/borgia-api/internal/domain/authz"
	"github.com/borgia-ae/borgia-api/internal/domain/entity"
	"github.com/borgia-ae/borgia-api/internal/domain/repository"
)

// GroupUseCase consulta y gestión de miembros de grupos.
// Gestionar un grupo exige el permiso manage_group_<nombre>.
type GroupUseCase struct {
	groups repository.GroupRepository
	users  repository.UserRepository
}

// NewGroupUseCase construye el caso de uso.
func NewGroupUseCase(groups repository.GroupRepository, users repository.UserRepository) *GroupUseCase {
	return &GroupUseCase{groups: groups, users: users}
}

// GetByName devuelve el grupo o nil.
func (uc *GroupUseCase) GetByName(name string) (*entity.Group, error) {
	return uc.groups.GetByName(name)
}

// Get devuelve el grupo con sus miembros si el sujeto puede gestionarlo.
func (uc *GroupUseCase) Get(sub authz.Subject, id int64) (*dto.GroupResponse, error) {
	g, err := uc.managed(sub, id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(g)
}

// UpdateMembers reemplaza los miembros del grupo.
func (uc *GroupUseCase) UpdateMembers(sub authz.Subject, id int64, in dto.UpdateGroupMembersRequest) (*dto.GroupResponse, error) {
	g, err := uc.managed(sub, id)
	if err != nil {
		return nil, err
	}
	for _, uid := range in.Members {
		u, err := uc.users.GetByID(uid)
		if err != nil {
			return nil, err
		}
		if u == nil || u.IsReserved() {
			return nil, domain.ErrUserNotFound
		}
	}
	if err := uc.groups.SetMembers(g.ID, in.Members); err != nil {
		return nil, err
	}
	return uc.toResponse(g)
}

func (uc *GroupUseCase) managed(sub authz.Subject, id int64) (*entity.Group, error) {
	g, err := uc.groups.GetByID(id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domain.ErrNotFound
	}
	if !sub.Has(authz.ManagePermission(g.Name)) {
		return nil, domain.ErrForbidden
	}
	return g, nil
}

func (uc *GroupUseCase) toResponse(g *entity.Group) (*dto.GroupResponse, error) {
	ids, err := uc.groups.Members(g.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.GroupResponse{
		ID:          g.ID,
		Name:        g.Name,
		DisplayName: DisplayGroupName(g.Name),
		ShopID:      g.ShopID,
		Role:        g.Role,
		Permissions: append([]string{}, g.Permissions...),
		Members:     make([]dto.UserSummary, 0, len(ids)),
	}
	for _, id := range ids {
		u, err := uc.users.GetByID(id)
		if err != nil {
			return nil, err
		}
		if u == nil {
			continue
		}
		out.Members = append(out.Members, dto.UserSummary{ID: u.ID, Username: u.Username, FullName: u.FullName()})
	}
	return out, nil
}
