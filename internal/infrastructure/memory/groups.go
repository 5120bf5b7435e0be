package memory

import (
	"sort"

	"github.com/borgia-ae/borgia-api/internal/domain"
	"github.com/borgia-ae/borgia-api/internal/domain/entity"
	"github.com/borgia-ae/borgia-api/internal/domain/repository"
)

var (
	_ repository.GroupRepository      = (*GroupRepo)(nil)
	_ repository.PermissionRepository = (*PermissionRepo)(nil)
)

// GroupRepo grupos y membresías en memoria.
type GroupRepo struct{ base }

func (r *GroupRepo) Create(group *entity.Group) error {
	return r.view(func(s *state) error {
		for _, g := range s.groups {
			if g.Name == group.Name {
				return domain.ErrDuplicate
			}
		}
		for _, p := range group.Permissions {
			if _, ok := s.perms[p]; !ok {
				return domain.ErrNotFound
			}
		}
		if group.ID == 0 {
			group.ID = s.next("groups")
		} else if group.ID > s.seq["groups"] {
			s.seq["groups"] = group.ID
		}
		s.groups[group.ID] = copyGroup(group)
		return nil
	})
}

func (r *GroupRepo) GetByID(id int64) (*entity.Group, error) {
	var out *entity.Group
	err := r.view(func(s *state) error {
		if g, ok := s.groups[id]; ok {
			out = copyGroup(g)
		}
		return nil
	})
	return out, err
}

func (r *GroupRepo) GetByName(name string) (*entity.Group, error) {
	var out *entity.Group
	err := r.view(func(s *state) error {
		for _, g := range s.groups {
			if g.Name == name {
				out = copyGroup(g)
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *GroupRepo) list(match func(s *state, g *entity.Group) bool) ([]*entity.Group, error) {
	var out []*entity.Group
	err := r.view(func(s *state) error {
		for _, g := range s.groups {
			if match(s, g) {
				out = append(out, copyGroup(g))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r *GroupRepo) List() ([]*entity.Group, error) {
	return r.list(func(*state, *entity.Group) bool { return true })
}

func (r *GroupRepo) ListByShop(shopID int64) ([]*entity.Group, error) {
	return r.list(func(_ *state, g *entity.Group) bool { return g.ShopID != nil && *g.ShopID == shopID })
}

func (r *GroupRepo) ListByUser(userID int64) ([]*entity.Group, error) {
	return r.list(func(s *state, g *entity.Group) bool {
		_, ok := s.members[g.ID][userID]
		return ok
	})
}

func (r *GroupRepo) Rename(id int64, name string) error {
	return r.view(func(s *state) error {
		g, ok := s.groups[id]
		if !ok {
			return domain.ErrNotFound
		}
		for _, other := range s.groups {
			if other.ID != id && other.Name == name {
				return domain.ErrDuplicate
			}
		}
		g.Name = name
		return nil
	})
}

func (r *GroupRepo) Members(groupID int64) ([]int64, error) {
	var out []int64
	err := r.view(func(s *state) error {
		for u := range s.members[groupID] {
			out = append(out, u)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, err
}

func (r *GroupRepo) AddMember(groupID, userID int64) error {
	return r.view(func(s *state) error {
		if _, ok := s.groups[groupID]; !ok {
			return domain.ErrNotFound
		}
		if _, ok := s.users[userID]; !ok {
			return domain.ErrUserNotFound
		}
		if s.members[groupID] == nil {
			s.members[groupID] = map[int64]struct{}{}
		}
		s.members[groupID][userID] = struct{}{}
		return nil
	})
}

func (r *GroupRepo) SetMembers(groupID int64, userIDs []int64) error {
	return r.view(func(s *state) error {
		if _, ok := s.groups[groupID]; !ok {
			return domain.ErrNotFound
		}
		m := make(map[int64]struct{}, len(userIDs))
		for _, u := range userIDs {
			if _, ok := s.users[u]; !ok {
				return domain.ErrUserNotFound
			}
			m[u] = struct{}{}
		}
		s.members[groupID] = m
		return nil
	})
}

func (r *GroupRepo) Grant(groupID int64, codename string) error {
	return r.view(func(s *state) error {
		g, ok := s.groups[groupID]
		if !ok {
			return domain.ErrNotFound
		}
		if _, ok := s.perms[codename]; !ok {
			return domain.ErrNotFound
		}
		if !g.Grants(codename) {
			g.Permissions = append(g.Permissions, codename)
		}
		return nil
	})
}

// PermissionRepo catálogo de permisos en memoria.
type PermissionRepo struct{ base }

func (r *PermissionRepo) Ensure(perm *entity.Permission) error {
	return r.view(func(s *state) error {
		if cur, ok := s.perms[perm.Codename]; ok {
			perm.ID = cur.ID
			return nil
		}
		perm.ID = s.next("permissions")
		p := *perm
		s.perms[perm.Codename] = &p
		return nil
	})
}

func (r *PermissionRepo) GetByCodename(codename string) (*entity.Permission, error) {
	var out *entity.Permission
	err := r.view(func(s *state) error {
		if p, ok := s.perms[codename]; ok {
			c := *p
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *PermissionRepo) Rename(oldCodename, newCodename, name string) error {
	return r.view(func(s *state) error {
		p, ok := s.perms[oldCodename]
		if !ok {
			return domain.ErrNotFound
		}
		if _, taken := s.perms[newCodename]; taken {
			return domain.ErrDuplicate
		}
		delete(s.perms, oldCodename)
		p.Codename, p.Name = newCodename, name
		s.perms[newCodename] = p
		for _, g := range s.groups {
			for i, c := range g.Permissions {
				if c == oldCodename {
					g.Permissions[i] = newCodename
				}
			}
		}
		return nil
	})
}

func (r *PermissionRepo) List() ([]*entity.Permission, error) {
	var out []*entity.Permission
	err := r.view(func(s *state) error {
		for _, p := range s.perms {
			c := *p
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}
