// Package memory implementa los puertos de persistencia en memoria.
// Se usa en tests y con APP_STORAGE=memory; el estado se pierde al reiniciar.
package memory

import (
	"context"
	"sync"

	"github.com/borgia-ae/borgia-api/internal/application/ledger"
	"github.com/borgia-ae/borgia-api/internal/application/usecase"
	"github.com/borgia-ae/borgia-api/internal/domain/entity"
	"github.com/borgia-ae/borgia-api/internal/domain/repository"
)

var (
	_ ledger.TxRunner       = (*Store)(nil)
	_ usecase.AdminTxRunner = (*Store)(nil)
)

type state struct {
	users    map[int64]*entity.User
	groups   map[int64]*entity.Group
	members  map[int64]map[int64]struct{} // group -> users
	perms    map[string]*entity.Permission
	shops    map[int64]*entity.Shop
	products map[int64]*entity.Product
	events   []*entity.LedgerEvent
	settings []*entity.Setting
	seq      map[string]int64
}

func newState() *state {
	return &state{
		users:    map[int64]*entity.User{},
		groups:   map[int64]*entity.Group{},
		members:  map[int64]map[int64]struct{}{},
		perms:    map[string]*entity.Permission{},
		shops:    map[int64]*entity.Shop{},
		products: map[int64]*entity.Product{},
		seq:      map[string]int64{},
	}
}

func (s *state) next(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.users {
		c.users[k] = copyUser(v)
	}
	for k, v := range s.groups {
		c.groups[k] = copyGroup(v)
	}
	for g, m := range s.members {
		cm := make(map[int64]struct{}, len(m))
		for u := range m {
			cm[u] = struct{}{}
		}
		c.members[g] = cm
	}
	for k, v := range s.perms {
		p := *v
		c.perms[k] = &p
	}
	for k, v := range s.shops {
		sh := *v
		c.shops[k] = &sh
	}
	for k, v := range s.products {
		p := *v
		c.products[k] = &p
	}
	c.events = append(c.events, s.events...)
	c.settings = append(c.settings, s.settings...)
	for k, v := range s.seq {
		c.seq[k] = v
	}
	return c
}

// Store contenedor del estado. Las transacciones trabajan sobre una copia que se
// publica al terminar sin error; se serializan con el mismo mutex.
type Store struct {
	mu   sync.Mutex
	data *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

type base struct {
	st *Store
	tx *state
}

func (b base) view(f func(*state) error) error {
	if b.tx != nil {
		return f(b.tx)
	}
	b.st.mu.Lock()
	defer b.st.mu.Unlock()
	return f(b.st.data)
}

func (s *Store) transact(fn func(b base) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.data.clone()
	if err := fn(base{st: s, tx: work}); err != nil {
		return err
	}
	s.data = work
	return nil
}

// Run ejecuta fn con repos de usuarios y libro dentro de una transacción.
func (s *Store) Run(ctx context.Context, fn func(
	users repository.UserRepository,
	events repository.LedgerRepository,
) error) error {
	return s.transact(func(b base) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(&UserRepo{b}, &LedgerRepo{b})
	})
}

// RunAdmin ejecuta fn con repos de tiendas, grupos y permisos dentro de una transacción.
func (s *Store) RunAdmin(ctx context.Context, fn func(
	shops repository.ShopRepository,
	groups repository.GroupRepository,
	perms repository.PermissionRepository,
) error) error {
	return s.transact(func(b base) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(&ShopRepo{b}, &GroupRepo{b}, &PermissionRepo{b})
	})
}

// RunMembers ejecuta fn con repos de usuarios y grupos dentro de una transacción.
func (s *Store) RunMembers(ctx context.Context, fn func(
	users repository.UserRepository,
	groups repository.GroupRepository,
) error) error {
	return s.transact(func(b base) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(&UserRepo{b}, &GroupRepo{b})
	})
}

// Users devuelve el repositorio de usuarios fuera de transacción.
func (s *Store) Users() *UserRepo { return &UserRepo{base{st: s}} }

// Groups devuelve el repositorio de grupos.
func (s *Store) Groups() *GroupRepo { return &GroupRepo{base{st: s}} }

// Permissions devuelve el repositorio de permisos.
func (s *Store) Permissions() *PermissionRepo { return &PermissionRepo{base{st: s}} }

// Shops devuelve el repositorio de tiendas.
func (s *Store) Shops() *ShopRepo { return &ShopRepo{base{st: s}} }

// Products devuelve el repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{base{st: s}} }

// Ledger devuelve el repositorio del libro.
func (s *Store) Ledger() *LedgerRepo { return &LedgerRepo{base{st: s}} }

// Settings devuelve el repositorio de configuración.
func (s *Store) Settings() *SettingRepo { return &SettingRepo{base{st: s}} }

func copyUser(u *entity.User) *entity.User {
	c := *u
	if u.LastLogin != nil {
		t := *u.LastLogin
		c.LastLogin = &t
	}
	return &c
}

func copyGroup(g *entity.Group) *entity.Group {
	c := *g
	c.Permissions = append([]string(nil), g.Permissions...)
	if g.ShopID != nil {
		id := *g.ShopID
		c.ShopID = &id
	}
	return &c
}

func copyEvent(e *entity.LedgerEvent) *entity.LedgerEvent {
	c := *e
	c.Lines = append([]entity.SaleLine(nil), e.Lines...)
	if e.ShopID != nil {
		id := *e.ShopID
		c.ShopID = &id
	}
	return &c
}
