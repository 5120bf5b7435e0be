package memory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/borgia-ae/borgia-api/internal/domain"
	"github.com/borgia-ae/borgia-api/internal/domain/entity"
	"github.com/borgia-ae/borgia-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria.
type UserRepo struct{ base }

func (r *UserRepo) Create(user *entity.User) error {
	return r.view(func(s *state) error {
		for _, u := range s.users {
			if u.Username == user.Username {
				return domain.ErrDuplicate
			}
		}
		if user.ID == 0 {
			user.ID = s.next("users")
		} else if user.ID > s.seq["users"] {
			s.seq["users"] = user.ID
		}
		if user.DateJoined.IsZero() {
			user.DateJoined = time.Now()
		}
		s.users[user.ID] = copyUser(user)
		return nil
	})
}

func (r *UserRepo) GetByID(id int64) (*entity.User, error) {
	var out *entity.User
	err := r.view(func(s *state) error {
		if u, ok := s.users[id]; ok {
			out = copyUser(u)
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByUsername(username string) (*entity.User, error) {
	var out *entity.User
	err := r.view(func(s *state) error {
		for _, u := range s.users {
			if u.Username == username {
				out = copyUser(u)
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) Update(user *entity.User) error {
	return r.view(func(s *state) error {
		cur, ok := s.users[user.ID]
		if !ok {
			return domain.ErrUserNotFound
		}
		// El saldo solo cambia con UpdateBalance.
		c := copyUser(user)
		c.Balance = cur.Balance
		s.users[user.ID] = c
		return nil
	})
}

func (r *UserRepo) List() ([]*entity.User, error) {
	var out []*entity.User
	err := r.view(func(s *state) error {
		for _, u := range s.users {
			out = append(out, copyUser(u))
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

// GetForUpdate en memoria equivale a GetByID: la transacción ya tiene el mutex.
func (r *UserRepo) GetForUpdate(id int64) (*entity.User, error) {
	return r.GetByID(id)
}

func (r *UserRepo) UpdateBalance(id int64, balance decimal.Decimal) error {
	return r.view(func(s *state) error {
		u, ok := s.users[id]
		if !ok {
			return domain.ErrUserNotFound
		}
		u.Balance = balance
		return nil
	})
}

func (r *UserRepo) TouchLastLogin(id int64) error {
	return r.view(func(s *state) error {
		if u, ok := s.users[id]; ok {
			now := time.Now()
			u.LastLogin = &now
		}
		return nil
	})
}
