package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/borgia-ae/borgia-api/internal/application/auth"
	"github.com/borgia-ae/borgia-api/internal/application/dto"
	"github.com/borgia-ae/borgia-api/internal/domain"
	"github.com/borgia-ae/borgia-api/internal/domain/authz"
	"github.com/borgia-ae/borgia-api/internal/domain/entity"
	"github.com/borgia-ae/borgia-api/internal/domain/repository"
)

// UserUseCase casos de uso de gestión de miembros.
type UserUseCase struct {
	users     repository.UserRepository
	groups    repository.GroupRepository
	tx        MembersTxRunner
	internals string
}

// NewUserUseCase construye el caso de uso. internals es el grupo asignado por defecto.
func NewUserUseCase(
	users repository.UserRepository,
	groups repository.GroupRepository,
	tx MembersTxRunner,
	internals string,
) *UserUseCase {
	return &UserUseCase{users: users, groups: groups, tx: tx, internals: internals}
}

// Create crea un usuario con saldo 0. Sin grupos explícitos entra en el grupo interno.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	existing, err := uc.users.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil || in.Username == entity.ReservedUsername {
		return nil, domain.ErrUsernameExists
	}

	groupIDs := in.Groups
	if len(groupIDs) == 0 {
		g, err := uc.groups.GetByName(uc.internals)
		if err != nil {
			return nil, err
		}
		if g == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrMissingBaselineGroup, uc.internals)
		}
		groupIDs = []int64{g.ID}
	}
	groups := make([]*entity.Group, 0, len(groupIDs))
	for _, id := range groupIDs {
		g, err := uc.groups.GetByID(id)
		if err != nil {
			return nil, err
		}
		if g == nil {
			return nil, fmt.Errorf("%w: grupo %d", domain.ErrInvalidInput, id)
		}
		groups = append(groups, g)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Surname:      in.Surname,
		Family:       in.Family,
		Campus:       in.Campus,
		Year:         in.Year,
		Phone:        in.Phone,
		Balance:      decimal.Zero,
		IsActive:     true,
		DateJoined:   time.Now(),
	}
	// Usuario y membresías se crean juntos o no se crean.
	err = uc.tx.RunMembers(ctx, func(users repository.UserRepository, gr repository.GroupRepository) error {
		if err := users.Create(user); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return domain.ErrUsernameExists
			}
			return err
		}
		for _, g := range groups {
			if err := gr.AddMember(g.ID, user.ID); err != nil {
				return fmt.Errorf("alta en %s: %w", g.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user, groups), nil
}

// Get obtiene un usuario con sus grupos. Las cuentas reservadas no se exponen.
func (uc *UserUseCase) Get(id int64) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsReserved() {
		return nil, domain.ErrUserNotFound
	}
	groups, err := uc.groups.ListByUser(id)
	if err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user, groups), nil
}

// Update modifica los datos personales de un usuario (nunca saldo ni credenciales).
func (uc *UserUseCase) Update(id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsReserved() {
		return nil, domain.ErrUserNotFound
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Surname != nil {
		user.Surname = *in.Surname
	}
	if in.Family != nil {
		user.Family = *in.Family
	}
	if in.Campus != nil {
		user.Campus = *in.Campus
	}
	if in.Year != nil {
		user.Year = *in.Year
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if err := uc.users.Update(user); err != nil {
		return nil, err
	}
	return uc.Get(id)
}

// Deactivate da de baja a un usuario. Un usuario siempre puede darse de baja a sí mismo;
// para otros hace falta deactivate_user.
func (uc *UserUseCase) Deactivate(sub authz.Subject, id int64) (*dto.UserResponse, error) {
	if sub.UserID != id && !sub.Has("deactivate_user") {
		return nil, domain.ErrForbidden
	}
	user, err := uc.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsReserved() {
		return nil, domain.ErrUserNotFound
	}
	user.IsActive = false
	if err := uc.users.Update(user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user, nil), nil
}
