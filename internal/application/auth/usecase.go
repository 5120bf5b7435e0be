package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/borgia-ae/borgia-api/internal/application/dto"
	"github.com/borgia-ae/borgia-api/internal/domain"
	"github.com/borgia-ae/borgia-api/internal/domain/authz"
	"github.com/borgia-ae/borgia-api/internal/domain/entity"
	"github.com/borgia-ae/borgia-api/internal/domain/repository"
	"github.com/borgia-ae/borgia-api/pkg/jwt"
)

// DefaultRedirect destino tras el login cuando no hay next.
const DefaultRedirect = "/members/"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login, logout, cambio de contraseña y carga del sujeto.
type AuthUseCase struct {
	userRepo      repository.UserRepository
	groupRepo     repository.GroupRepository
	shopRepo      repository.ShopRepository
	revoker       SessionRevoker
	jwtCfg        JWTConfig
	defaultShopID int64
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	groupRepo repository.GroupRepository,
	shopRepo repository.ShopRepository,
	revoker SessionRevoker,
	jwtCfg JWTConfig,
	defaultShopID int64,
) *AuthUseCase {
	if revoker == nil {
		revoker = NopRevoker{}
	}
	return &AuthUseCase{
		userRepo: userRepo, groupRepo: groupRepo, shopRepo: shopRepo,
		revoker: revoker, jwtCfg: jwtCfg, defaultShopID: defaultShopID,
	}
}

// Login verifica username/password, genera la sesión y devuelve el destino (next o el panel de miembros).
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}
	session, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.TouchLastLogin(user.ID); err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		Redirect:  SafeNext(in.Next),
		User:      *ToUserResponse(user, nil),
	}, nil
}

// SafeNext acepta solo rutas locales para evitar redirecciones abiertas.
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return DefaultRedirect
	}
	return next
}

// Authenticate valida el token y comprueba que la sesión no esté revocada.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	revoked, err := uc.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("consultar revocación: %w", err)
	}
	if revoked {
		return nil, domain.ErrSessionRevoked
	}
	return claims, nil
}

// Logout revoca el jti de la sesión durante el tiempo que le queda de vida.
func (uc *AuthUseCase) Logout(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil {
		return nil
	}
	ttl := claims.Remaining(time.Now())
	if ttl <= 0 {
		return nil
	}
	return uc.revoker.Revoke(ctx, claims.ID, ttl)
}

// ChangePassword cambia la contraseña comprobando la actual.
func (uc *AuthUseCase) ChangePassword(userID int64, in dto.PasswordChangeRequest) error {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.OldPassword)); err != nil {
		return domain.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return uc.userRepo.Update(user)
}

// LoginContext tiendas mostradas en la pantalla de login (sin la tienda por defecto).
func (uc *AuthUseCase) LoginContext(next string) (*dto.LoginContext, error) {
	shops, err := uc.shopRepo.List()
	if err != nil {
		return nil, err
	}
	out := &dto.LoginContext{Next: next, Shops: make([]dto.ShopSummary, 0, len(shops))}
	for _, s := range shops {
		if s.ID == uc.defaultShopID {
			continue
		}
		out.Shops = append(out.Shops, dto.ShopSummary{ID: s.ID, Name: s.Name, Color: s.Color})
	}
	return out, nil
}

// LoadSubject carga el usuario activo y sus grupos para autorizar.
func (uc *AuthUseCase) LoadSubject(userID int64) (*entity.User, authz.Subject, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, authz.Subject{}, err
	}
	if user == nil || !user.IsActive {
		return nil, authz.Subject{}, domain.ErrUnauthorized
	}
	groups, err := uc.groupRepo.ListByUser(userID)
	if err != nil {
		return nil, authz.Subject{}, err
	}
	return user, authz.Subject{UserID: userID, Groups: groups}, nil
}

// ToUserResponse mapea la entidad a la salida pública (sin campos sensibles).
func ToUserResponse(u *entity.User, groups []*entity.Group) *dto.UserResponse {
	if u == nil {
		return nil
	}
	out := &dto.UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		Surname:    u.Surname,
		Family:     u.Family,
		Campus:     u.Campus,
		Year:       u.Year,
		Phone:      u.Phone,
		Balance:    u.Balance,
		IsActive:   u.IsActive,
		DateJoined: u.DateJoined,
	}
	for _, g := range groups {
		out.Groups = append(out.Groups, dto.GroupSummary{ID: g.ID, Name: g.Name})
	}
	return out
}
