package http

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/borgia-ae/borgia-api/internal/application/dto"
	"github.com/borgia-ae/borgia-api/internal/domain"
	"github.com/borgia-ae/borgia-api/internal/domain/authz"
	"github.com/borgia-ae/borgia-api/internal/domain/entity"
	"github.com/borgia-ae/borgia-api/pkg/jwt"
)

// LoginPath ruta de login a la que se redirige a los anónimos.
const LoginPath = "/auth/login/"

// Locals keys de la sesión en Fiber.
const (
	LocalUserID      = "user_id"
	LocalClaims      = "claims"
	LocalUser        = "user"
	LocalSubject     = "subject"
	LocalActingGroup = "acting_group"
)

// Authenticator contrato mínimo del middleware de sesión; lo implementa *auth.AuthUseCase.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*jwt.Claims, error)
	LoadSubject(userID int64) (*entity.User, authz.Subject, error)
}

// SessionMiddleware exige una sesión válida (cookie o Bearer) y carga el usuario con sus grupos.
// Sin sesión redirige (302) al login con next; con un Bearer inválido responde 401.
func SessionMiddleware(authn Authenticator, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, bearer := sessionToken(c, cookieName)
		if token == "" {
			if bearer {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
			}
			return redirectToLogin(c)
		}
		claims, err := authn.Authenticate(c.UserContext(), token)
		if err != nil {
			if !errors.Is(err, domain.ErrUnauthorized) && !errors.Is(err, domain.ErrSessionRevoked) {
				return err
			}
			if bearer {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido, expirado o revocado"})
			}
			c.ClearCookie(cookieName)
			return redirectToLogin(c)
		}
		user, sub, err := authn.LoadSubject(claims.UserID)
		if err != nil {
			if !errors.Is(err, domain.ErrUnauthorized) {
				return err
			}
			if bearer {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INACTIVE_USER", Message: "usuario inactivo"})
			}
			c.ClearCookie(cookieName)
			return redirectToLogin(c)
		}
		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalClaims, claims)
		c.Locals(LocalUser, user)
		c.Locals(LocalSubject, sub)
		return c.Next()
	}
}

// sessionToken extrae el token: el header Authorization tiene prioridad sobre la cookie.
// bearer indica que el cliente usó el header (API) y espera 401 en lugar de redirección.
func sessionToken(c *fiber.Ctx, cookieName string) (token string, bearer bool) {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", true
		}
		return strings.TrimSpace(parts[1]), true
	}
	return c.Cookies(cookieName), false
}

func redirectToLogin(c *fiber.Ctx) error {
	return c.Redirect(LoginPath+"?next="+url.QueryEscape(c.OriginalURL()), fiber.StatusFound)
}

// GetUserID devuelve el id del usuario autenticado (0 si no hay sesión).
func GetUserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(LocalUserID).(int64)
	return id
}

// GetClaims devuelve los claims de la sesión o nil.
func GetClaims(c *fiber.Ctx) *jwt.Claims {
	claims, _ := c.Locals(LocalClaims).(*jwt.Claims)
	return claims
}

// GetSubject devuelve el sujeto autenticado (vacío si no hay sesión).
func GetSubject(c *fiber.Ctx) authz.Subject {
	sub, _ := c.Locals(LocalSubject).(authz.Subject)
	return sub
}

// GetActingGroup devuelve el grupo del primer segmento del path (después de RequireActingGroup).
func GetActingGroup(c *fiber.Ctx) *entity.Group {
	g, _ := c.Locals(LocalActingGroup).(*entity.Group)
	return g
}
