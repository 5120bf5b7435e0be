package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/borgia-ae/borgia-api/internal/application/auth"
	"github.com/borgia-ae/borgia-api/internal/application/dto"
)

// SessionCookie configuración de la cookie de sesión.
type SessionCookie struct {
	Name   string
	Secure bool
}

// AuthHandler maneja login, logout y cambio de contraseña.
type AuthHandler struct {
	uc     *auth.AuthUseCase
	cookie SessionCookie
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, cookie SessionCookie) *AuthHandler {
	return &AuthHandler{uc: uc, cookie: cookie}
}

// LoginContext godoc
// @Summary      Datos de la pantalla de login
// @Tags         auth
// @Produce      json
// @Param        next  query  string  false  "Ruta a la que volver"
// @Success      200   {object}  dto.LoginContext
// @Router       /auth/login/ [get]
func (h *AuthHandler) LoginContext(c *fiber.Ctx) error {
	out, err := h.uc.LoginContext(auth.SafeNext(c.Query("next")))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Con JSON devuelve el token; con formulario redirige (302) a next.
// @Tags         auth
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password, next"
// @Success      200   {object}  dto.LoginResponse
// @Success      302
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /auth/login/ [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	if in.Next == "" {
		in.Next = c.Query("next")
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    out.Token,
		Path:     "/",
		Expires:  out.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	if c.Is("json") {
		return c.JSON(out)
	}
	return c.Redirect(out.Redirect, fiber.StatusFound)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Description  Revoca la sesión actual (si la hay) y redirige al login.
// @Tags         auth
// @Success      302
// @Router       /auth/logout/ [get]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if token, _ := sessionToken(c, h.cookie.Name); token != "" {
		if claims, err := h.uc.Authenticate(c.UserContext(), token); err == nil {
			if err := h.uc.Logout(c.UserContext(), claims); err != nil {
				return err
			}
		}
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect(LoginPath, fiber.StatusFound)
}

// ChangePassword godoc
// @Summary      Cambiar contraseña
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PasswordChangeRequest  true  "Contraseña actual y nueva"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /auth/password_change/ [post]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.PasswordChangeRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	if err := h.uc.ChangePassword(GetUserID(c), in); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "contraseña actualizada"})
}
