package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Username  string  `json:"username" validate:"required|min_len:1|max_len:150|regex:^[\w.@+-]+$"`
	Password  string  `json:"password" validate:"required|min_len:8"`
	FirstName string  `json:"first_name" validate:"required|max_len:255"`
	LastName  string  `json:"last_name" validate:"required|max_len:255"`
	Email     string  `json:"email" validate:"email"`
	Surname   string  `json:"surname" validate:"required|max_len:255"`
	Family    string  `json:"family" validate:"required|max_len:255"`
	Campus    string  `json:"campus" validate:"required|max_len:2"`
	Year      int     `json:"year" validate:"required|min:1800"`
	Phone     string  `json:"phone" validate:"max_len:20"`
	Groups    []int64 `json:"groups"`
}

// UpdateUserRequest entrada para actualizar un usuario (campos nil = sin cambio).
type UpdateUserRequest struct {
	FirstName *string `json:"first_name" validate:"max_len:255"`
	LastName  *string `json:"last_name" validate:"max_len:255"`
	Email     *string `json:"email" validate:"email"`
	Surname   *string `json:"surname" validate:"max_len:255"`
	Family    *string `json:"family" validate:"max_len:255"`
	Campus    *string `json:"campus" validate:"max_len:2"`
	Year      *int    `json:"year" validate:"min:1800"`
	Phone     *string `json:"phone" validate:"max_len:20"`
}

// UserResponse salida de un usuario (sin password ni flags de privilegio).
type UserResponse struct {
	ID         int64           `json:"id"`
	Username   string          `json:"username"`
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	Email      string          `json:"email"`
	Surname    string          `json:"surname"`
	Family     string          `json:"family"`
	Campus     string          `json:"campus"`
	Year       int             `json:"year"`
	Phone      string          `json:"phone"`
	Balance    decimal.Decimal `json:"balance"`
	IsActive   bool            `json:"is_active"`
	DateJoined time.Time       `json:"date_joined"`
	Groups     []GroupSummary  `json:"groups,omitempty"`
}

// UserSummary referencia corta a un usuario.
type UserSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

// LoginRequest entrada para login. Next es la ruta a la que volver tras autenticarse.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
	Next     string `json:"next" form:"next" query:"next"`
}

// LoginResponse salida del login: la sesión va en cookie; Token se devuelve para clientes Bearer.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	Redirect  string       `json:"redirect"`
	User      UserResponse `json:"user"`
}

// LoginContext datos para la pantalla de login.
type LoginContext struct {
	Next  string        `json:"next,omitempty"`
	Shops []ShopSummary `json:"shops"`
}

// PasswordChangeRequest cambio de contraseña del usuario autenticado.
type PasswordChangeRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required|min_len:8"`
}
