package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReservedUsername cuenta técnica que nunca aparece en listados.
const ReservedUsername = "admin"

// User representa un miembro de la asociación.
// Balance solo cambia al aplicar eventos del libro (ledger); puede ser negativo.
type User struct {
	ID           int64
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Email        string
	Surname      string // bucque
	Family       string // fam's
	Campus       string
	Year         int
	Phone        string
	Balance      decimal.Decimal
	IsActive     bool // baja lógica
	IsSuperuser  bool
	IsStaff      bool
	LastLogin    *time.Time
	DateJoined   time.Time
}

// FullName devuelve "Nombre Apellido" o el username si ambos están vacíos.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return u.Username
	case u.LastName == "":
		return u.FirstName
	case u.FirstName == "":
		return u.LastName
	}
	return u.FirstName + " " + u.LastName
}

// IsReserved indica si la cuenta es técnica (admin o superusuario).
func (u *User) IsReserved() bool {
	return u.Username == ReservedUsername || u.IsSuperuser
}
