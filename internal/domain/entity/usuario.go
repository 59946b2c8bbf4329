package entity

import "time"

// Roles de usuario.
const (
	RolAdmin    = "admin"
	RolVendedor = "vendedor"
)

// Usuario operador del sistema. SucursalID es su sucursal de trabajo
// por defecto (viaja en el JWT).
type Usuario struct {
	ID           string
	Email        string
	PasswordHash string
	Nombre       string
	Rol          string
	SucursalID   string
	Estado       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
