package dto

import "time"

// RegisterRequest body para POST /api/auth/register.
type RegisterRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Nombre     string `json:"nombre,omitempty"`
	Rol        string `json:"rol,omitempty"`
	SucursalID string `json:"sucursal_id,omitempty"`
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UsuarioResponse usuario sin hash.
type UsuarioResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Nombre     string    `json:"nombre"`
	Rol        string    `json:"rol"`
	SucursalID string    `json:"sucursal_id,omitempty"`
	Estado     string    `json:"estado"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LoginResponse token + usuario.
type LoginResponse struct {
	Token   string          `json:"token"`
	Usuario UsuarioResponse `json:"usuario"`
}
