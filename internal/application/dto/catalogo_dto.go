package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Productos ─────────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	SKU         string          `json:"sku"`
	Nombre      string          `json:"nombre"`
	Descripcion string          `json:"descripcion,omitempty"`
	CategoriaID string          `json:"categoria_id,omitempty"`
	Precio      decimal.Decimal `json:"precio"`
}

type ActualizarProductoRequest struct {
	Nombre      *string          `json:"nombre,omitempty"`
	Descripcion *string          `json:"descripcion,omitempty"`
	CategoriaID *string          `json:"categoria_id,omitempty"`
	Precio      *decimal.Decimal `json:"precio,omitempty"`
	Activo      *bool            `json:"activo,omitempty"`
}

type ProductoResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Nombre      string          `json:"nombre"`
	Descripcion string          `json:"descripcion,omitempty"`
	CategoriaID string          `json:"categoria_id,omitempty"`
	Precio      decimal.Decimal `json:"precio"`
	Activo      bool            `json:"activo"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ── Categorías ────────────────────────────────────────────────────────────────

type CrearCategoriaRequest struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion,omitempty"`
}

type ActualizarCategoriaRequest struct {
	Nombre      *string `json:"nombre,omitempty"`
	Descripcion *string `json:"descripcion,omitempty"`
	Activo      *bool   `json:"activo,omitempty"`
}

type CategoriaResponse struct {
	ID          string    `json:"id"`
	Nombre      string    `json:"nombre"`
	Descripcion string    `json:"descripcion,omitempty"`
	Activo      bool      `json:"activo"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ── Proveedores ───────────────────────────────────────────────────────────────

type CrearProveedorRequest struct {
	Nombre   string `json:"nombre"`
	Contacto string `json:"contacto,omitempty"`
	Telefono string `json:"telefono,omitempty"`
	Email    string `json:"email,omitempty"`
}

type ActualizarProveedorRequest struct {
	Nombre   *string `json:"nombre,omitempty"`
	Contacto *string `json:"contacto,omitempty"`
	Telefono *string `json:"telefono,omitempty"`
	Email    *string `json:"email,omitempty"`
	Activo   *bool   `json:"activo,omitempty"`
}

type ProveedorResponse struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	Contacto  string    `json:"contacto,omitempty"`
	Telefono  string    `json:"telefono,omitempty"`
	Email     string    `json:"email,omitempty"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ── Clientes ──────────────────────────────────────────────────────────────────

type CrearClienteRequest struct {
	Nombre    string `json:"nombre"`
	Documento string `json:"documento,omitempty"`
	Telefono  string `json:"telefono,omitempty"`
	Email     string `json:"email,omitempty"`
}

type ActualizarClienteRequest struct {
	Nombre    *string `json:"nombre,omitempty"`
	Documento *string `json:"documento,omitempty"`
	Telefono  *string `json:"telefono,omitempty"`
	Email     *string `json:"email,omitempty"`
}

type ClienteResponse struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	Documento string    `json:"documento,omitempty"`
	Telefono  string    `json:"telefono,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ── Sucursales ────────────────────────────────────────────────────────────────

type CrearSucursalRequest struct {
	Nombre    string `json:"nombre"`
	Direccion string `json:"direccion,omitempty"`
	Principal bool   `json:"principal,omitempty"`
}

type ActualizarSucursalRequest struct {
	Nombre    *string `json:"nombre,omitempty"`
	Direccion *string `json:"direccion,omitempty"`
	Principal *bool   `json:"principal,omitempty"`
}

type SucursalResponse struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	Direccion string    `json:"direccion,omitempty"`
	Principal bool      `json:"principal"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
