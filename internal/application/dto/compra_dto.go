package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemCompraRequest línea de compra en requests.
type ItemCompraRequest struct {
	ProductoID     string          `json:"producto_id"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// CrearCompraRequest body para POST /api/compras.
type CrearCompraRequest struct {
	ProveedorID string              `json:"proveedor_id"`
	SucursalID  string              `json:"sucursal_id,omitempty"`
	Items       []ItemCompraRequest `json:"items"`
}

// ActualizarCompraRequest body para PUT /api/compras/:id (solo pendientes).
type ActualizarCompraRequest struct {
	ProveedorID *string             `json:"proveedor_id,omitempty"`
	SucursalID  *string             `json:"sucursal_id,omitempty"`
	Items       []ItemCompraRequest `json:"items,omitempty"`
}

// CambiarEstadoCompraRequest body para PATCH /api/compras/:id/estado.
type CambiarEstadoCompraRequest struct {
	Estado string `json:"estado"`
}

// ItemCompraResponse línea de compra enriquecida.
type ItemCompraResponse struct {
	ProductoID     string          `json:"producto_id"`
	ProductoNombre string          `json:"producto_nombre"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// CompraResponse compra enriquecida con nombre de proveedor y productos.
type CompraResponse struct {
	ID              string               `json:"id"`
	ProveedorID     string               `json:"proveedor_id"`
	ProveedorNombre string               `json:"proveedor_nombre"`
	SucursalID      string               `json:"sucursal_id,omitempty"`
	Items           []ItemCompraResponse `json:"items"`
	Total           decimal.Decimal      `json:"total"`
	Estado          string               `json:"estado"`
	FechaRecepcion  *time.Time           `json:"fecha_recepcion,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// CompraListResponse listado paginado.
type CompraListResponse struct {
	Items []CompraResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
