package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemVentaRequest línea de venta en requests de creación/edición.
type ItemVentaRequest struct {
	ProductoID     string          `json:"producto_id"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// CrearVentaRequest body para POST /api/ventas.
// ClienteID vacío = consumidor final. SucursalID vacío = sucursal del contexto.
type CrearVentaRequest struct {
	SucursalID string             `json:"sucursal_id,omitempty"`
	ClienteID  string             `json:"cliente_id,omitempty"`
	Items      []ItemVentaRequest `json:"items"`
	Pago       decimal.Decimal    `json:"pago,omitempty"`
}

// EditarVentaRequest body para PUT /api/ventas/:id — reemplaza el detalle completo.
type EditarVentaRequest struct {
	ClienteID *string            `json:"cliente_id,omitempty"`
	Items     []ItemVentaRequest `json:"items"`
}

// RegistrarPagoRequest body para POST /api/ventas/:id/pagos.
type RegistrarPagoRequest struct {
	Monto decimal.Decimal `json:"monto"`
}

// CambiarEstadoVentaRequest body para PATCH /api/ventas/:id/estado.
type CambiarEstadoVentaRequest struct {
	Estado string `json:"estado"`
}

// DevolucionParcialRequest body para POST /api/ventas/:id/devolucion-parcial.
type DevolucionParcialRequest struct {
	Items []ItemVentaRequest `json:"items"` // cantidad a devolver por producto
}

// ItemVentaResponse línea de venta enriquecida.
type ItemVentaResponse struct {
	ProductoID     string          `json:"producto_id"`
	ProductoNombre string          `json:"producto_nombre"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// VentaResponse venta enriquecida con nombres de cliente y productos.
type VentaResponse struct {
	ID            string              `json:"id"`
	SucursalID    string              `json:"sucursal_id"`
	ClienteID     string              `json:"cliente_id,omitempty"`
	ClienteNombre string              `json:"cliente_nombre"`
	Items         []ItemVentaResponse `json:"items"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	Total         decimal.Decimal     `json:"total"`
	MontoPagado   decimal.Decimal     `json:"monto_pagado"`
	EstadoPago    string              `json:"estado_pago"`
	Estado        string              `json:"estado"`
	Eliminada     bool                `json:"eliminada,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// VentaListResponse listado paginado.
type VentaListResponse struct {
	Items []VentaResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// ResumenDiaResponse agregados del día para /ventas/estadisticas/dia.
type ResumenDiaResponse struct {
	Fecha           string          `json:"fecha"`
	CantidadVentas  int             `json:"cantidad_ventas"`
	TotalVendido    decimal.Decimal `json:"total_vendido"`
	TotalCobrado    decimal.Decimal `json:"total_cobrado"`
	VentasPorEstado map[string]int  `json:"ventas_por_estado"`
}
