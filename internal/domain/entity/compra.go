package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una compra. El crédito de stock ocurre
// una sola vez, en la transición pendiente -> recibida.
const (
	EstadoCompraPendiente  = "pendiente"
	EstadoCompraRecibida   = "recibida"
	EstadoCompraCompletada = "completada"
	EstadoCompraCancelada  = "cancelada"
)

// Compra representa una orden a proveedor con sus ítems embebidos.
type Compra struct {
	ID             string
	ProveedorID    string
	SucursalID     string
	Items          []ItemCompra
	Total          decimal.Decimal
	Estado         string
	FechaRecepcion *time.Time
	CreadaPor      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ItemCompra línea de una compra. Subtotal = Cantidad × PrecioUnitario.
type ItemCompra struct {
	ProductoID     string
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal
}

// YaProcesada indica si la compra ya acreditó stock.
func (c *Compra) YaProcesada() bool {
	return c.Estado == EstadoCompraRecibida || c.Estado == EstadoCompraCompletada
}
