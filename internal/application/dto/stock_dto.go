package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockResponse stock de un producto en una sucursal.
type StockResponse struct {
	ProductoID     string          `json:"producto_id"`
	ProductoNombre string          `json:"producto_nombre,omitempty"`
	SucursalID     string          `json:"sucursal_id"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	CantidadMinima decimal.Decimal `json:"cantidad_minima"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// MovimientoStockResponse fila del log de movimientos.
type MovimientoStockResponse struct {
	ID             string          `json:"id"`
	SucursalID     string          `json:"sucursal_id"`
	ProductoID     string          `json:"producto_id"`
	Tipo           string          `json:"tipo"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	Motivo         string          `json:"motivo"`
	ReferenciaTipo string          `json:"referencia_tipo"`
	ReferenciaID   string          `json:"referencia_id"`
	ActorID        string          `json:"actor_id"`
	CreatedAt      time.Time       `json:"created_at"`
}

// StockInsuficienteDetalle payload estructurado del error STOCK_INSUFICIENTE.
type StockInsuficienteDetalle struct {
	ProductoID string          `json:"producto_id"`
	Disponible decimal.Decimal `json:"disponible"`
	Solicitado decimal.Decimal `json:"solicitado"`
}
