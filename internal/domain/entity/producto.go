package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto representa un producto o SKU del catálogo. El stock se maneja
// por sucursal en StockSucursal, nunca aquí.
type Producto struct {
	ID          string
	SKU         string // código único
	Nombre      string
	Descripcion string
	CategoriaID string
	Precio      decimal.Decimal // precio de venta
	Activo      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
