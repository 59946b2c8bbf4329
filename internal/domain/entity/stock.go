package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockSucursal stock actual de un producto en una sucursal
// (clave compuesta producto + sucursal). El contador es la fuente de verdad;
// movimientos_stock es solo auditoría.
type StockSucursal struct {
	ProductoID     string
	SucursalID     string
	Cantidad       decimal.Decimal
	CantidadMinima decimal.Decimal
	UpdatedAt      time.Time
}

// BajoMinimo indica si el stock está en o por debajo del umbral mínimo.
func (s *StockSucursal) BajoMinimo() bool {
	return !s.CantidadMinima.IsZero() && s.Cantidad.LessThanOrEqual(s.CantidadMinima)
}
