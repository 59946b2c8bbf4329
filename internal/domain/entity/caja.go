package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de caja.
const (
	CajaIngreso = "ingreso"
	CajaEgreso  = "egreso"
)

// MovimientoCaja asiento simple de caja por sucursal.
type MovimientoCaja struct {
	ID         string
	SucursalID string
	Tipo       string // ingreso | egreso
	Concepto   string
	Monto      decimal.Decimal
	Fecha      time.Time
	ActorID    string
	CreatedAt  time.Time
}
