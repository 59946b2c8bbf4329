package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegistrarMovimientoCajaRequest body para POST /api/caja.
type RegistrarMovimientoCajaRequest struct {
	Tipo     string          `json:"tipo"` // ingreso | egreso
	Concepto string          `json:"concepto"`
	Monto    decimal.Decimal `json:"monto"`
	Fecha    string          `json:"fecha,omitempty"` // YYYY-MM-DD; vacío = hoy
}

type MovimientoCajaResponse struct {
	ID         string          `json:"id"`
	SucursalID string          `json:"sucursal_id"`
	Tipo       string          `json:"tipo"`
	Concepto   string          `json:"concepto"`
	Monto      decimal.Decimal `json:"monto"`
	Fecha      time.Time       `json:"fecha"`
	ActorID    string          `json:"actor_id"`
	CreatedAt  time.Time       `json:"created_at"`
}

// CajaDiaResponse movimientos y saldo de un día.
type CajaDiaResponse struct {
	Fecha       string                   `json:"fecha"`
	Movimientos []MovimientoCajaResponse `json:"movimientos"`
	Saldo       decimal.Decimal          `json:"saldo"`
}
