package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovimientoEntrada = "entrada"
	MovimientoSalida  = "salida"
)

// Tipos de documento que referencian un movimiento.
const (
	ReferenciaVenta  = "venta"
	ReferenciaCompra = "compra"
	ReferenciaAjuste = "ajuste"
)

// Motivos estándar de movimientos generados por los flujos del sistema.
const (
	MotivoRecepcionCompra   = "recepción de compra"
	MotivoVenta             = "venta"
	MotivoEdicionVenta      = "edición de venta"
	MotivoCancelacionVenta  = "cancelación de venta"
	MotivoDevolucionParcial = "devolución parcial"
)

// MovimientoStock registro inmutable de auditoría de un cambio de stock.
// Nunca se actualiza ni se borra.
type MovimientoStock struct {
	ID             string
	SucursalID     string
	ProductoID     string
	Tipo           string          // entrada | salida
	Cantidad       decimal.Decimal // siempre positiva; el signo lo da Tipo
	Motivo         string
	ReferenciaTipo string // venta | compra | ajuste
	ReferenciaID   string
	ActorID        string
	CreatedAt      time.Time
}
