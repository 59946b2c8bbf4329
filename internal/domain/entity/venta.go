package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una venta. Los estados terminales
// (entregada, cancelada, devuelta) no admiten edición de ítems.
const (
	EstadoVentaEnProceso = "en_proceso"
	EstadoVentaEntregada = "entregada"
	EstadoVentaCancelada = "cancelada"
	EstadoVentaDevuelta  = "devuelta"
)

// Estados de pago de una venta.
const (
	PagoPendiente = "pendiente"
	PagoParcial   = "parcial"
	PagoPagada    = "pagada"
)

// Venta representa una transacción de punto de venta con sus ítems embebidos.
// ClienteID vacío significa consumidor final (venta de mostrador).
type Venta struct {
	ID          string
	SucursalID  string
	ClienteID   string
	Items       []ItemVenta
	Subtotal    decimal.Decimal
	Total       decimal.Decimal
	MontoPagado decimal.Decimal
	EstadoPago  string
	Estado      string
	Eliminada   bool
	CreadaPor   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemVenta línea de una venta. Subtotal = Cantidad × PrecioUnitario.
type ItemVenta struct {
	ProductoID     string
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal
}

// EsTerminal indica si el estado ya no admite edición de ítems.
func (v *Venta) EsTerminal() bool {
	return v.Estado == EstadoVentaEntregada || v.Estado == EstadoVentaCancelada || v.Estado == EstadoVentaDevuelta
}

// CalcularEstadoPago deriva el estado de pago a partir de monto pagado y total.
func CalcularEstadoPago(pagado, total decimal.Decimal) string {
	switch {
	case pagado.IsZero():
		return PagoPendiente
	case pagado.GreaterThanOrEqual(total):
		return PagoPagada
	default:
		return PagoParcial
	}
}

// ResumenDiaVentas agregados de ventas de un día (no eliminadas).
type ResumenDiaVentas struct {
	Fecha           time.Time
	CantidadVentas  int
	TotalVendido    decimal.Decimal
	TotalCobrado    decimal.Decimal
	VentasPorEstado map[string]int
}
