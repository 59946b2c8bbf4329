package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNoEncontrado      = errors.New("recurso no encontrado")
	ErrEntradaInvalida   = errors.New("entrada inválida")
	ErrDuplicado         = errors.New("recurso duplicado")
	ErrNoAutorizado      = errors.New("no autorizado")
	ErrUsuarioNoExiste   = errors.New("usuario no encontrado")
	ErrEmailYaRegistrado = errors.New("el email ya está registrado")
	ErrCompraYaProcesada = errors.New("la compra ya fue recibida")
	ErrSinSucursal       = errors.New("no hay sucursal destino (ni propia ni principal)")
	ErrPagoExcedeTotal   = errors.New("el pago excede el saldo de la venta")
)

// StockInsuficienteError indica que una salida pedía más unidades de las disponibles.
// Disponible ya incluye lo reservado por la propia venta cuando aplica (edición).
type StockInsuficienteError struct {
	ProductoID string
	Disponible decimal.Decimal
	Solicitado decimal.Decimal
}

func (e *StockInsuficienteError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s: disponible %s, solicitado %s",
		e.ProductoID, e.Disponible.String(), e.Solicitado.String())
}

// EstadoInvalidoError indica una operación sobre un documento en estado terminal
// (editar una venta entregada, recibir una compra cancelada, etc.).
type EstadoInvalidoError struct {
	Entidad   string // "venta" | "compra"
	ID        string
	Estado    string
	Operacion string
}

func (e *EstadoInvalidoError) Error() string {
	return fmt.Sprintf("%s %s en estado %q no admite %s", e.Entidad, e.ID, e.Estado, e.Operacion)
}
