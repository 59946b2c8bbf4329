package ventas_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// RegistrarPago
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistrarPago_Parcial(t *testing.T) {
	e := nuevoEntorno().
		conProducto("prod-a", "Aceite 1L", dec("100")).
		conVenta(ventaEnProceso("3", "100"))

	resp, err := e.uc.RegistrarPago(context.Background(), "venta-1", dec("120"))
	require.NoError(t, err)
	assert.True(t, resp.MontoPagado.Equal(dec("120")))
	assert.Equal(t, entity.PagoParcial, resp.EstadoPago)
}

func TestRegistrarPago_CompletaElTotal(t *testing.T) {
	e := nuevoEntorno().
		conProducto("prod-a", "Aceite 1L", dec("100")).
		conVenta(ventaEnProceso("3", "100"))

	_, err := e.uc.RegistrarPago(context.Background(), "venta-1", dec("100"))
	require.NoError(t, err)
	resp, err := e.uc.RegistrarPago(context.Background(), "venta-1", dec("200"))
	require.NoError(t, err)
	assert.Equal(t, entity.PagoPagada, resp.EstadoPago, "los abonos se acumulan hasta el total")
}

// monto_pagado nunca supera el total.
func TestRegistrarPago_ExcedeTotal(t *testing.T) {
	e := nuevoEntorno().
		conProducto("prod-a", "Aceite 1L", dec("100")).
		conVenta(ventaEnProceso("3", "100"))

	_, err := e.uc.RegistrarPago(context.Background(), "venta-1", dec("301"))
	assert.True(t, errors.Is(err, domain.ErrPagoExcedeTotal))

	venta, _ := e.ventas.GetByID("venta-1")
	assert.True(t, venta.MontoPagado.IsZero(), "el abono rechazado no se registra")
}

func TestRegistrarPago_VentaCancelada(t *testing.T) {
	venta := ventaEnProceso("3", "100")
	venta.Estado = entity.EstadoVentaCancelada
	e := nuevoEntorno().conVenta(venta)

	_, err := e.uc.RegistrarPago(context.Background(), "venta-1", dec("50"))
	var estadoErr *domain.EstadoInvalidoError
	assert.ErrorAs(t, err, &estadoErr)
}

func TestRegistrarPago_MontoNoPositivo(t *testing.T) {
	e := nuevoEntorno().conVenta(ventaEnProceso("3", "100"))

	_, err := e.uc.RegistrarPago(context.Background(), "venta-1", dec("0"))
	assert.True(t, errors.Is(err, domain.ErrEntradaInvalida))
}

// ──────────────────────────────────────────────────────────────────────────────
// CambiarEstado
// ──────────────────────────────────────────────────────────────────────────────

// Entregar no toca stock.
func TestCambiarEstado_Entregada(t *testing.T) {
	e := nuevoEntorno().
		conProducto("prod-a", "Aceite 1L", dec("100")).
		conVenta(ventaEnProceso("3", "100"))
	e.stock.fijar("prod-a", sucursalTest, dec("7"))

	resp, err := e.uc.CambiarEstado(context.Background(), ctxTest(), "venta-1", entity.EstadoVentaEntregada)
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoVentaEntregada, resp.Estado)
	assert.True(t, e.stock.cantidad("prod-a", sucursalTest).Equal(dec("7")))
	assert.Empty(t, e.movs.movs)
}

// Cancelar restaura el stock completo de cada línea.
func TestCambiarEstado_CanceladaRestauraStock(t *testing.T) {
	e := nuevoEntorno().
		conProducto("prod-a", "Aceite 1L", dec("100")).
		conVenta(ventaEnProceso("3", "100"))
	e.stock.fijar("prod-a", sucursalTest, dec("7"))

	resp, err := e.uc.CambiarEstado(context.Background(), ctxTest(), "venta-1", entity.EstadoVentaCancelada)
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoVentaCancelada, resp.Estado)
	assert.True(t, e.stock.cantidad("prod-a", sucursalTest).Equal(dec("10")),
		"la cancelación devuelve las 3 unidades vendidas")

	require.Len(t, e.movs.movs, 1)
	assert.Equal(t, entity.MovimientoEntrada, e.movs.movs[0].Tipo)
	assert.Equal(t, entity.MotivoCancelacionVenta, e.movs.movs[0].Motivo)
}

// Los estados terminales no admiten más transiciones.
func TestCambiarEstado_DesdeTerminal(t *testing.T) {
	venta := ventaEnProceso("3", "100")
	venta.Estado = entity.EstadoVentaEntregada
	e := nuevoEntorno().conVenta(venta)

	_, err := e.uc.CambiarEstado(context.Background(), ctxTest(), "venta-1", entity.EstadoVentaCancelada)
	var estadoErr *domain.EstadoInvalidoError
	assert.ErrorAs(t, err, &estadoErr)
}

func TestCambiarEstado_EstadoDesconocido(t *testing.T) {
	e := nuevoEntorno().conVenta(ventaEnProceso("3", "100"))

	_, err := e.uc.CambiarEstado(context.Background(), ctxTest(), "venta-1", "archivada")
	assert.True(t, errors.Is(err, domain.ErrEntradaInvalida))
}

// ──────────────────────────────────────────────────────────────────────────────
// DevolucionParcial
// ──────────────────────────────────────────────────────────────────────────────

func ventaEntregada(cantidad, precio string) *entity.Venta {
	v := ventaEnProceso(cantidad, precio)
	v.Estado = entity.EstadoVentaEntregada
	v.MontoPagado = v.Total
	v.EstadoPago = entity.PagoPagada
	return v
}

func TestDevolucionParcial_RestauraYRecalcula(t *testing.T) {
	e := nuevoEntorno().
		conProducto("prod-a", "Aceite 1L", dec("100")).
		conVenta(ventaEntregada("3", "100"))
	e.stock.fijar("prod-a", sucursalTest, dec("7"))

	resp, err := e.uc.DevolucionParcial(context.Background(), ctxTest(), "venta-1", dto.DevolucionParcialRequest{
		Items: []dto.ItemVentaRequest{{ProductoID: "prod-a", Cantidad: dec("1")}},
	})
	require.NoError(t, err)

	assert.True(t, e.stock.cantidad("prod-a", sucursalTest).Equal(dec("8")))
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].Cantidad.Equal(dec("2")))
	assert.True(t, resp.Total.Equal(dec("200")))
	assert.True(t, resp.MontoPagado.Equal(dec("200")), "lo pagado se recorta al nuevo total")
	assert.Equal(t, entity.EstadoVentaEntregada, resp.Estado, "con líneas restantes la venta sigue entregada")

	require.Len(t, e.movs.movs, 1)
	assert.Equal(t, entity.MotivoDevolucionParcial, e.movs.movs[0].Motivo)

	require.Len(t, e.pub.eventos, 1)
	assert.Equal(t, "devolucion", e.pub.eventos[0].Tipo)
}

// Devolver todo el detalle deja la venta en devuelta.
func TestDevolucionParcial_DevuelveTodo(t *testing.T) {
	e := nuevoEntorno().
		conProducto("prod-a", "Aceite 1L", dec("100")).
		conVenta(ventaEntregada("3", "100"))
	e.stock.fijar("prod-a", sucursalTest, dec("7"))

	resp, err := e.uc.DevolucionParcial(context.Background(), ctxTest(), "venta-1", dto.DevolucionParcialRequest{
		Items: []dto.ItemVentaRequest{{ProductoID: "prod-a", Cantidad: dec("3")}},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.EstadoVentaDevuelta, resp.Estado)
	assert.Empty(t, resp.Items)
	assert.True(t, resp.Total.IsZero())
	assert.True(t, e.stock.cantidad("prod-a", sucursalTest).Equal(dec("10")))
}

// No se puede devolver más de lo vendido.
func TestDevolucionParcial_ExcedeLoVendido(t *testing.T) {
	e := nuevoEntorno().
		conProducto("prod-a", "Aceite 1L", dec("100")).
		conVenta(ventaEntregada("3", "100"))
	e.stock.fijar("prod-a", sucursalTest, dec("7"))

	_, err := e.uc.DevolucionParcial(context.Background(), ctxTest(), "venta-1", dto.DevolucionParcialRequest{
		Items: []dto.ItemVentaRequest{{ProductoID: "prod-a", Cantidad: dec("4")}},
	})
	assert.True(t, errors.Is(err, domain.ErrEntradaInvalida))
	assert.True(t, e.stock.cantidad("prod-a", sucursalTest).Equal(dec("7")), "la devolución rechazada no toca stock")
}

// Solo ventas entregadas admiten devolución.
func TestDevolucionParcial_VentaEnProceso(t *testing.T) {
	e := nuevoEntorno().
		conProducto("prod-a", "Aceite 1L", dec("100")).
		conVenta(ventaEnProceso("3", "100"))

	_, err := e.uc.DevolucionParcial(context.Background(), ctxTest(), "venta-1", dto.DevolucionParcialRequest{
		Items: []dto.ItemVentaRequest{{ProductoID: "prod-a", Cantidad: dec("1")}},
	})
	var estadoErr *domain.EstadoInvalidoError
	assert.ErrorAs(t, err, &estadoErr)
}

// Producto ajeno a la venta.
func TestDevolucionParcial_ProductoNoVendido(t *testing.T) {
	e := nuevoEntorno().
		conProducto("prod-a", "Aceite 1L", dec("100")).
		conVenta(ventaEntregada("3", "100"))

	_, err := e.uc.DevolucionParcial(context.Background(), ctxTest(), "venta-1", dto.DevolucionParcialRequest{
		Items: []dto.ItemVentaRequest{{ProductoID: "prod-z", Cantidad: dec("1")}},
	})
	assert.True(t, errors.Is(err, domain.ErrEntradaInvalida))
}
