package ventas_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
)

const (
	sucursalTest = "suc-1"
	actorTest    = "user-1"
)

func ctxTest() dto.ContextoSolicitud {
	return dto.ContextoSolicitud{ActorID: actorTest, SucursalID: sucursalTest}
}

// ventaEnProceso arma una venta con una línea de prod-a ya confirmada.
func ventaEnProceso(cantidad, precio string) *entity.Venta {
	c := dec(cantidad)
	p := dec(precio)
	total := c.Mul(p)
	now := time.Now()
	return &entity.Venta{
		ID:         "venta-1",
		SucursalID: sucursalTest,
		Items: []entity.ItemVenta{{
			ProductoID:     "prod-a",
			Cantidad:       c,
			PrecioUnitario: p,
			Subtotal:       total,
		}},
		Subtotal:    total,
		Total:       total,
		MontoPagado: dec("0"),
		EstadoPago:  entity.PagoPendiente,
		Estado:      entity.EstadoVentaEnProceso,
		CreadaPor:   actorTest,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Subir la cantidad consume solo la diferencia; el disponible para la
// validación incluye lo que la propia venta ya tenía comprometido.
func TestEditarItems_AumentaCantidad(t *testing.T) {
	e := nuevoEntorno().
		conProducto("prod-a", "Aceite 1L", dec("100")).
		conVenta(ventaEnProceso("3", "100"))
	// 10 en el contador; las 3 de la venta ya están descontadas.
	e.stock.fijar("prod-a", sucursalTest, dec("10"))

	resp, err := e.uc.EditarItems(context.Background(), ctxTest(), "venta-1", dto.EditarVentaRequest{
		Items: []dto.ItemVentaRequest{{ProductoID: "prod-a", Cantidad: dec("7"), PrecioUnitario: dec("100")}},
	})
	require.NoError(t, err, "7 unidades caben: disponible = 10 del contador + 3 propios")

	assert.True(t, e.stock.cantidad("prod-a", sucursalTest).Equal(dec("6")),
		"el ajuste debe ser solo la diferencia (4), no la cantidad completa")
	assert.True(t, resp.Total.Equal(dec("700")))

	require.Len(t, e.movs.movs, 1, "un único movimiento por producto ajustado")
	mov := e.movs.movs[0]
	assert.Equal(t, entity.MovimientoSalida, mov.Tipo)
	assert.True(t, mov.Cantidad.Equal(dec("4")), "la cantidad del movimiento es el delta, en positivo")
	assert.Equal(t, entity.MotivoEdicionVenta, mov.Motivo)
	assert.Equal(t, "venta-1", mov.ReferenciaID)

	require.Len(t, e.pub.eventos, 1, "la edición confirmada publica su evento de historial")
	ev := e.pub.eventos[0]
	assert.Equal(t, "edicion", ev.Tipo)
	assert.True(t, ev.TotalAnterior.Equal(dec("300")))
	assert.True(t, ev.TotalNuevo.Equal(dec("700")))
}

// Bajar la cantidad restaura la diferencia como entrada.
func TestEditarItems_ReduceCantidad(t *testing.T) {
	e := nuevoEntorno().
		conProducto("prod-a", "Aceite 1L", dec("100")).
		conVenta(ventaEnProceso("3", "100"))
	e.stock.fijar("prod-a", sucursalTest, dec("7"))

	_, err := e.uc.EditarItems(context.Background(), ctxTest(), "venta-1", dto.EditarVentaRequest{
		Items: []dto.ItemVentaRequest{{ProductoID: "prod-a", Cantidad: dec("1"), PrecioUnitario: dec("100")}},
	})
	require.NoError(t, err)

	assert.True(t, e.stock.cantidad("prod-a", sucursalTest).Equal(dec("9")))
	require.Len(t, e.movs.movs, 1)
	assert.Equal(t, entity.MovimientoEntrada, e.movs.movs[0].Tipo)
	assert.True(t, e.movs.movs[0].Cantidad.Equal(dec("2")))
}

// Sin stock suficiente la edición aborta completa: ni stock, ni venta,
// ni movimientos, ni historial.
func TestEditarItems_StockInsuficiente_SinEfectos(t *testing.T) {
	e := nuevoEntorno().
		conProducto("prod-a", "Aceite 1L", dec("100")).
		conVenta(ventaEnProceso("3", "100"))
	e.stock.fijar("prod-a", sucursalTest, dec("10"))

	_, err := e.uc.EditarItems(context.Background(), ctxTest(), "venta-1", dto.EditarVentaRequest{
		Items: []dto.ItemVentaRequest{{ProductoID: "prod-a", Cantidad: dec("20"), PrecioUnitario: dec("100")}},
	})

	var stockErr *domain.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.True(t, stockErr.Disponible.Equal(dec("13")), "el disponible reportado incluye lo propio de la venta")
	assert.True(t, stockErr.Solicitado.Equal(dec("20")))

	assert.True(t, e.stock.cantidad("prod-a", sucursalTest).Equal(dec("10")), "el stock no debe moverse")
	venta, _ := e.ventas.GetByID("venta-1")
	assert.True(t, venta.Total.Equal(dec("300")), "la venta queda como estaba")
	assert.True(t, venta.Items[0].Cantidad.Equal(dec("3")))
	assert.Empty(t, e.movs.movs)
	assert.Empty(t, e.pub.eventos)
}

// Si el nuevo total queda por debajo de lo ya pagado, lo pagado se
// recorta al total y el estado de pago se recalcula contra el nuevo
// total: monto_pagado nunca supera el total.
func TestEditarItems_RecortaMontoPagado(t *testing.T) {
	venta := ventaEnProceso("3", "100")
	venta.MontoPagado = dec("300")
	venta.EstadoPago = entity.PagoPagada
	e := nuevoEntorno().
		conProducto("prod-a", "Aceite 1L", dec("100")).
		conVenta(venta)
	e.stock.fijar("prod-a", sucursalTest, dec("7"))

	resp, err := e.uc.EditarItems(context.Background(), ctxTest(), "venta-1", dto.EditarVentaRequest{
		Items: []dto.ItemVentaRequest{{ProductoID: "prod-a", Cantidad: dec("1"), PrecioUnitario: dec("100")}},
	})
	require.NoError(t, err)

	assert.True(t, resp.Total.Equal(dec("100")))
	assert.True(t, resp.MontoPagado.Equal(dec("100")), "lo pagado se recorta al nuevo total")
	assert.Equal(t, entity.PagoPagada, resp.EstadoPago)

	guardada, _ := e.ventas.GetByID("venta-1")
	assert.True(t, guardada.MontoPagado.LessThanOrEqual(guardada.Total),
		"monto_pagado nunca supera el total")
	assert.True(t, guardada.MontoPagado.Equal(dec("100")))
}

// Un abono parcial por debajo del nuevo total se conserva tal cual.
func TestEditarItems_ConservaPagoParcial(t *testing.T) {
	venta := ventaEnProceso("3", "100")
	venta.MontoPagado = dec("50")
	venta.EstadoPago = entity.PagoParcial
	e := nuevoEntorno().
		conProducto("prod-a", "Aceite 1L", dec("100")).
		conVenta(venta)
	e.stock.fijar("prod-a", sucursalTest, dec("7"))

	resp, err := e.uc.EditarItems(context.Background(), ctxTest(), "venta-1", dto.EditarVentaRequest{
		Items: []dto.ItemVentaRequest{{ProductoID: "prod-a", Cantidad: dec("1"), PrecioUnitario: dec("100")}},
	})
	require.NoError(t, err)

	assert.True(t, resp.MontoPagado.Equal(dec("50")), "un abono menor al nuevo total no se toca")
	assert.Equal(t, entity.PagoParcial, resp.EstadoPago)
}

// Con restauraciones y reducciones mezcladas, los bloqueos de fila se
// toman en un único recorrido ordenado por producto; así dos ediciones
// concurrentes con roles invertidos nunca se cruzan en orden.
func TestEditarItems_BloqueosEnOrdenPorProducto(t *testing.T) {
	venta := ventaEnProceso("3", "100")
	venta.Items = append(venta.Items, entity.ItemVenta{
		ProductoID:     "prod-b",
		Cantidad:       dec("1"),
		PrecioUnitario: dec("50"),
		Subtotal:       dec("50"),
	})
	venta.Subtotal = dec("350")
	venta.Total = dec("350")
	e := nuevoEntorno().
		conProducto("prod-a", "Aceite 1L", dec("100")).
		conProducto("prod-b", "Filtro", dec("50")).
		conVenta(venta)
	e.stock.fijar("prod-a", sucursalTest, dec("10"))
	e.stock.fijar("prod-b", sucursalTest, dec("10"))

	// prod-a baja (restaura) y prod-b sube (reduce): los roles quedan
	// invertidos respecto al orden alfabético de los productos.
	_, err := e.uc.EditarItems(context.Background(), ctxTest(), "venta-1", dto.EditarVentaRequest{
		Items: []dto.ItemVentaRequest{
			{ProductoID: "prod-a", Cantidad: dec("1"), PrecioUnitario: dec("100")},
			{ProductoID: "prod-b", Cantidad: dec("2"), PrecioUnitario: dec("50")},
		},
	})
	require.NoError(t, err)

	require.NotEmpty(t, e.stock.bloqueos)
	for i := 1; i < len(e.stock.bloqueos); i++ {
		assert.LessOrEqual(t, e.stock.bloqueos[i-1], e.stock.bloqueos[i],
			"los bloqueos de stock deben avanzar en orden por producto")
	}
}

// Una venta en estado terminal no admite edición de ítems.
func TestEditarItems_EstadoTerminal(t *testing.T) {
	venta := ventaEnProceso("3", "100")
	venta.Estado = entity.EstadoVentaEntregada
	e := nuevoEntorno().
		conProducto("prod-a", "Aceite 1L", dec("100")).
		conVenta(venta)
	e.stock.fijar("prod-a", sucursalTest, dec("7"))

	_, err := e.uc.EditarItems(context.Background(), ctxTest(), "venta-1", dto.EditarVentaRequest{
		Items: []dto.ItemVentaRequest{{ProductoID: "prod-a", Cantidad: dec("1"), PrecioUnitario: dec("100")}},
	})

	var estadoErr *domain.EstadoInvalidoError
	require.ErrorAs(t, err, &estadoErr)
	assert.Equal(t, entity.EstadoVentaEntregada, estadoErr.Estado)
	assert.Empty(t, e.movs.movs)
}

// Detalle equivalente: sin deltas, sin movimientos, pero la edición se
// registra igual en el historial.
func TestEditarItems_SinCambiosDeCantidad(t *testing.T) {
	e := nuevoEntorno().
		conProducto("prod-a", "Aceite 1L", dec("100")).
		conVenta(ventaEnProceso("3", "100"))
	e.stock.fijar("prod-a", sucursalTest, dec("7"))

	_, err := e.uc.EditarItems(context.Background(), ctxTest(), "venta-1", dto.EditarVentaRequest{
		Items: []dto.ItemVentaRequest{{ProductoID: "prod-a", Cantidad: dec("3"), PrecioUnitario: dec("100")}},
	})
	require.NoError(t, err)

	assert.True(t, e.stock.cantidad("prod-a", sucursalTest).Equal(dec("7")))
	assert.Empty(t, e.movs.movs, "sin diferencia de cantidades no hay ajuste de stock")
	require.Len(t, e.pub.eventos, 1)
	assert.Empty(t, e.pub.eventos[0].Deltas)
}

func TestEditarItems_DetalleVacio(t *testing.T) {
	e := nuevoEntorno().conVenta(ventaEnProceso("3", "100"))

	_, err := e.uc.EditarItems(context.Background(), ctxTest(), "venta-1", dto.EditarVentaRequest{})
	assert.True(t, errors.Is(err, domain.ErrEntradaInvalida))
}

func TestEditarItems_VentaInexistente(t *testing.T) {
	e := nuevoEntorno().conProducto("prod-a", "Aceite 1L", dec("100"))

	_, err := e.uc.EditarItems(context.Background(), ctxTest(), "no-existe", dto.EditarVentaRequest{
		Items: []dto.ItemVentaRequest{{ProductoID: "prod-a", Cantidad: dec("1"), PrecioUnitario: dec("100")}},
	})
	assert.True(t, errors.Is(err, domain.ErrNoEncontrado))
}
