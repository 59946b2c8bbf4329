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
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

// Crear descuenta el stock de cada línea en la misma transacción.
func TestCrearVenta_DescuentaStock(t *testing.T) {
	e := nuevoEntorno().
		conProducto("prod-a", "Aceite 1L", dec("100")).
		conProducto("prod-b", "Filtro", dec("50"))
	e.stock.fijar("prod-a", sucursalTest, dec("10"))
	e.stock.fijar("prod-b", sucursalTest, dec("4"))

	resp, err := e.uc.Crear(context.Background(), ctxTest(), dto.CrearVentaRequest{
		Items: []dto.ItemVentaRequest{
			{ProductoID: "prod-a", Cantidad: dec("2"), PrecioUnitario: dec("100")},
			{ProductoID: "prod-b", Cantidad: dec("1"), PrecioUnitario: dec("50")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.EstadoVentaEnProceso, resp.Estado)
	assert.True(t, resp.Total.Equal(dec("250")))
	assert.Equal(t, entity.PagoPendiente, resp.EstadoPago)
	assert.True(t, e.stock.cantidad("prod-a", sucursalTest).Equal(dec("8")))
	assert.True(t, e.stock.cantidad("prod-b", sucursalTest).Equal(dec("3")))
	assert.Len(t, e.movs.movs, 2, "un movimiento de salida por línea")
}

// Precio unitario cero toma el precio de lista del producto.
func TestCrearVenta_PrecioDeLista(t *testing.T) {
	e := nuevoEntorno().conProducto("prod-a", "Aceite 1L", dec("150"))
	e.stock.fijar("prod-a", sucursalTest, dec("10"))

	resp, err := e.uc.Crear(context.Background(), ctxTest(), dto.CrearVentaRequest{
		Items: []dto.ItemVentaRequest{{ProductoID: "prod-a", Cantidad: dec("2")}},
	})
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(dec("300")))
}

// Sin stock suficiente nada queda escrito.
func TestCrearVenta_StockInsuficiente(t *testing.T) {
	e := nuevoEntorno().conProducto("prod-a", "Aceite 1L", dec("100"))
	e.stock.fijar("prod-a", sucursalTest, dec("1"))

	_, err := e.uc.Crear(context.Background(), ctxTest(), dto.CrearVentaRequest{
		Items: []dto.ItemVentaRequest{{ProductoID: "prod-a", Cantidad: dec("2"), PrecioUnitario: dec("100")}},
	})

	var stockErr *domain.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.True(t, e.stock.cantidad("prod-a", sucursalTest).Equal(dec("1")))
	assert.Empty(t, e.movs.movs)
	list, _ := e.ventas.List(repository.FiltroVentas{})
	assert.Empty(t, list, "la venta no debe persistirse")
}

// Sin sucursal en el request ni en el contexto no hay dónde descontar.
func TestCrearVenta_SinSucursal(t *testing.T) {
	e := nuevoEntorno().conProducto("prod-a", "Aceite 1L", dec("100"))

	_, err := e.uc.Crear(context.Background(), dto.ContextoSolicitud{ActorID: actorTest}, dto.CrearVentaRequest{
		Items: []dto.ItemVentaRequest{{ProductoID: "prod-a", Cantidad: dec("1"), PrecioUnitario: dec("100")}},
	})
	assert.True(t, errors.Is(err, domain.ErrSinSucursal))
}

// El pago inicial no puede superar el total.
func TestCrearVenta_PagoExcedeTotal(t *testing.T) {
	e := nuevoEntorno().conProducto("prod-a", "Aceite 1L", dec("100"))
	e.stock.fijar("prod-a", sucursalTest, dec("10"))

	_, err := e.uc.Crear(context.Background(), ctxTest(), dto.CrearVentaRequest{
		Items: []dto.ItemVentaRequest{{ProductoID: "prod-a", Cantidad: dec("1"), PrecioUnitario: dec("100")}},
		Pago:  dec("150"),
	})
	assert.True(t, errors.Is(err, domain.ErrPagoExcedeTotal))
}

// Eliminar solo admite ventas en estado terminal.
func TestEliminarVenta_EnProcesoRechazada(t *testing.T) {
	e := nuevoEntorno().conVenta(ventaEnProceso("3", "100"))

	err := e.uc.Eliminar(context.Background(), "venta-1")
	var estadoErr *domain.EstadoInvalidoError
	require.ErrorAs(t, err, &estadoErr)
	assert.Equal(t, "eliminación", estadoErr.Operacion)
}

func TestEliminarVenta_Terminal(t *testing.T) {
	venta := ventaEnProceso("3", "100")
	venta.Estado = entity.EstadoVentaEntregada
	e := nuevoEntorno().conVenta(venta)

	require.NoError(t, e.uc.Eliminar(context.Background(), "venta-1"))

	eliminadas, _ := e.ventas.ListEliminadas(10, 0)
	require.Len(t, eliminadas, 1, "el borrado es lógico: la venta sigue consultable")
	assert.Equal(t, "venta-1", eliminadas[0].ID)
}
