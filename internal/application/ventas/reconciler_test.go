package ventas_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-backoffice/internal/application/ventas"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
)

func item(productoID, cantidad string) entity.ItemVenta {
	return entity.ItemVenta{ProductoID: productoID, Cantidad: dec(cantidad)}
}

// Producto que desaparece del detalle: se restaura la cantidad completa.
func TestDiffItems_ProductoQuitado(t *testing.T) {
	deltas := ventas.DiffItems(
		[]entity.ItemVenta{item("prod-a", "3")},
		nil,
	)
	require.Len(t, deltas, 1)
	assert.Equal(t, "prod-a", deltas[0].ProductoID)
	assert.True(t, deltas[0].Cantidad.Equal(dec("3")), "quitar el producto restaura 3")
}

// Producto nuevo en el detalle: se consume la cantidad completa.
func TestDiffItems_ProductoAgregado(t *testing.T) {
	deltas := ventas.DiffItems(
		nil,
		[]entity.ItemVenta{item("prod-a", "2")},
	)
	require.Len(t, deltas, 1)
	assert.True(t, deltas[0].Cantidad.Equal(dec("-2")), "agregar el producto consume 2")
}

// Cambio de cantidad: el delta es la diferencia, no la cantidad completa.
func TestDiffItems_CantidadCambiada(t *testing.T) {
	deltas := ventas.DiffItems(
		[]entity.ItemVenta{item("prod-a", "3")},
		[]entity.ItemVenta{item("prod-a", "5")},
	)
	require.Len(t, deltas, 1)
	assert.True(t, deltas[0].Cantidad.Equal(dec("-2")), "subir de 3 a 5 consume solo 2")
}

// Cantidad idéntica no genera entrada.
func TestDiffItems_SinCambios(t *testing.T) {
	deltas := ventas.DiffItems(
		[]entity.ItemVenta{item("prod-a", "3"), item("prod-b", "1")},
		[]entity.ItemVenta{item("prod-b", "1"), item("prod-a", "3")},
	)
	assert.Empty(t, deltas, "un detalle equivalente no implica ajuste alguno")
}

// Líneas repetidas del mismo producto se agregan antes de comparar.
func TestDiffItems_LineasRepetidasSeAgregan(t *testing.T) {
	deltas := ventas.DiffItems(
		[]entity.ItemVenta{item("prod-a", "2"), item("prod-a", "1")},
		[]entity.ItemVenta{item("prod-a", "3")},
	)
	assert.Empty(t, deltas)
}

// El resultado queda ordenado por producto (orden de bloqueo estable).
func TestDiffItems_OrdenadoPorProducto(t *testing.T) {
	deltas := ventas.DiffItems(
		[]entity.ItemVenta{item("prod-c", "1"), item("prod-a", "1")},
		[]entity.ItemVenta{item("prod-b", "1")},
	)
	require.Len(t, deltas, 3)
	assert.Equal(t, "prod-a", deltas[0].ProductoID)
	assert.Equal(t, "prod-b", deltas[1].ProductoID)
	assert.Equal(t, "prod-c", deltas[2].ProductoID)
}
