package ventas

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
)

// DeltaProducto delta neto de stock implicado por la edición de una venta.
// Cantidad = original − nueva: positiva restaura stock (se quitó o redujo
// el ítem), negativa consume (se agregó o aumentó).
type DeltaProducto struct {
	ProductoID string
	Cantidad   decimal.Decimal
}

// DiffItems compara el detalle original y el nuevo, por producto:
//
//   - producto solo en el original      -> restaura la cantidad completa
//   - producto en ambos, cantidad distinta -> ± la diferencia
//   - producto solo en el nuevo          -> consume la cantidad completa
//   - diferencia cero                    -> sin entrada
//
// El resultado queda ordenado por producto para que el bloqueo de filas
// siga siempre el mismo orden entre ediciones concurrentes.
func DiffItems(originales, nuevos []entity.ItemVenta) []DeltaProducto {
	origPorProducto := make(map[string]decimal.Decimal, len(originales))
	for _, it := range originales {
		origPorProducto[it.ProductoID] = origPorProducto[it.ProductoID].Add(it.Cantidad)
	}
	nuevoPorProducto := make(map[string]decimal.Decimal, len(nuevos))
	for _, it := range nuevos {
		nuevoPorProducto[it.ProductoID] = nuevoPorProducto[it.ProductoID].Add(it.Cantidad)
	}

	var deltas []DeltaProducto
	for productoID, orig := range origPorProducto {
		delta := orig.Sub(nuevoPorProducto[productoID])
		if !delta.IsZero() {
			deltas = append(deltas, DeltaProducto{ProductoID: productoID, Cantidad: delta})
		}
	}
	for productoID, nueva := range nuevoPorProducto {
		if _, existia := origPorProducto[productoID]; !existia {
			deltas = append(deltas, DeltaProducto{ProductoID: productoID, Cantidad: nueva.Neg()})
		}
	}

	sort.Slice(deltas, func(i, j int) bool { return deltas[i].ProductoID < deltas[j].ProductoID })
	return deltas
}
