package ventas

import (
	"context"

	"github.com/tu-usuario/pos-backoffice/internal/application/historial"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

// TxRunner transacción para los flujos de venta: cabecera, ítems, contador
// de stock y movimientos se confirman juntos.
type TxRunner interface {
	RunVenta(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movRepo repository.MovimientoStockRepository,
		ventaRepo repository.VentaRepository,
	) error) error
}

// PublicadorHistorial canal best-effort para el historial de ediciones.
// Se invoca después del commit; su falla nunca revierte la edición.
type PublicadorHistorial interface {
	Publicar(ev historial.Evento)
}
