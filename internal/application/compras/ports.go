package compras

import (
	"context"

	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

// TxRunner transacción para la recepción de compras: la cabecera, el
// contador de stock y los movimientos se confirman juntos.
type TxRunner interface {
	RunCompra(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movRepo repository.MovimientoStockRepository,
		compraRepo repository.CompraRepository,
	) error) error
}
