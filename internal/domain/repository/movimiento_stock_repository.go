package repository

import (
	"time"

	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
)

// MovimientoStockRepository define el puerto de persistencia para el log de movimientos.
// Solo inserta y lista: el log es append-only.
type MovimientoStockRepository interface {
	Create(mov *entity.MovimientoStock) error
	ListBySucursal(sucursalID string, desde, hasta *time.Time, limit, offset int) ([]*entity.MovimientoStock, error)
	ListByProducto(productoID string, desde, hasta *time.Time, limit, offset int) ([]*entity.MovimientoStock, error)
}
