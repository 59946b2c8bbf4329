package repository

import "github.com/tu-usuario/pos-backoffice/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar stock por producto+sucursal.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// Get devuelve cantidad cero (no error) si el producto aún no tiene stock en la sucursal.
	Get(productoID, sucursalID string) (*entity.StockSucursal, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE). Mismo contrato que Get.
	GetForUpdate(productoID, sucursalID string) (*entity.StockSucursal, error)
	Upsert(stock *entity.StockSucursal) error
	ListBySucursal(sucursalID string, limit, offset int) ([]*entity.StockSucursal, error)
	// ListBajoMinimo filas con cantidad <= cantidad_minima (y mínimo > 0).
	ListBajoMinimo(sucursalID string) ([]*entity.StockSucursal, error)
}
