package repository

import "github.com/tu-usuario/pos-backoffice/internal/domain/entity"

// HistorialVentaRepository define el puerto de persistencia para el historial de ediciones.
// Append-only; lo escribe el outbox, no la transacción de edición.
type HistorialVentaRepository interface {
	Create(registro *entity.HistorialVenta) error
	ListByVenta(ventaID string, limit, offset int) ([]*entity.HistorialVenta, error)
}
