package repository

import "github.com/tu-usuario/pos-backoffice/internal/domain/entity"

// ProductoRepository define el puerto de persistencia para productos (DIP).
type ProductoRepository interface {
	Create(producto *entity.Producto) error
	GetByID(id string) (*entity.Producto, error)
	// ListByIDs lookup en lote para enriquecimiento de respuestas.
	ListByIDs(ids []string) ([]*entity.Producto, error)
	Update(producto *entity.Producto) error
	List(limit, offset int) ([]*entity.Producto, error)
	Delete(id string) error
}
