package repository

import (
	"time"

	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
)

// FiltroCompras criterios de /compras/filtrar.
type FiltroCompras struct {
	Estado      string
	ProveedorID string
	Desde       *time.Time
	Hasta       *time.Time
	Limit       int
	Offset      int
}

// CompraRepository define el puerto de persistencia para compras (cabecera + ítems).
type CompraRepository interface {
	Create(compra *entity.Compra) error
	// GetByID devuelve nil, nil si no existe. Incluye ítems.
	GetByID(id string) (*entity.Compra, error)
	// GetForUpdate bloquea la cabecera; dos recepciones concurrentes se serializan aquí.
	GetForUpdate(id string) (*entity.Compra, error)
	Update(compra *entity.Compra) error
	ReplaceItems(compraID string, items []entity.ItemCompra) error
	List(limit, offset int) ([]*entity.Compra, error)
	Filtrar(filtro FiltroCompras) ([]*entity.Compra, error)
	Delete(id string) error
}
