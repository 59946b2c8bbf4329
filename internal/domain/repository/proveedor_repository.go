package repository

import "github.com/tu-usuario/pos-backoffice/internal/domain/entity"

// ProveedorRepository define el puerto de persistencia para proveedores (DIP).
type ProveedorRepository interface {
	Create(proveedor *entity.Proveedor) error
	GetByID(id string) (*entity.Proveedor, error)
	ListByIDs(ids []string) ([]*entity.Proveedor, error)
	Update(proveedor *entity.Proveedor) error
	List(limit, offset int) ([]*entity.Proveedor, error)
	Delete(id string) error
}
