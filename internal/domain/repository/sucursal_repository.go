package repository

import "github.com/tu-usuario/pos-backoffice/internal/domain/entity"

// SucursalRepository define el puerto de persistencia para sucursales (DIP).
type SucursalRepository interface {
	Create(sucursal *entity.Sucursal) error
	GetByID(id string) (*entity.Sucursal, error)
	// GetPrincipal devuelve nil, nil si ninguna sucursal está marcada principal.
	GetPrincipal() (*entity.Sucursal, error)
	Update(sucursal *entity.Sucursal) error
	List(limit, offset int) ([]*entity.Sucursal, error)
	Delete(id string) error
}
