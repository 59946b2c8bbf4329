package repository

import "github.com/tu-usuario/pos-backoffice/internal/domain/entity"

// ClienteRepository define el puerto de persistencia para clientes (DIP).
type ClienteRepository interface {
	Create(cliente *entity.Cliente) error
	GetByID(id string) (*entity.Cliente, error)
	ListByIDs(ids []string) ([]*entity.Cliente, error)
	Update(cliente *entity.Cliente) error
	List(limit, offset int) ([]*entity.Cliente, error)
	Delete(id string) error
}
