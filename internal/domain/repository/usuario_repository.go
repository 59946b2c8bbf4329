package repository

import "github.com/tu-usuario/pos-backoffice/internal/domain/entity"

// UsuarioRepository define el puerto de persistencia para usuarios (DIP).
type UsuarioRepository interface {
	Create(usuario *entity.Usuario) error
	GetByID(id string) (*entity.Usuario, error)
	FindByEmail(email string) (*entity.Usuario, error)
}
