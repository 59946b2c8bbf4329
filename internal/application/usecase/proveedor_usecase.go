package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

// ProveedorUseCase CRUD de proveedores.
type ProveedorUseCase struct {
	repo repository.ProveedorRepository
}

func NewProveedorUseCase(repo repository.ProveedorRepository) *ProveedorUseCase {
	return &ProveedorUseCase{repo: repo}
}

func (uc *ProveedorUseCase) Crear(ctx context.Context, in dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	if in.Nombre == "" {
		return nil, domain.ErrEntradaInvalida
	}
	now := time.Now()
	proveedor := &entity.Proveedor{
		ID:        uuid.New().String(),
		Nombre:    in.Nombre,
		Contacto:  in.Contacto,
		Telefono:  in.Telefono,
		Email:     in.Email,
		Activo:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(proveedor); err != nil {
		return nil, err
	}
	return toProveedorResponse(proveedor), nil
}

func (uc *ProveedorUseCase) Obtener(ctx context.Context, id string) (*dto.ProveedorResponse, error) {
	proveedor, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if proveedor == nil {
		return nil, domain.ErrNoEncontrado
	}
	return toProveedorResponse(proveedor), nil
}

func (uc *ProveedorUseCase) Listar(ctx context.Context, limit, offset int) ([]dto.ProveedorResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProveedorResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProveedorResponse(p))
	}
	return out, nil
}

func (uc *ProveedorUseCase) Actualizar(ctx context.Context, id string, in dto.ActualizarProveedorRequest) (*dto.ProveedorResponse, error) {
	proveedor, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if proveedor == nil {
		return nil, domain.ErrNoEncontrado
	}

	if in.Nombre != nil {
		if *in.Nombre == "" {
			return nil, domain.ErrEntradaInvalida
		}
		proveedor.Nombre = *in.Nombre
	}
	if in.Contacto != nil {
		proveedor.Contacto = *in.Contacto
	}
	if in.Telefono != nil {
		proveedor.Telefono = *in.Telefono
	}
	if in.Email != nil {
		proveedor.Email = *in.Email
	}
	if in.Activo != nil {
		proveedor.Activo = *in.Activo
	}
	proveedor.UpdatedAt = time.Now()

	if err := uc.repo.Update(proveedor); err != nil {
		return nil, err
	}
	return toProveedorResponse(proveedor), nil
}

// Eliminar borrado lógico. Las compras históricas siguen referenciando
// al proveedor; las respuestas degradan al placeholder si ya no resuelve.
func (uc *ProveedorUseCase) Eliminar(ctx context.Context, id string) error {
	proveedor, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if proveedor == nil {
		return domain.ErrNoEncontrado
	}
	return uc.repo.Delete(id)
}

func toProveedorResponse(p *entity.Proveedor) *dto.ProveedorResponse {
	return &dto.ProveedorResponse{
		ID:        p.ID,
		Nombre:    p.Nombre,
		Contacto:  p.Contacto,
		Telefono:  p.Telefono,
		Email:     p.Email,
		Activo:    p.Activo,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
