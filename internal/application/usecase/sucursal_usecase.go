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

// SucursalUseCase CRUD de sucursales. A lo sumo una es principal: marcar
// una nueva desmarca la anterior.
type SucursalUseCase struct {
	repo repository.SucursalRepository
}

func NewSucursalUseCase(repo repository.SucursalRepository) *SucursalUseCase {
	return &SucursalUseCase{repo: repo}
}

func (uc *SucursalUseCase) Crear(ctx context.Context, in dto.CrearSucursalRequest) (*dto.SucursalResponse, error) {
	if in.Nombre == "" {
		return nil, domain.ErrEntradaInvalida
	}
	if in.Principal {
		if err := uc.desmarcarPrincipal(); err != nil {
			return nil, err
		}
	}
	now := time.Now()
	sucursal := &entity.Sucursal{
		ID:        uuid.New().String(),
		Nombre:    in.Nombre,
		Direccion: in.Direccion,
		Principal: in.Principal,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(sucursal); err != nil {
		return nil, err
	}
	return toSucursalResponse(sucursal), nil
}

func (uc *SucursalUseCase) Obtener(ctx context.Context, id string) (*dto.SucursalResponse, error) {
	sucursal, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sucursal == nil {
		return nil, domain.ErrNoEncontrado
	}
	return toSucursalResponse(sucursal), nil
}

func (uc *SucursalUseCase) Listar(ctx context.Context, limit, offset int) ([]dto.SucursalResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SucursalResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSucursalResponse(s))
	}
	return out, nil
}

func (uc *SucursalUseCase) Actualizar(ctx context.Context, id string, in dto.ActualizarSucursalRequest) (*dto.SucursalResponse, error) {
	sucursal, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sucursal == nil {
		return nil, domain.ErrNoEncontrado
	}

	if in.Nombre != nil {
		if *in.Nombre == "" {
			return nil, domain.ErrEntradaInvalida
		}
		sucursal.Nombre = *in.Nombre
	}
	if in.Direccion != nil {
		sucursal.Direccion = *in.Direccion
	}
	if in.Principal != nil && *in.Principal != sucursal.Principal {
		if *in.Principal {
			if err := uc.desmarcarPrincipal(); err != nil {
				return nil, err
			}
		}
		sucursal.Principal = *in.Principal
	}
	sucursal.UpdatedAt = time.Now()

	if err := uc.repo.Update(sucursal); err != nil {
		return nil, err
	}
	return toSucursalResponse(sucursal), nil
}

func (uc *SucursalUseCase) Eliminar(ctx context.Context, id string) error {
	sucursal, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if sucursal == nil {
		return domain.ErrNoEncontrado
	}
	return uc.repo.Delete(id)
}

func (uc *SucursalUseCase) desmarcarPrincipal() error {
	actual, err := uc.repo.GetPrincipal()
	if err != nil {
		return err
	}
	if actual == nil {
		return nil
	}
	actual.Principal = false
	actual.UpdatedAt = time.Now()
	return uc.repo.Update(actual)
}

func toSucursalResponse(s *entity.Sucursal) *dto.SucursalResponse {
	return &dto.SucursalResponse{
		ID:        s.ID,
		Nombre:    s.Nombre,
		Direccion: s.Direccion,
		Principal: s.Principal,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
