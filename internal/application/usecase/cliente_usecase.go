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

// ClienteUseCase CRUD de clientes registrados.
type ClienteUseCase struct {
	repo repository.ClienteRepository
}

func NewClienteUseCase(repo repository.ClienteRepository) *ClienteUseCase {
	return &ClienteUseCase{repo: repo}
}

func (uc *ClienteUseCase) Crear(ctx context.Context, in dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	if in.Nombre == "" {
		return nil, domain.ErrEntradaInvalida
	}
	now := time.Now()
	cliente := &entity.Cliente{
		ID:        uuid.New().String(),
		Nombre:    in.Nombre,
		Documento: in.Documento,
		Telefono:  in.Telefono,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(cliente); err != nil {
		return nil, err
	}
	return toClienteResponse(cliente), nil
}

func (uc *ClienteUseCase) Obtener(ctx context.Context, id string) (*dto.ClienteResponse, error) {
	cliente, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrNoEncontrado
	}
	return toClienteResponse(cliente), nil
}

func (uc *ClienteUseCase) Listar(ctx context.Context, limit, offset int) ([]dto.ClienteResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toClienteResponse(c))
	}
	return out, nil
}

func (uc *ClienteUseCase) Actualizar(ctx context.Context, id string, in dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	cliente, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrNoEncontrado
	}

	if in.Nombre != nil {
		if *in.Nombre == "" {
			return nil, domain.ErrEntradaInvalida
		}
		cliente.Nombre = *in.Nombre
	}
	if in.Documento != nil {
		cliente.Documento = *in.Documento
	}
	if in.Telefono != nil {
		cliente.Telefono = *in.Telefono
	}
	if in.Email != nil {
		cliente.Email = *in.Email
	}
	cliente.UpdatedAt = time.Now()

	if err := uc.repo.Update(cliente); err != nil {
		return nil, err
	}
	return toClienteResponse(cliente), nil
}

// Eliminar borrado lógico. Las ventas históricas del cliente quedan y sus
// respuestas degradan al placeholder.
func (uc *ClienteUseCase) Eliminar(ctx context.Context, id string) error {
	cliente, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if cliente == nil {
		return domain.ErrNoEncontrado
	}
	return uc.repo.Delete(id)
}

func toClienteResponse(c *entity.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:        c.ID,
		Nombre:    c.Nombre,
		Documento: c.Documento,
		Telefono:  c.Telefono,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
