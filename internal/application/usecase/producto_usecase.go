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

// ProductoUseCase CRUD del catálogo de productos.
type ProductoUseCase struct {
	repo          repository.ProductoRepository
	categoriaRepo repository.CategoriaRepository
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(repo repository.ProductoRepository, categoriaRepo repository.CategoriaRepository) *ProductoUseCase {
	return &ProductoUseCase{repo: repo, categoriaRepo: categoriaRepo}
}

// Crear da de alta un producto. El SKU es único; la categoría, opcional.
func (uc *ProductoUseCase) Crear(ctx context.Context, in dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if in.SKU == "" || in.Nombre == "" || in.Precio.IsNegative() {
		return nil, domain.ErrEntradaInvalida
	}
	if in.CategoriaID != "" {
		categoria, err := uc.categoriaRepo.GetByID(in.CategoriaID)
		if err != nil {
			return nil, err
		}
		if categoria == nil {
			return nil, domain.ErrNoEncontrado
		}
	}

	now := time.Now()
	producto := &entity.Producto{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		CategoriaID: in.CategoriaID,
		Precio:      in.Precio,
		Activo:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(producto); err != nil {
		return nil, err
	}
	return toProductoResponse(producto), nil
}

// Obtener devuelve un producto por ID.
func (uc *ProductoUseCase) Obtener(ctx context.Context, id string) (*dto.ProductoResponse, error) {
	producto, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNoEncontrado
	}
	return toProductoResponse(producto), nil
}

// Listar lista productos paginados.
func (uc *ProductoUseCase) Listar(ctx context.Context, limit, offset int) ([]dto.ProductoResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductoResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductoResponse(p))
	}
	return out, nil
}

// Actualizar aplica cambios parciales. El SKU no se modifica.
func (uc *ProductoUseCase) Actualizar(ctx context.Context, id string, in dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNoEncontrado
	}

	if in.Nombre != nil {
		if *in.Nombre == "" {
			return nil, domain.ErrEntradaInvalida
		}
		producto.Nombre = *in.Nombre
	}
	if in.Descripcion != nil {
		producto.Descripcion = *in.Descripcion
	}
	if in.CategoriaID != nil {
		if *in.CategoriaID != "" {
			categoria, err := uc.categoriaRepo.GetByID(*in.CategoriaID)
			if err != nil {
				return nil, err
			}
			if categoria == nil {
				return nil, domain.ErrNoEncontrado
			}
		}
		producto.CategoriaID = *in.CategoriaID
	}
	if in.Precio != nil {
		if in.Precio.IsNegative() {
			return nil, domain.ErrEntradaInvalida
		}
		producto.Precio = *in.Precio
	}
	if in.Activo != nil {
		producto.Activo = *in.Activo
	}
	producto.UpdatedAt = time.Now()

	if err := uc.repo.Update(producto); err != nil {
		return nil, err
	}
	return toProductoResponse(producto), nil
}

// Eliminar borrado lógico (activo = false). Los movimientos de stock del
// producto se conservan.
func (uc *ProductoUseCase) Eliminar(ctx context.Context, id string) error {
	producto, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if producto == nil {
		return domain.ErrNoEncontrado
	}
	return uc.repo.Delete(id)
}

func toProductoResponse(p *entity.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		CategoriaID: p.CategoriaID,
		Precio:      p.Precio,
		Activo:      p.Activo,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
