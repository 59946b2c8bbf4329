package compras

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

// Valor de respaldo cuando una referencia no resuelve. La respuesta degrada
// al placeholder en vez de fallar la petición completa.
const (
	proveedorNoEncontrado = "Proveedor no encontrado"
	productoNoEncontrado  = "Producto no encontrado"
)

// UseCase casos de uso de compras: CRUD, filtrado y recepción.
type UseCase struct {
	txRunner      TxRunner
	compraRepo    repository.CompraRepository
	proveedorRepo repository.ProveedorRepository
	productoRepo  repository.ProductoRepository
	sucursalRepo  repository.SucursalRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	compraRepo repository.CompraRepository,
	proveedorRepo repository.ProveedorRepository,
	productoRepo repository.ProductoRepository,
	sucursalRepo repository.SucursalRepository,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		compraRepo:    compraRepo,
		proveedorRepo: proveedorRepo,
		productoRepo:  productoRepo,
		sucursalRepo:  sucursalRepo,
	}
}

// Crear crea una compra en estado pendiente. No toca stock: el crédito
// ocurre recién en Recibir.
func (uc *UseCase) Crear(ctx context.Context, ctxReq dto.ContextoSolicitud, in dto.CrearCompraRequest) (*dto.CompraResponse, error) {
	if in.ProveedorID == "" || len(in.Items) == 0 {
		return nil, domain.ErrEntradaInvalida
	}
	proveedor, err := uc.proveedorRepo.GetByID(in.ProveedorID)
	if err != nil {
		return nil, err
	}
	if proveedor == nil {
		return nil, domain.ErrNoEncontrado
	}

	items, total, err := uc.resolverItems(in.Items)
	if err != nil {
		return nil, err
	}

	sucursalID := in.SucursalID
	if sucursalID == "" {
		sucursalID = ctxReq.SucursalID
	}

	now := time.Now()
	compra := &entity.Compra{
		ID:          uuid.New().String(),
		ProveedorID: in.ProveedorID,
		SucursalID:  sucursalID,
		Items:       items,
		Total:       total,
		Estado:      entity.EstadoCompraPendiente,
		CreadaPor:   ctxReq.ActorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.compraRepo.Create(compra); err != nil {
		return nil, err
	}
	return uc.enriquecer(compra), nil
}

// Obtener devuelve una compra enriquecida.
func (uc *UseCase) Obtener(ctx context.Context, id string) (*dto.CompraResponse, error) {
	compra, err := uc.compraRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if compra == nil {
		return nil, domain.ErrNoEncontrado
	}
	return uc.enriquecer(compra), nil
}

// Listar lista compras paginadas y enriquecidas.
func (uc *UseCase) Listar(ctx context.Context, limit, offset int) (*dto.CompraListResponse, error) {
	list, err := uc.compraRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.aListado(list, limit, offset), nil
}

// Filtrar aplica los criterios de /compras/filtrar.
func (uc *UseCase) Filtrar(ctx context.Context, filtro repository.FiltroCompras) (*dto.CompraListResponse, error) {
	list, err := uc.compraRepo.Filtrar(filtro)
	if err != nil {
		return nil, err
	}
	return uc.aListado(list, filtro.Limit, filtro.Offset), nil
}

// Actualizar reemplaza datos e ítems de una compra pendiente.
func (uc *UseCase) Actualizar(ctx context.Context, id string, in dto.ActualizarCompraRequest) (*dto.CompraResponse, error) {
	compra, err := uc.compraRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if compra == nil {
		return nil, domain.ErrNoEncontrado
	}
	if compra.Estado != entity.EstadoCompraPendiente {
		return nil, &domain.EstadoInvalidoError{Entidad: "compra", ID: id, Estado: compra.Estado, Operacion: "edición"}
	}

	if in.ProveedorID != nil {
		proveedor, err := uc.proveedorRepo.GetByID(*in.ProveedorID)
		if err != nil {
			return nil, err
		}
		if proveedor == nil {
			return nil, domain.ErrNoEncontrado
		}
		compra.ProveedorID = *in.ProveedorID
	}
	if in.SucursalID != nil {
		compra.SucursalID = *in.SucursalID
	}
	if in.Items != nil {
		items, total, err := uc.resolverItems(in.Items)
		if err != nil {
			return nil, err
		}
		compra.Items = items
		compra.Total = total
		if err := uc.compraRepo.ReplaceItems(id, items); err != nil {
			return nil, err
		}
	}
	compra.UpdatedAt = time.Now()
	if err := uc.compraRepo.Update(compra); err != nil {
		return nil, err
	}
	return uc.enriquecer(compra), nil
}

// CambiarEstado transiciones sin efecto sobre stock:
// pendiente -> cancelada y recibida -> completada. La transición a
// recibida se hace solo por Recibir (ahí se acredita stock).
func (uc *UseCase) CambiarEstado(ctx context.Context, id, estado string) (*dto.CompraResponse, error) {
	compra, err := uc.compraRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if compra == nil {
		return nil, domain.ErrNoEncontrado
	}

	permitida := (compra.Estado == entity.EstadoCompraPendiente && estado == entity.EstadoCompraCancelada) ||
		(compra.Estado == entity.EstadoCompraRecibida && estado == entity.EstadoCompraCompletada)
	if !permitida {
		return nil, &domain.EstadoInvalidoError{Entidad: "compra", ID: id, Estado: compra.Estado, Operacion: "transición a " + estado}
	}

	compra.Estado = estado
	compra.UpdatedAt = time.Now()
	if err := uc.compraRepo.Update(compra); err != nil {
		return nil, err
	}
	return uc.enriquecer(compra), nil
}

// Eliminar borra una compra que nunca tocó stock.
func (uc *UseCase) Eliminar(ctx context.Context, id string) error {
	compra, err := uc.compraRepo.GetByID(id)
	if err != nil {
		return err
	}
	if compra == nil {
		return domain.ErrNoEncontrado
	}
	if compra.Estado != entity.EstadoCompraPendiente && compra.Estado != entity.EstadoCompraCancelada {
		return &domain.EstadoInvalidoError{Entidad: "compra", ID: id, Estado: compra.Estado, Operacion: "eliminación"}
	}
	return uc.compraRepo.Delete(id)
}

// resolverItems valida productos y calcula subtotales y total.
// Precio unitario cero toma el precio de lista del producto.
func (uc *UseCase) resolverItems(in []dto.ItemCompraRequest) ([]entity.ItemCompra, decimal.Decimal, error) {
	items := make([]entity.ItemCompra, 0, len(in))
	total := decimal.Zero
	for _, it := range in {
		if it.ProductoID == "" || !it.Cantidad.GreaterThan(decimal.Zero) || it.PrecioUnitario.IsNegative() {
			return nil, decimal.Zero, domain.ErrEntradaInvalida
		}
		producto, err := uc.productoRepo.GetByID(it.ProductoID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if producto == nil {
			return nil, decimal.Zero, domain.ErrNoEncontrado
		}
		precio := it.PrecioUnitario
		if precio.IsZero() {
			precio = producto.Precio
		}
		subtotal := it.Cantidad.Mul(precio)
		items = append(items, entity.ItemCompra{
			ProductoID:     it.ProductoID,
			Cantidad:       it.Cantidad,
			PrecioUnitario: precio,
			Subtotal:       subtotal,
		})
		total = total.Add(subtotal)
	}
	return items, total, nil
}

// ── Enriquecimiento ───────────────────────────────────────────────────────────

func (uc *UseCase) aListado(list []*entity.Compra, limit, offset int) *dto.CompraListResponse {
	proveedores, productos := uc.nombresPara(list)
	items := make([]dto.CompraResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCompraResponse(c, proveedores, productos))
	}
	return &dto.CompraListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
}

func (uc *UseCase) enriquecer(compra *entity.Compra) *dto.CompraResponse {
	proveedores, productos := uc.nombresPara([]*entity.Compra{compra})
	return toCompraResponse(compra, proveedores, productos)
}

// nombresPara resuelve en lote los nombres de proveedores y productos
// referenciados por el conjunto de compras.
func (uc *UseCase) nombresPara(list []*entity.Compra) (map[string]string, map[string]string) {
	provSet := map[string]struct{}{}
	prodSet := map[string]struct{}{}
	for _, c := range list {
		if c.ProveedorID != "" {
			provSet[c.ProveedorID] = struct{}{}
		}
		for _, it := range c.Items {
			prodSet[it.ProductoID] = struct{}{}
		}
	}

	proveedores := map[string]string{}
	if len(provSet) > 0 {
		ids := make([]string, 0, len(provSet))
		for id := range provSet {
			ids = append(ids, id)
		}
		if resueltos, err := uc.proveedorRepo.ListByIDs(ids); err == nil {
			for _, p := range resueltos {
				proveedores[p.ID] = p.Nombre
			}
		}
	}

	productos := map[string]string{}
	if len(prodSet) > 0 {
		ids := make([]string, 0, len(prodSet))
		for id := range prodSet {
			ids = append(ids, id)
		}
		if resueltos, err := uc.productoRepo.ListByIDs(ids); err == nil {
			for _, p := range resueltos {
				productos[p.ID] = p.Nombre
			}
		}
	}
	return proveedores, productos
}

func toCompraResponse(c *entity.Compra, proveedores, productos map[string]string) *dto.CompraResponse {
	proveedorNombre, ok := proveedores[c.ProveedorID]
	if !ok {
		proveedorNombre = proveedorNoEncontrado
	}
	items := make([]dto.ItemCompraResponse, 0, len(c.Items))
	for _, it := range c.Items {
		nombre, ok := productos[it.ProductoID]
		if !ok {
			nombre = productoNoEncontrado
		}
		items = append(items, dto.ItemCompraResponse{
			ProductoID:     it.ProductoID,
			ProductoNombre: nombre,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
			Subtotal:       it.Subtotal,
		})
	}
	return &dto.CompraResponse{
		ID:              c.ID,
		ProveedorID:     c.ProveedorID,
		ProveedorNombre: proveedorNombre,
		SucursalID:      c.SucursalID,
		Items:           items,
		Total:           c.Total,
		Estado:          c.Estado,
		FechaRecepcion:  c.FechaRecepcion,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
