package ventas

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	appstock "github.com/tu-usuario/pos-backoffice/internal/application/stock"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

// Valores de respaldo para referencias que no resuelven.
const (
	consumidorFinal      = "Consumidor final"
	clienteNoEncontrado  = "Cliente no encontrado"
	productoNoEncontrado = "Producto no encontrado"
)

// UseCase casos de uso de ventas: creación, edición con reconciliación de
// stock, pagos, estados, devoluciones, búsqueda y estadísticas.
type UseCase struct {
	txRunner     TxRunner
	ventaRepo    repository.VentaRepository
	clienteRepo  repository.ClienteRepository
	productoRepo repository.ProductoRepository
	publicador   PublicadorHistorial
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	ventaRepo repository.VentaRepository,
	clienteRepo repository.ClienteRepository,
	productoRepo repository.ProductoRepository,
	publicador PublicadorHistorial,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		ventaRepo:    ventaRepo,
		clienteRepo:  clienteRepo,
		productoRepo: productoRepo,
		publicador:   publicador,
	}
}

// Crear crea una venta en_proceso y descuenta el stock de cada ítem en la
// misma transacción. ClienteID vacío = consumidor final.
func (uc *UseCase) Crear(ctx context.Context, ctxReq dto.ContextoSolicitud, in dto.CrearVentaRequest) (*dto.VentaResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrEntradaInvalida
	}
	sucursalID := in.SucursalID
	if sucursalID == "" {
		sucursalID = ctxReq.SucursalID
	}
	if sucursalID == "" {
		return nil, domain.ErrSinSucursal
	}
	if in.ClienteID != "" {
		cliente, err := uc.clienteRepo.GetByID(in.ClienteID)
		if err != nil {
			return nil, err
		}
		if cliente == nil {
			return nil, domain.ErrNoEncontrado
		}
	}

	items, total, err := uc.resolverItems(in.Items)
	if err != nil {
		return nil, err
	}
	if in.Pago.IsNegative() || in.Pago.GreaterThan(total) {
		if in.Pago.GreaterThan(total) {
			return nil, domain.ErrPagoExcedeTotal
		}
		return nil, domain.ErrEntradaInvalida
	}

	now := time.Now()
	venta := &entity.Venta{
		ID:          uuid.New().String(),
		SucursalID:  sucursalID,
		ClienteID:   in.ClienteID,
		Items:       items,
		Subtotal:    total,
		Total:       total,
		MontoPagado: in.Pago,
		EstadoPago:  entity.CalcularEstadoPago(in.Pago, total),
		Estado:      entity.EstadoVentaEnProceso,
		CreadaPor:   ctxReq.ActorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = uc.txRunner.RunVenta(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.MovimientoStockRepository,
		ventaRepo repository.VentaRepository,
	) error {
		ordenados := make([]entity.ItemVenta, len(items))
		copy(ordenados, items)
		sort.Slice(ordenados, func(i, j int) bool { return ordenados[i].ProductoID < ordenados[j].ProductoID })

		for _, item := range ordenados {
			delta := appstock.DeltaStock{
				ProductoID:     item.ProductoID,
				SucursalID:     sucursalID,
				Cantidad:       item.Cantidad.Neg(),
				Motivo:         entity.MotivoVenta,
				ReferenciaTipo: entity.ReferenciaVenta,
				ReferenciaID:   venta.ID,
				ActorID:        ctxReq.ActorID,
			}
			if err := appstock.AplicarDeltaEnTx(stockRepo, movRepo, delta, now); err != nil {
				return err
			}
		}
		return ventaRepo.Create(venta)
	})
	if err != nil {
		return nil, err
	}
	return uc.enriquecer(venta), nil
}

// Obtener devuelve una venta enriquecida (incluye eliminadas, para auditoría).
func (uc *UseCase) Obtener(ctx context.Context, id string) (*dto.VentaResponse, error) {
	venta, err := uc.ventaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if venta == nil {
		return nil, domain.ErrNoEncontrado
	}
	return uc.enriquecer(venta), nil
}

// Listar lista ventas con filtros y paginación.
func (uc *UseCase) Listar(ctx context.Context, filtro repository.FiltroVentas) (*dto.VentaListResponse, error) {
	list, err := uc.ventaRepo.List(filtro)
	if err != nil {
		return nil, err
	}
	return uc.aListado(list, filtro.Limit, filtro.Offset), nil
}

// ListarEliminadas ventas con borrado lógico.
func (uc *UseCase) ListarEliminadas(ctx context.Context, limit, offset int) (*dto.VentaListResponse, error) {
	list, err := uc.ventaRepo.ListEliminadas(limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.aListado(list, limit, offset), nil
}

// Buscar por prefijo de ID o nombre de cliente.
func (uc *UseCase) Buscar(ctx context.Context, q string, limit int) (*dto.VentaListResponse, error) {
	if q == "" {
		return nil, domain.ErrEntradaInvalida
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	list, err := uc.ventaRepo.Buscar(q, limit)
	if err != nil {
		return nil, err
	}
	return uc.aListado(list, limit, 0), nil
}

// EstadisticasDia agregados de ventas de un día.
func (uc *UseCase) EstadisticasDia(ctx context.Context, fecha time.Time) (*dto.ResumenDiaResponse, error) {
	resumen, err := uc.ventaRepo.ResumenDia(fecha)
	if err != nil {
		return nil, err
	}
	return &dto.ResumenDiaResponse{
		Fecha:           fecha.Format("2006-01-02"),
		CantidadVentas:  resumen.CantidadVentas,
		TotalVendido:    resumen.TotalVendido,
		TotalCobrado:    resumen.TotalCobrado,
		VentasPorEstado: resumen.VentasPorEstado,
	}, nil
}

// Eliminar borrado lógico. Solo ventas en estado terminal: una venta
// en_proceso aún tiene stock comprometido y debe cancelarse primero.
func (uc *UseCase) Eliminar(ctx context.Context, id string) error {
	venta, err := uc.ventaRepo.GetByID(id)
	if err != nil {
		return err
	}
	if venta == nil || venta.Eliminada {
		return domain.ErrNoEncontrado
	}
	if !venta.EsTerminal() {
		return &domain.EstadoInvalidoError{Entidad: "venta", ID: id, Estado: venta.Estado, Operacion: "eliminación"}
	}
	return uc.ventaRepo.SoftDelete(id)
}

// resolverItems valida productos y calcula subtotales y total.
// Precio unitario cero toma el precio de lista del producto.
func (uc *UseCase) resolverItems(in []dto.ItemVentaRequest) ([]entity.ItemVenta, decimal.Decimal, error) {
	items := make([]entity.ItemVenta, 0, len(in))
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
		items = append(items, entity.ItemVenta{
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

func (uc *UseCase) aListado(list []*entity.Venta, limit, offset int) *dto.VentaListResponse {
	clientes, productos := uc.nombresPara(list)
	items := make([]dto.VentaResponse, 0, len(list))
	for _, v := range list {
		items = append(items, *toVentaResponse(v, clientes, productos))
	}
	return &dto.VentaListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
}

func (uc *UseCase) enriquecer(venta *entity.Venta) *dto.VentaResponse {
	clientes, productos := uc.nombresPara([]*entity.Venta{venta})
	return toVentaResponse(venta, clientes, productos)
}

// nombresPara resuelve en lote los nombres de clientes y productos
// referenciados por el conjunto de ventas.
func (uc *UseCase) nombresPara(list []*entity.Venta) (map[string]string, map[string]string) {
	cliSet := map[string]struct{}{}
	prodSet := map[string]struct{}{}
	for _, v := range list {
		if v.ClienteID != "" {
			cliSet[v.ClienteID] = struct{}{}
		}
		for _, it := range v.Items {
			prodSet[it.ProductoID] = struct{}{}
		}
	}

	clientes := map[string]string{}
	if len(cliSet) > 0 {
		ids := make([]string, 0, len(cliSet))
		for id := range cliSet {
			ids = append(ids, id)
		}
		if resueltos, err := uc.clienteRepo.ListByIDs(ids); err == nil {
			for _, c := range resueltos {
				clientes[c.ID] = c.Nombre
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
	return clientes, productos
}

func toVentaResponse(v *entity.Venta, clientes, productos map[string]string) *dto.VentaResponse {
	clienteNombre := consumidorFinal
	if v.ClienteID != "" {
		nombre, ok := clientes[v.ClienteID]
		if !ok {
			nombre = clienteNoEncontrado
		}
		clienteNombre = nombre
	}
	items := make([]dto.ItemVentaResponse, 0, len(v.Items))
	for _, it := range v.Items {
		nombre, ok := productos[it.ProductoID]
		if !ok {
			nombre = productoNoEncontrado
		}
		items = append(items, dto.ItemVentaResponse{
			ProductoID:     it.ProductoID,
			ProductoNombre: nombre,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
			Subtotal:       it.Subtotal,
		})
	}
	return &dto.VentaResponse{
		ID:            v.ID,
		SucursalID:    v.SucursalID,
		ClienteID:     v.ClienteID,
		ClienteNombre: clienteNombre,
		Items:         items,
		Subtotal:      v.Subtotal,
		Total:         v.Total,
		MontoPagado:   v.MontoPagado,
		EstadoPago:    v.EstadoPago,
		Estado:        v.Estado,
		Eliminada:     v.Eliminada,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}
