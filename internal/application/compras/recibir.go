package compras

import (
	"context"
	"sort"
	"time"

	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	appstock "github.com/tu-usuario/pos-backoffice/internal/application/stock"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

// Recibir transiciona la compra a recibida y acredita el stock de cada
// ítem exactamente una vez. Todo en una transacción: N incrementos de
// contador + N movimientos + actualización de cabecera, o nada.
//
// La guarda de doble recepción vive dentro de la tx: la cabecera se lee
// con FOR UPDATE, así dos recepciones concurrentes se serializan y la
// segunda ve el estado ya confirmado.
func (uc *UseCase) Recibir(ctx context.Context, ctxReq dto.ContextoSolicitud, compraID string) (*dto.CompraResponse, error) {
	// Resolución de sucursal destino: la propia de la compra o, si no
	// tiene, la marcada como principal. Lectura previa sin efectos.
	var recibida *entity.Compra
	err := uc.txRunner.RunCompra(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.MovimientoStockRepository,
		compraRepo repository.CompraRepository,
	) error {
		compra, err := compraRepo.GetForUpdate(compraID)
		if err != nil {
			return err
		}
		if compra == nil {
			return domain.ErrNoEncontrado
		}
		if compra.YaProcesada() {
			return domain.ErrCompraYaProcesada
		}
		if compra.Estado == entity.EstadoCompraCancelada {
			return &domain.EstadoInvalidoError{Entidad: "compra", ID: compraID, Estado: compra.Estado, Operacion: "recepción"}
		}
		if len(compra.Items) == 0 {
			return domain.ErrEntradaInvalida
		}

		sucursalID := compra.SucursalID
		if sucursalID == "" {
			principal, err := uc.sucursalRepo.GetPrincipal()
			if err != nil {
				return err
			}
			if principal == nil {
				return domain.ErrSinSucursal
			}
			sucursalID = principal.ID
			compra.SucursalID = sucursalID
		}

		now := time.Now()

		// Orden estable de bloqueo de filas entre recepciones concurrentes.
		items := make([]entity.ItemCompra, len(compra.Items))
		copy(items, compra.Items)
		sort.Slice(items, func(i, j int) bool { return items[i].ProductoID < items[j].ProductoID })

		for _, item := range items {
			delta := appstock.DeltaStock{
				ProductoID:     item.ProductoID,
				SucursalID:     sucursalID,
				Cantidad:       item.Cantidad,
				Motivo:         entity.MotivoRecepcionCompra,
				ReferenciaTipo: entity.ReferenciaCompra,
				ReferenciaID:   compra.ID,
				ActorID:        ctxReq.ActorID,
			}
			if err := appstock.AplicarDeltaEnTx(stockRepo, movRepo, delta, now); err != nil {
				return err
			}
		}

		compra.Estado = entity.EstadoCompraRecibida
		compra.FechaRecepcion = &now
		compra.UpdatedAt = now
		if err := compraRepo.Update(compra); err != nil {
			return err
		}
		recibida = compra
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.enriquecer(recibida), nil
}
