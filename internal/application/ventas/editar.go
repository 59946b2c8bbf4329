package ventas

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/internal/application/historial"
	appstock "github.com/tu-usuario/pos-backoffice/internal/application/stock"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

// EditarItems reemplaza el detalle de una venta en_proceso aplicando el
// ajuste mínimo de stock que implica la diferencia entre ambos detalles.
//
// Secuencia por edición: cargar original → diff → validar y aplicar stock
// producto a producto → persistir venta → encolar historial. La validación
// corre dentro de la transacción, con la fila de stock bloqueada; el
// disponible de cada reducción suma lo que esta misma venta ya tenía
// comprometido:
//
//	disponible = stockActual + cantidadOriginalEnEstaVenta
//
// Cualquier falla dentro de la transacción la revierte completa, sin
// efectos. El historial va después del commit por el outbox y nunca
// revierte la edición.
func (uc *UseCase) EditarItems(ctx context.Context, ctxReq dto.ContextoSolicitud, ventaID string, in dto.EditarVentaRequest) (*dto.VentaResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrEntradaInvalida
	}

	// Lectura previa para fallar rápido; la guarda real se repite con la
	// cabecera bloqueada dentro de la transacción.
	previa, err := uc.ventaRepo.GetByID(ventaID)
	if err != nil {
		return nil, err
	}
	if previa == nil || previa.Eliminada {
		return nil, domain.ErrNoEncontrado
	}
	if previa.EsTerminal() {
		return nil, &domain.EstadoInvalidoError{Entidad: "venta", ID: ventaID, Estado: previa.Estado, Operacion: "edición de ítems"}
	}

	if in.ClienteID != nil && *in.ClienteID != "" {
		cliente, err := uc.clienteRepo.GetByID(*in.ClienteID)
		if err != nil {
			return nil, err
		}
		if cliente == nil {
			return nil, domain.ErrNoEncontrado
		}
	}

	nuevos, total, err := uc.resolverItems(in.Items)
	if err != nil {
		return nil, err
	}

	var (
		editada *entity.Venta
		evento  historial.Evento
	)
	err = uc.txRunner.RunVenta(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.MovimientoStockRepository,
		ventaRepo repository.VentaRepository,
	) error {
		venta, err := ventaRepo.GetForUpdate(ventaID)
		if err != nil {
			return err
		}
		if venta == nil || venta.Eliminada {
			return domain.ErrNoEncontrado
		}
		if venta.EsTerminal() {
			return &domain.EstadoInvalidoError{Entidad: "venta", ID: ventaID, Estado: venta.Estado, Operacion: "edición de ítems"}
		}

		origPorProducto := make(map[string]decimal.Decimal, len(venta.Items))
		for _, it := range venta.Items {
			origPorProducto[it.ProductoID] = origPorProducto[it.ProductoID].Add(it.Cantidad)
		}
		nuevoPorProducto := make(map[string]decimal.Decimal, len(nuevos))
		for _, it := range nuevos {
			nuevoPorProducto[it.ProductoID] = nuevoPorProducto[it.ProductoID].Add(it.Cantidad)
		}

		deltas := DiffItems(venta.Items, nuevos)
		now := time.Now()

		// Un solo recorrido ordenado por producto: la validación y el
		// ajuste ocurren bajo el mismo bloqueo de fila, así dos ediciones
		// concurrentes toman los bloqueos siempre en el mismo orden. El
		// disponible incluye lo ya comprometido por esta venta.
		for _, d := range deltas {
			if d.Cantidad.IsNegative() {
				s, err := stockRepo.GetForUpdate(d.ProductoID, venta.SucursalID)
				if err != nil {
					return err
				}
				disponible := s.Cantidad.Add(origPorProducto[d.ProductoID])
				solicitado := nuevoPorProducto[d.ProductoID]
				if solicitado.GreaterThan(disponible) {
					return &domain.StockInsuficienteError{
						ProductoID: d.ProductoID,
						Disponible: disponible,
						Solicitado: solicitado,
					}
				}
			}
			delta := appstock.DeltaStock{
				ProductoID:     d.ProductoID,
				SucursalID:     venta.SucursalID,
				Cantidad:       d.Cantidad,
				Motivo:         entity.MotivoEdicionVenta,
				ReferenciaTipo: entity.ReferenciaVenta,
				ReferenciaID:   venta.ID,
				ActorID:        ctxReq.ActorID,
			}
			if err := appstock.AplicarDeltaEnTx(stockRepo, movRepo, delta, now); err != nil {
				return err
			}
		}

		evento = historial.Evento{
			Tipo:          "edicion",
			VentaID:       venta.ID,
			ActorID:       ctxReq.ActorID,
			TotalAnterior: venta.Total,
			TotalNuevo:    total,
			ItemsAntes:    len(venta.Items),
			ItemsDespues:  len(nuevos),
			Deltas:        aDeltasRegistro(deltas),
			Fecha:         now,
		}

		if in.ClienteID != nil {
			venta.ClienteID = *in.ClienteID
		}
		venta.Items = nuevos
		venta.Subtotal = total
		venta.Total = total
		// monto_pagado nunca supera el total.
		if venta.MontoPagado.GreaterThan(total) {
			venta.MontoPagado = total
		}
		venta.EstadoPago = entity.CalcularEstadoPago(venta.MontoPagado, total)
		venta.UpdatedAt = now
		if err := ventaRepo.ReplaceItems(venta.ID, nuevos); err != nil {
			return err
		}
		if err := ventaRepo.Update(venta); err != nil {
			return err
		}
		editada = venta
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publicador.Publicar(evento)
	return uc.enriquecer(editada), nil
}

func aDeltasRegistro(deltas []DeltaProducto) []historial.DeltaRegistro {
	out := make([]historial.DeltaRegistro, 0, len(deltas))
	for _, d := range deltas {
		out = append(out, historial.DeltaRegistro{ProductoID: d.ProductoID, Cantidad: d.Cantidad})
	}
	return out
}
