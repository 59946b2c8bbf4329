package ventas

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/internal/application/historial"
	appstock "github.com/tu-usuario/pos-backoffice/internal/application/stock"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

// RegistrarPago abona un monto a la venta y recalcula el estado de pago.
// Invariante: monto_pagado nunca supera el total.
func (uc *UseCase) RegistrarPago(ctx context.Context, ventaID string, monto decimal.Decimal) (*dto.VentaResponse, error) {
	if !monto.GreaterThan(decimal.Zero) {
		return nil, domain.ErrEntradaInvalida
	}
	venta, err := uc.ventaRepo.GetByID(ventaID)
	if err != nil {
		return nil, err
	}
	if venta == nil || venta.Eliminada {
		return nil, domain.ErrNoEncontrado
	}
	if venta.Estado == entity.EstadoVentaCancelada {
		return nil, &domain.EstadoInvalidoError{Entidad: "venta", ID: ventaID, Estado: venta.Estado, Operacion: "registro de pago"}
	}
	nuevoPagado := venta.MontoPagado.Add(monto)
	if nuevoPagado.GreaterThan(venta.Total) {
		return nil, domain.ErrPagoExcedeTotal
	}
	venta.MontoPagado = nuevoPagado
	venta.EstadoPago = entity.CalcularEstadoPago(nuevoPagado, venta.Total)
	venta.UpdatedAt = time.Now()
	if err := uc.ventaRepo.Update(venta); err != nil {
		return nil, err
	}
	return uc.enriquecer(venta), nil
}

// CambiarEstado transiciones de ciclo de vida:
//
//	en_proceso -> entregada   sin efecto sobre stock
//	en_proceso -> cancelada   restaura el stock completo de cada línea
//
// Los estados terminales no admiten más transiciones.
func (uc *UseCase) CambiarEstado(ctx context.Context, ctxReq dto.ContextoSolicitud, ventaID, estado string) (*dto.VentaResponse, error) {
	if estado != entity.EstadoVentaEntregada && estado != entity.EstadoVentaCancelada {
		return nil, domain.ErrEntradaInvalida
	}

	var cambiada *entity.Venta
	err := uc.txRunner.RunVenta(ctx, func(
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
		if venta.Estado != entity.EstadoVentaEnProceso {
			return &domain.EstadoInvalidoError{Entidad: "venta", ID: ventaID, Estado: venta.Estado, Operacion: "transición a " + estado}
		}

		now := time.Now()
		if estado == entity.EstadoVentaCancelada {
			ordenados := make([]entity.ItemVenta, len(venta.Items))
			copy(ordenados, venta.Items)
			sort.Slice(ordenados, func(i, j int) bool { return ordenados[i].ProductoID < ordenados[j].ProductoID })

			for _, item := range ordenados {
				delta := appstock.DeltaStock{
					ProductoID:     item.ProductoID,
					SucursalID:     venta.SucursalID,
					Cantidad:       item.Cantidad,
					Motivo:         entity.MotivoCancelacionVenta,
					ReferenciaTipo: entity.ReferenciaVenta,
					ReferenciaID:   venta.ID,
					ActorID:        ctxReq.ActorID,
				}
				if err := appstock.AplicarDeltaEnTx(stockRepo, movRepo, delta, now); err != nil {
					return err
				}
			}
		}

		venta.Estado = estado
		venta.UpdatedAt = now
		if err := ventaRepo.Update(venta); err != nil {
			return err
		}
		cambiada = venta
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.enriquecer(cambiada), nil
}

// DevolucionParcial restaura stock por las cantidades devueltas de una
// venta entregada y descuenta esas líneas del detalle. Si todo el detalle
// queda devuelto, la venta pasa a devuelta.
func (uc *UseCase) DevolucionParcial(ctx context.Context, ctxReq dto.ContextoSolicitud, ventaID string, in dto.DevolucionParcialRequest) (*dto.VentaResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrEntradaInvalida
	}

	var (
		devuelta *entity.Venta
		evento   historial.Evento
	)
	err := uc.txRunner.RunVenta(ctx, func(
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
		if venta.Estado != entity.EstadoVentaEntregada {
			return &domain.EstadoInvalidoError{Entidad: "venta", ID: ventaID, Estado: venta.Estado, Operacion: "devolución parcial"}
		}

		vendidoPorProducto := make(map[string]decimal.Decimal, len(venta.Items))
		for _, it := range venta.Items {
			vendidoPorProducto[it.ProductoID] = vendidoPorProducto[it.ProductoID].Add(it.Cantidad)
		}

		devueltoPorProducto := make(map[string]decimal.Decimal, len(in.Items))
		for _, it := range in.Items {
			if it.ProductoID == "" || !it.Cantidad.GreaterThan(decimal.Zero) {
				return domain.ErrEntradaInvalida
			}
			vendido, existe := vendidoPorProducto[it.ProductoID]
			if !existe {
				return domain.ErrEntradaInvalida
			}
			acumulado := devueltoPorProducto[it.ProductoID].Add(it.Cantidad)
			if acumulado.GreaterThan(vendido) {
				return domain.ErrEntradaInvalida
			}
			devueltoPorProducto[it.ProductoID] = acumulado
		}

		productos := make([]string, 0, len(devueltoPorProducto))
		for productoID := range devueltoPorProducto {
			productos = append(productos, productoID)
		}
		sort.Strings(productos)

		now := time.Now()
		for _, productoID := range productos {
			delta := appstock.DeltaStock{
				ProductoID:     productoID,
				SucursalID:     venta.SucursalID,
				Cantidad:       devueltoPorProducto[productoID],
				Motivo:         entity.MotivoDevolucionParcial,
				ReferenciaTipo: entity.ReferenciaVenta,
				ReferenciaID:   venta.ID,
				ActorID:        ctxReq.ActorID,
			}
			if err := appstock.AplicarDeltaEnTx(stockRepo, movRepo, delta, now); err != nil {
				return err
			}
		}

		// Descuenta las cantidades devueltas del detalle; las líneas en
		// cero se eliminan.
		itemsAntes := len(venta.Items)
		totalAnterior := venta.Total
		restantes := make([]entity.ItemVenta, 0, len(venta.Items))
		total := decimal.Zero
		for _, it := range venta.Items {
			pendiente := devueltoPorProducto[it.ProductoID]
			if pendiente.GreaterThan(decimal.Zero) {
				devuelveAqui := decimal.Min(pendiente, it.Cantidad)
				it.Cantidad = it.Cantidad.Sub(devuelveAqui)
				devueltoPorProducto[it.ProductoID] = pendiente.Sub(devuelveAqui)
			}
			if it.Cantidad.IsZero() {
				continue
			}
			it.Subtotal = it.Cantidad.Mul(it.PrecioUnitario)
			total = total.Add(it.Subtotal)
			restantes = append(restantes, it)
		}

		deltas := make([]historial.DeltaRegistro, 0, len(productos))
		for _, productoID := range productos {
			// devueltoPorProducto quedó en cero tras repartir; reconstituye
			// el delta desde la diferencia vendido - restante.
			restante := decimal.Zero
			for _, it := range restantes {
				if it.ProductoID == productoID {
					restante = restante.Add(it.Cantidad)
				}
			}
			deltas = append(deltas, historial.DeltaRegistro{
				ProductoID: productoID,
				Cantidad:   vendidoPorProducto[productoID].Sub(restante),
			})
		}

		venta.Items = restantes
		venta.Subtotal = total
		venta.Total = total
		if venta.MontoPagado.GreaterThan(total) {
			venta.MontoPagado = total
		}
		venta.EstadoPago = entity.CalcularEstadoPago(venta.MontoPagado, total)
		if len(restantes) == 0 {
			venta.Estado = entity.EstadoVentaDevuelta
		}
		venta.UpdatedAt = now

		if err := ventaRepo.ReplaceItems(venta.ID, restantes); err != nil {
			return err
		}
		if err := ventaRepo.Update(venta); err != nil {
			return err
		}

		evento = historial.Evento{
			Tipo:          "devolucion",
			VentaID:       venta.ID,
			ActorID:       ctxReq.ActorID,
			TotalAnterior: totalAnterior,
			TotalNuevo:    total,
			ItemsAntes:    itemsAntes,
			ItemsDespues:  len(restantes),
			Deltas:        deltas,
			Fecha:         now,
		}
		devuelta = venta
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publicador.Publicar(evento)
	return uc.enriquecer(devuelta), nil
}
