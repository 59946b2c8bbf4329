package usecase

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

// CajaUseCase movimientos de caja chica por sucursal.
type CajaUseCase struct {
	repo repository.CajaRepository
}

func NewCajaUseCase(repo repository.CajaRepository) *CajaUseCase {
	return &CajaUseCase{repo: repo}
}

// Registrar asienta un ingreso o egreso en la caja de la sucursal del actor.
func (uc *CajaUseCase) Registrar(ctx context.Context, ctxReq dto.ContextoSolicitud, in dto.RegistrarMovimientoCajaRequest) (*dto.MovimientoCajaResponse, error) {
	if in.Tipo != entity.CajaIngreso && in.Tipo != entity.CajaEgreso {
		return nil, domain.ErrEntradaInvalida
	}
	if in.Concepto == "" || !in.Monto.GreaterThan(decimal.Zero) {
		return nil, domain.ErrEntradaInvalida
	}
	if ctxReq.SucursalID == "" {
		return nil, domain.ErrSinSucursal
	}

	fecha := time.Now()
	if in.Fecha != "" {
		var err error
		fecha, err = time.Parse(formatoFecha, in.Fecha)
		if err != nil {
			return nil, domain.ErrEntradaInvalida
		}
	}

	mov := &entity.MovimientoCaja{
		ID:         uuid.New().String(),
		SucursalID: ctxReq.SucursalID,
		Tipo:       in.Tipo,
		Concepto:   in.Concepto,
		Monto:      in.Monto,
		Fecha:      fecha,
		ActorID:    ctxReq.ActorID,
		CreatedAt:  time.Now(),
	}
	if err := uc.repo.Create(mov); err != nil {
		return nil, err
	}
	return toMovimientoCajaResponse(mov), nil
}

// Dia movimientos y saldo (ingresos - egresos) de un día.
func (uc *CajaUseCase) Dia(ctx context.Context, ctxReq dto.ContextoSolicitud, fecha time.Time) (*dto.CajaDiaResponse, error) {
	if ctxReq.SucursalID == "" {
		return nil, domain.ErrSinSucursal
	}
	list, err := uc.repo.ListByDia(ctxReq.SucursalID, fecha)
	if err != nil {
		return nil, err
	}
	saldo, err := uc.repo.SaldoDia(ctxReq.SucursalID, fecha)
	if err != nil {
		return nil, err
	}

	movimientos := make([]dto.MovimientoCajaResponse, 0, len(list))
	for _, m := range list {
		movimientos = append(movimientos, *toMovimientoCajaResponse(m))
	}
	return &dto.CajaDiaResponse{
		Fecha:       fecha.Format(formatoFecha),
		Movimientos: movimientos,
		Saldo:       saldo,
	}, nil
}

func toMovimientoCajaResponse(m *entity.MovimientoCaja) *dto.MovimientoCajaResponse {
	return &dto.MovimientoCajaResponse{
		ID:         m.ID,
		SucursalID: m.SucursalID,
		Tipo:       m.Tipo,
		Concepto:   m.Concepto,
		Monto:      m.Monto,
		Fecha:      m.Fecha,
		ActorID:    m.ActorID,
		CreatedAt:  m.CreatedAt,
	}
}
