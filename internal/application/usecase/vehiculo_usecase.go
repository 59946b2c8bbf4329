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

const formatoFecha = "2006-01-02"

// VehiculoUseCase flota de reparto y sus gastos.
type VehiculoUseCase struct {
	repo repository.VehiculoRepository
}

func NewVehiculoUseCase(repo repository.VehiculoRepository) *VehiculoUseCase {
	return &VehiculoUseCase{repo: repo}
}

func (uc *VehiculoUseCase) Crear(ctx context.Context, in dto.CrearVehiculoRequest) (*dto.VehiculoResponse, error) {
	if in.Placa == "" {
		return nil, domain.ErrEntradaInvalida
	}
	now := time.Now()
	vehiculo := &entity.Vehiculo{
		ID:        uuid.New().String(),
		Placa:     in.Placa,
		Marca:     in.Marca,
		Modelo:    in.Modelo,
		Anio:      in.Anio,
		Activo:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(vehiculo); err != nil {
		return nil, err
	}
	return toVehiculoResponse(vehiculo), nil
}

func (uc *VehiculoUseCase) Obtener(ctx context.Context, id string) (*dto.VehiculoResponse, error) {
	vehiculo, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if vehiculo == nil {
		return nil, domain.ErrNoEncontrado
	}
	return toVehiculoResponse(vehiculo), nil
}

func (uc *VehiculoUseCase) Listar(ctx context.Context, limit, offset int) ([]dto.VehiculoResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VehiculoResponse, 0, len(list))
	for _, v := range list {
		out = append(out, *toVehiculoResponse(v))
	}
	return out, nil
}

func (uc *VehiculoUseCase) Actualizar(ctx context.Context, id string, in dto.ActualizarVehiculoRequest) (*dto.VehiculoResponse, error) {
	vehiculo, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if vehiculo == nil {
		return nil, domain.ErrNoEncontrado
	}

	if in.Placa != nil {
		if *in.Placa == "" {
			return nil, domain.ErrEntradaInvalida
		}
		vehiculo.Placa = *in.Placa
	}
	if in.Marca != nil {
		vehiculo.Marca = *in.Marca
	}
	if in.Modelo != nil {
		vehiculo.Modelo = *in.Modelo
	}
	if in.Anio != nil {
		vehiculo.Anio = *in.Anio
	}
	if in.Activo != nil {
		vehiculo.Activo = *in.Activo
	}
	vehiculo.UpdatedAt = time.Now()

	if err := uc.repo.Update(vehiculo); err != nil {
		return nil, err
	}
	return toVehiculoResponse(vehiculo), nil
}

// Eliminar borrado lógico; los gastos registrados se conservan.
func (uc *VehiculoUseCase) Eliminar(ctx context.Context, id string) error {
	vehiculo, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if vehiculo == nil {
		return domain.ErrNoEncontrado
	}
	return uc.repo.Delete(id)
}

// RegistrarGasto agrega un gasto al vehículo. Fecha vacía = hoy.
func (uc *VehiculoUseCase) RegistrarGasto(ctx context.Context, ctxReq dto.ContextoSolicitud, vehiculoID string, in dto.RegistrarGastoRequest) (*dto.GastoVehiculoResponse, error) {
	if in.Concepto == "" || !in.Monto.GreaterThan(decimal.Zero) {
		return nil, domain.ErrEntradaInvalida
	}
	vehiculo, err := uc.repo.GetByID(vehiculoID)
	if err != nil {
		return nil, err
	}
	if vehiculo == nil {
		return nil, domain.ErrNoEncontrado
	}

	fecha := time.Now()
	if in.Fecha != "" {
		fecha, err = time.Parse(formatoFecha, in.Fecha)
		if err != nil {
			return nil, domain.ErrEntradaInvalida
		}
	}

	gasto := &entity.GastoVehiculo{
		ID:         uuid.New().String(),
		VehiculoID: vehiculoID,
		Concepto:   in.Concepto,
		Monto:      in.Monto,
		Fecha:      fecha,
		ActorID:    ctxReq.ActorID,
		CreatedAt:  time.Now(),
	}
	if err := uc.repo.CreateGasto(gasto); err != nil {
		return nil, err
	}
	return toGastoResponse(gasto), nil
}

// ListarGastos gastos del vehículo, con rango de fechas opcional.
func (uc *VehiculoUseCase) ListarGastos(ctx context.Context, vehiculoID string, desde, hasta *time.Time, limit, offset int) ([]dto.GastoVehiculoResponse, error) {
	vehiculo, err := uc.repo.GetByID(vehiculoID)
	if err != nil {
		return nil, err
	}
	if vehiculo == nil {
		return nil, domain.ErrNoEncontrado
	}
	list, err := uc.repo.ListGastos(vehiculoID, desde, hasta, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GastoVehiculoResponse, 0, len(list))
	for _, g := range list {
		out = append(out, *toGastoResponse(g))
	}
	return out, nil
}

// TotalGastosMes suma de gastos del vehículo en el mes dado.
func (uc *VehiculoUseCase) TotalGastosMes(ctx context.Context, vehiculoID string, anio int, mes time.Month) (decimal.Decimal, error) {
	vehiculo, err := uc.repo.GetByID(vehiculoID)
	if err != nil {
		return decimal.Zero, err
	}
	if vehiculo == nil {
		return decimal.Zero, domain.ErrNoEncontrado
	}
	return uc.repo.TotalGastosMes(vehiculoID, anio, mes)
}

func toVehiculoResponse(v *entity.Vehiculo) *dto.VehiculoResponse {
	return &dto.VehiculoResponse{
		ID:        v.ID,
		Placa:     v.Placa,
		Marca:     v.Marca,
		Modelo:    v.Modelo,
		Anio:      v.Anio,
		Activo:    v.Activo,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func toGastoResponse(g *entity.GastoVehiculo) *dto.GastoVehiculoResponse {
	return &dto.GastoVehiculoResponse{
		ID:         g.ID,
		VehiculoID: g.VehiculoID,
		Concepto:   g.Concepto,
		Monto:      g.Monto,
		Fecha:      g.Fecha,
		ActorID:    g.ActorID,
		CreatedAt:  g.CreatedAt,
	}
}
