package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
)

// VehiculoRepository define el puerto de persistencia para la flota y sus gastos.
type VehiculoRepository interface {
	Create(vehiculo *entity.Vehiculo) error
	GetByID(id string) (*entity.Vehiculo, error)
	Update(vehiculo *entity.Vehiculo) error
	List(limit, offset int) ([]*entity.Vehiculo, error)
	Delete(id string) error

	CreateGasto(gasto *entity.GastoVehiculo) error
	ListGastos(vehiculoID string, desde, hasta *time.Time, limit, offset int) ([]*entity.GastoVehiculo, error)
	TotalGastosMes(vehiculoID string, anio int, mes time.Month) (decimal.Decimal, error)
}
