package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Vehiculo representa un vehículo de la flota.
type Vehiculo struct {
	ID        string
	Placa     string
	Marca     string
	Modelo    string
	Anio      int
	Activo    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GastoVehiculo gasto asociado a un vehículo (combustible, mantención, etc.).
type GastoVehiculo struct {
	ID         string
	VehiculoID string
	Concepto   string
	Monto      decimal.Decimal
	Fecha      time.Time
	ActorID    string
	CreatedAt  time.Time
}
