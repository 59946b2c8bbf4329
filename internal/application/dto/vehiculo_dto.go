package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CrearVehiculoRequest struct {
	Placa  string `json:"placa"`
	Marca  string `json:"marca,omitempty"`
	Modelo string `json:"modelo,omitempty"`
	Anio   int    `json:"anio,omitempty"`
}

type ActualizarVehiculoRequest struct {
	Placa  *string `json:"placa,omitempty"`
	Marca  *string `json:"marca,omitempty"`
	Modelo *string `json:"modelo,omitempty"`
	Anio   *int    `json:"anio,omitempty"`
	Activo *bool   `json:"activo,omitempty"`
}

type VehiculoResponse struct {
	ID        string    `json:"id"`
	Placa     string    `json:"placa"`
	Marca     string    `json:"marca,omitempty"`
	Modelo    string    `json:"modelo,omitempty"`
	Anio      int       `json:"anio,omitempty"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RegistrarGastoRequest body para POST /api/vehiculos/:id/gastos.
type RegistrarGastoRequest struct {
	Concepto string          `json:"concepto"`
	Monto    decimal.Decimal `json:"monto"`
	Fecha    string          `json:"fecha,omitempty"` // YYYY-MM-DD; vacío = hoy
}

type GastoVehiculoResponse struct {
	ID         string          `json:"id"`
	VehiculoID string          `json:"vehiculo_id"`
	Concepto   string          `json:"concepto"`
	Monto      decimal.Decimal `json:"monto"`
	Fecha      time.Time       `json:"fecha"`
	ActorID    string          `json:"actor_id"`
	CreatedAt  time.Time       `json:"created_at"`
}
