package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// HistorialVenta registro inmutable de una edición de venta. Se escribe
// fuera de la transacción de edición (outbox best-effort): su falla no
// revierte la edición.
type HistorialVenta struct {
	ID            string
	VentaID       string
	Tipo          string // edicion | devolucion
	ActorID       string
	TotalAnterior decimal.Decimal
	TotalNuevo    decimal.Decimal
	ItemsAntes    int
	ItemsDespues  int
	Deltas        json.RawMessage // deltas crudos por producto
	CreatedAt     time.Time
}
