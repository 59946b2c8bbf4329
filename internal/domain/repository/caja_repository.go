package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
)

// CajaRepository define el puerto de persistencia para movimientos de caja.
type CajaRepository interface {
	Create(mov *entity.MovimientoCaja) error
	ListByDia(sucursalID string, fecha time.Time) ([]*entity.MovimientoCaja, error)
	// SaldoDia ingresos menos egresos del día.
	SaldoDia(sucursalID string, fecha time.Time) (decimal.Decimal, error)
}
