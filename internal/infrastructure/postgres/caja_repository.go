package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

var _ repository.CajaRepository = (*CajaRepo)(nil)

// CajaRepo implementación de CajaRepository sobre PostgreSQL.
type CajaRepo struct {
	q Querier
}

// NewCajaRepository construye el adaptador. Acepta pool o tx (Querier).
func NewCajaRepository(q Querier) *CajaRepo {
	return &CajaRepo{q: q}
}

func (r *CajaRepo) Create(mov *entity.MovimientoCaja) error {
	query := `
		INSERT INTO caja_movimientos (id, sucursal_id, tipo, concepto, monto, fecha, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		mov.ID, mov.SucursalID, mov.Tipo, mov.Concepto, mov.Monto,
		mov.Fecha, mov.ActorID, mov.CreatedAt)
	if err != nil {
		return fmt.Errorf("create movimiento caja: %w", err)
	}
	return nil
}

func (r *CajaRepo) ListByDia(sucursalID string, fecha time.Time) ([]*entity.MovimientoCaja, error) {
	query := `
		SELECT id, sucursal_id, tipo, concepto, monto, fecha, actor_id, created_at
		FROM caja_movimientos
		WHERE sucursal_id = $1 AND fecha::date = $2::date
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, sucursalID, fecha)
	if err != nil {
		return nil, fmt.Errorf("list caja by dia: %w", err)
	}
	defer rows.Close()

	var list []*entity.MovimientoCaja
	for rows.Next() {
		var m entity.MovimientoCaja
		if err := rows.Scan(&m.ID, &m.SucursalID, &m.Tipo, &m.Concepto, &m.Monto, &m.Fecha, &m.ActorID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movimiento caja: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// SaldoDia ingresos menos egresos del día.
func (r *CajaRepo) SaldoDia(sucursalID string, fecha time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN tipo = 'ingreso' THEN monto ELSE -monto END), 0)
		FROM caja_movimientos
		WHERE sucursal_id = $1 AND fecha::date = $2::date`
	var saldo decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, sucursalID, fecha).Scan(&saldo)
	if err != nil {
		return decimal.Zero, fmt.Errorf("saldo caja dia: %w", err)
	}
	return saldo, nil
}
