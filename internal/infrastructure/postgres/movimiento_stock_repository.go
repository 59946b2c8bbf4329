package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

var _ repository.MovimientoStockRepository = (*MovimientoStockRepo)(nil)

// MovimientoStockRepo implementación de MovimientoStockRepository sobre PostgreSQL.
// La tabla es append-only: no hay UPDATE ni DELETE.
type MovimientoStockRepo struct {
	q Querier
}

// NewMovimientoStockRepository construye el adaptador. Acepta pool o tx (Querier).
func NewMovimientoStockRepository(q Querier) *MovimientoStockRepo {
	return &MovimientoStockRepo{q: q}
}

func (r *MovimientoStockRepo) Create(mov *entity.MovimientoStock) error {
	query := `
		INSERT INTO movimientos_stock
			(id, sucursal_id, producto_id, tipo, cantidad, motivo, referencia_tipo, referencia_id, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		mov.ID, mov.SucursalID, mov.ProductoID, mov.Tipo, mov.Cantidad,
		mov.Motivo, mov.ReferenciaTipo, mov.ReferenciaID, mov.ActorID, mov.CreatedAt)
	if err != nil {
		return fmt.Errorf("create movimiento stock: %w", err)
	}
	return nil
}

func (r *MovimientoStockRepo) ListBySucursal(sucursalID string, desde, hasta *time.Time, limit, offset int) ([]*entity.MovimientoStock, error) {
	query := `
		SELECT id, sucursal_id, producto_id, tipo, cantidad, motivo, referencia_tipo, referencia_id, actor_id, created_at
		FROM movimientos_stock
		WHERE sucursal_id = $1`
	args := []any{sucursalID}
	query, args = conRangoFechas(query, args, "created_at", desde, hasta)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos by sucursal: %w", err)
	}
	defer rows.Close()
	return scanMovimientos(rows)
}

func (r *MovimientoStockRepo) ListByProducto(productoID string, desde, hasta *time.Time, limit, offset int) ([]*entity.MovimientoStock, error) {
	query := `
		SELECT id, sucursal_id, producto_id, tipo, cantidad, motivo, referencia_tipo, referencia_id, actor_id, created_at
		FROM movimientos_stock
		WHERE producto_id = $1`
	args := []any{productoID}
	query, args = conRangoFechas(query, args, "created_at", desde, hasta)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos by producto: %w", err)
	}
	defer rows.Close()
	return scanMovimientos(rows)
}

// conRangoFechas agrega condiciones de rango sobre la columna dada.
func conRangoFechas(query string, args []any, col string, desde, hasta *time.Time) (string, []any) {
	if desde != nil {
		args = append(args, *desde)
		query += fmt.Sprintf(" AND %s >= $%d", col, len(args))
	}
	if hasta != nil {
		args = append(args, *hasta)
		query += fmt.Sprintf(" AND %s <= $%d", col, len(args))
	}
	return query, args
}

func scanMovimientos(rows pgx.Rows) ([]*entity.MovimientoStock, error) {
	var list []*entity.MovimientoStock
	for rows.Next() {
		var m entity.MovimientoStock
		if err := rows.Scan(
			&m.ID, &m.SucursalID, &m.ProductoID, &m.Tipo, &m.Cantidad,
			&m.Motivo, &m.ReferenciaTipo, &m.ReferenciaID, &m.ActorID, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movimiento stock: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
