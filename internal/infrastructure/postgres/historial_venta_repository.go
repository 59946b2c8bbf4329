package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

var _ repository.HistorialVentaRepository = (*HistorialVentaRepo)(nil)

// HistorialVentaRepo implementación de HistorialVentaRepository sobre PostgreSQL.
// Append-only; lo escribe el outbox de historial, no la transacción de edición.
type HistorialVentaRepo struct {
	q Querier
}

// NewHistorialVentaRepository construye el adaptador. Acepta pool o tx (Querier).
func NewHistorialVentaRepository(q Querier) *HistorialVentaRepo {
	return &HistorialVentaRepo{q: q}
}

func (r *HistorialVentaRepo) Create(registro *entity.HistorialVenta) error {
	query := `
		INSERT INTO ventas_historial
			(id, venta_id, tipo, actor_id, total_anterior, total_nuevo, items_antes, items_despues, deltas, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		registro.ID, registro.VentaID, registro.Tipo, registro.ActorID,
		registro.TotalAnterior, registro.TotalNuevo,
		registro.ItemsAntes, registro.ItemsDespues,
		registro.Deltas, registro.CreatedAt)
	if err != nil {
		return fmt.Errorf("create historial venta: %w", err)
	}
	return nil
}

func (r *HistorialVentaRepo) ListByVenta(ventaID string, limit, offset int) ([]*entity.HistorialVenta, error) {
	query := `
		SELECT id, venta_id, tipo, actor_id, total_anterior, total_nuevo, items_antes, items_despues, deltas, created_at
		FROM ventas_historial
		WHERE venta_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, ventaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list historial venta: %w", err)
	}
	defer rows.Close()

	var list []*entity.HistorialVenta
	for rows.Next() {
		var h entity.HistorialVenta
		if err := rows.Scan(
			&h.ID, &h.VentaID, &h.Tipo, &h.ActorID,
			&h.TotalAnterior, &h.TotalNuevo,
			&h.ItemsAntes, &h.ItemsDespues,
			&h.Deltas, &h.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan historial venta: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
