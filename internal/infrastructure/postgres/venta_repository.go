package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

var _ repository.VentaRepository = (*VentaRepo)(nil)

// VentaRepo implementación de VentaRepository sobre PostgreSQL.
// La cabecera vive en ventas y el detalle en venta_items.
type VentaRepo struct {
	q Querier
}

// NewVentaRepository construye el adaptador. Acepta pool o tx (Querier).
func NewVentaRepository(q Querier) *VentaRepo {
	return &VentaRepo{q: q}
}

const ventaColumns = `id, sucursal_id, cliente_id, subtotal, total, monto_pagado,
	estado_pago, estado, eliminada, creada_por, created_at, updated_at`

func (r *VentaRepo) Create(venta *entity.Venta) error {
	query := `
		INSERT INTO ventas
			(id, sucursal_id, cliente_id, subtotal, total, monto_pagado,
			 estado_pago, estado, eliminada, creada_por, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		venta.ID, venta.SucursalID, venta.ClienteID, venta.Subtotal, venta.Total,
		venta.MontoPagado, venta.EstadoPago, venta.Estado, venta.Eliminada,
		venta.CreadaPor, venta.CreatedAt, venta.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("create venta: %w", err)
	}
	return r.insertItems(venta.ID, venta.Items)
}

func (r *VentaRepo) GetByID(id string) (*entity.Venta, error) {
	return r.get(id, false)
}

func (r *VentaRepo) GetForUpdate(id string) (*entity.Venta, error) {
	return r.get(id, true)
}

func (r *VentaRepo) get(id string, forUpdate bool) (*entity.Venta, error) {
	query := `
		SELECT ` + ventaColumns + `
		FROM ventas
		WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	venta, err := scanVenta(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta: %w", err)
	}
	items, err := r.itemsDe(venta.ID)
	if err != nil {
		return nil, err
	}
	venta.Items = items
	return venta, nil
}

func (r *VentaRepo) Update(venta *entity.Venta) error {
	query := `
		UPDATE ventas
		SET cliente_id = NULLIF($2, ''), subtotal = $3, total = $4, monto_pagado = $5,
		    estado_pago = $6, estado = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		venta.ID, venta.ClienteID, venta.Subtotal, venta.Total,
		venta.MontoPagado, venta.EstadoPago, venta.Estado, venta.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update venta: %w", err)
	}
	return nil
}

func (r *VentaRepo) ReplaceItems(ventaID string, items []entity.ItemVenta) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM venta_items WHERE venta_id = $1`, ventaID); err != nil {
		return fmt.Errorf("delete venta items: %w", err)
	}
	return r.insertItems(ventaID, items)
}

func (r *VentaRepo) insertItems(ventaID string, items []entity.ItemVenta) error {
	query := `
		INSERT INTO venta_items (venta_id, producto_id, cantidad, precio_unitario, subtotal)
		VALUES ($1, $2, $3, $4, $5)`
	for _, it := range items {
		if _, err := r.q.Exec(context.Background(), query,
			ventaID, it.ProductoID, it.Cantidad, it.PrecioUnitario, it.Subtotal); err != nil {
			return fmt.Errorf("insert venta item: %w", err)
		}
	}
	return nil
}

func (r *VentaRepo) List(filtro repository.FiltroVentas) ([]*entity.Venta, error) {
	query := `
		SELECT ` + ventaColumns + `
		FROM ventas
		WHERE eliminada = false`
	var args []any
	if filtro.SucursalID != "" {
		args = append(args, filtro.SucursalID)
		query += fmt.Sprintf(" AND sucursal_id = $%d", len(args))
	}
	if filtro.Estado != "" {
		args = append(args, filtro.Estado)
		query += fmt.Sprintf(" AND estado = $%d", len(args))
	}
	if filtro.EstadoPago != "" {
		args = append(args, filtro.EstadoPago)
		query += fmt.Sprintf(" AND estado_pago = $%d", len(args))
	}
	query, args = conRangoFechas(query, args, "created_at", filtro.Desde, filtro.Hasta)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filtro.Limit, filtro.Offset)

	return r.list(query, args...)
}

func (r *VentaRepo) ListEliminadas(limit, offset int) ([]*entity.Venta, error) {
	query := `
		SELECT ` + ventaColumns + `
		FROM ventas
		WHERE eliminada = true
		ORDER BY updated_at DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// Buscar por prefijo de ID o por nombre de cliente (ILIKE).
func (r *VentaRepo) Buscar(q string, limit int) ([]*entity.Venta, error) {
	query := `
		SELECT ` + prefijarColumnas("v", ventaColumns) + `
		FROM ventas v
		LEFT JOIN clientes c ON c.id = v.cliente_id
		WHERE v.eliminada = false
		  AND (v.id::text ILIKE $1 || '%' OR c.nombre ILIKE '%' || $1 || '%')
		ORDER BY v.created_at DESC LIMIT $2`
	return r.list(query, q, limit)
}

func (r *VentaRepo) SoftDelete(id string) error {
	query := `UPDATE ventas SET eliminada = true, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("soft delete venta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}

// ResumenDia agregados del día calendario de la fecha dada (no eliminadas).
func (r *VentaRepo) ResumenDia(fecha time.Time) (*entity.ResumenDiaVentas, error) {
	dia := fecha.Truncate(24 * time.Hour)
	resumen := &entity.ResumenDiaVentas{
		Fecha:           dia,
		VentasPorEstado: map[string]int{},
	}

	query := `
		SELECT estado, COUNT(*), COALESCE(SUM(total), 0), COALESCE(SUM(monto_pagado), 0)
		FROM ventas
		WHERE eliminada = false
		  AND created_at >= $1 AND created_at < $2
		GROUP BY estado`
	rows, err := r.q.Query(context.Background(), query, dia, dia.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("resumen dia ventas: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			estado   string
			cantidad int
			grupo    entity.ResumenDiaVentas
		)
		if err := rows.Scan(&estado, &cantidad, &grupo.TotalVendido, &grupo.TotalCobrado); err != nil {
			return nil, fmt.Errorf("scan resumen dia: %w", err)
		}
		resumen.VentasPorEstado[estado] = cantidad
		resumen.CantidadVentas += cantidad
		resumen.TotalVendido = resumen.TotalVendido.Add(grupo.TotalVendido)
		resumen.TotalCobrado = resumen.TotalCobrado.Add(grupo.TotalCobrado)
	}
	return resumen, rows.Err()
}

func (r *VentaRepo) list(query string, args ...any) ([]*entity.Venta, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ventas: %w", err)
	}
	defer rows.Close()

	var list []*entity.Venta
	for rows.Next() {
		venta, err := scanVenta(rows)
		if err != nil {
			return nil, fmt.Errorf("scan venta: %w", err)
		}
		list = append(list, venta)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, venta := range list {
		items, err := r.itemsDe(venta.ID)
		if err != nil {
			return nil, err
		}
		venta.Items = items
	}
	return list, nil
}

func (r *VentaRepo) itemsDe(ventaID string) ([]entity.ItemVenta, error) {
	query := `
		SELECT producto_id, cantidad, precio_unitario, subtotal
		FROM venta_items
		WHERE venta_id = $1
		ORDER BY producto_id`
	rows, err := r.q.Query(context.Background(), query, ventaID)
	if err != nil {
		return nil, fmt.Errorf("list venta items: %w", err)
	}
	defer rows.Close()

	var items []entity.ItemVenta
	for rows.Next() {
		var it entity.ItemVenta
		if err := rows.Scan(&it.ProductoID, &it.Cantidad, &it.PrecioUnitario, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan venta item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanVenta(row pgx.Row) (*entity.Venta, error) {
	var (
		v       entity.Venta
		cliente *string
	)
	if err := row.Scan(
		&v.ID, &v.SucursalID, &cliente, &v.Subtotal, &v.Total, &v.MontoPagado,
		&v.EstadoPago, &v.Estado, &v.Eliminada, &v.CreadaPor, &v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if cliente != nil {
		v.ClienteID = *cliente
	}
	return &v, nil
}
