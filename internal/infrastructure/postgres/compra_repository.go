package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

var _ repository.CompraRepository = (*CompraRepo)(nil)

// CompraRepo implementación de CompraRepository sobre PostgreSQL.
// La cabecera vive en compras y el detalle en compra_items.
type CompraRepo struct {
	q Querier
}

// NewCompraRepository construye el adaptador. Acepta pool o tx (Querier).
func NewCompraRepository(q Querier) *CompraRepo {
	return &CompraRepo{q: q}
}

const compraColumns = `id, proveedor_id, sucursal_id, total, estado,
	fecha_recepcion, creada_por, created_at, updated_at`

func (r *CompraRepo) Create(compra *entity.Compra) error {
	query := `
		INSERT INTO compras
			(id, proveedor_id, sucursal_id, total, estado, fecha_recepcion, creada_por, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		compra.ID, compra.ProveedorID, compra.SucursalID, compra.Total, compra.Estado,
		compra.FechaRecepcion, compra.CreadaPor, compra.CreatedAt, compra.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("create compra: %w", err)
	}
	return r.insertItems(compra.ID, compra.Items)
}

func (r *CompraRepo) GetByID(id string) (*entity.Compra, error) {
	return r.get(id, false)
}

// GetForUpdate bloquea la cabecera; dos recepciones concurrentes de la misma
// compra se serializan en este lock.
func (r *CompraRepo) GetForUpdate(id string) (*entity.Compra, error) {
	return r.get(id, true)
}

func (r *CompraRepo) get(id string, forUpdate bool) (*entity.Compra, error) {
	query := `
		SELECT ` + compraColumns + `
		FROM compras
		WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	compra, err := scanCompra(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get compra: %w", err)
	}
	items, err := r.itemsDe(compra.ID)
	if err != nil {
		return nil, err
	}
	compra.Items = items
	return compra, nil
}

func (r *CompraRepo) Update(compra *entity.Compra) error {
	query := `
		UPDATE compras
		SET proveedor_id = $2, sucursal_id = NULLIF($3, ''), total = $4,
		    estado = $5, fecha_recepcion = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		compra.ID, compra.ProveedorID, compra.SucursalID, compra.Total,
		compra.Estado, compra.FechaRecepcion, compra.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update compra: %w", err)
	}
	return nil
}

func (r *CompraRepo) ReplaceItems(compraID string, items []entity.ItemCompra) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM compra_items WHERE compra_id = $1`, compraID); err != nil {
		return fmt.Errorf("delete compra items: %w", err)
	}
	return r.insertItems(compraID, items)
}

func (r *CompraRepo) insertItems(compraID string, items []entity.ItemCompra) error {
	query := `
		INSERT INTO compra_items (compra_id, producto_id, cantidad, precio_unitario, subtotal)
		VALUES ($1, $2, $3, $4, $5)`
	for _, it := range items {
		if _, err := r.q.Exec(context.Background(), query,
			compraID, it.ProductoID, it.Cantidad, it.PrecioUnitario, it.Subtotal); err != nil {
			return fmt.Errorf("insert compra item: %w", err)
		}
	}
	return nil
}

func (r *CompraRepo) List(limit, offset int) ([]*entity.Compra, error) {
	query := `
		SELECT ` + compraColumns + `
		FROM compras
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

func (r *CompraRepo) Filtrar(filtro repository.FiltroCompras) ([]*entity.Compra, error) {
	query := `
		SELECT ` + compraColumns + `
		FROM compras
		WHERE true`
	var args []any
	if filtro.Estado != "" {
		args = append(args, filtro.Estado)
		query += fmt.Sprintf(" AND estado = $%d", len(args))
	}
	if filtro.ProveedorID != "" {
		args = append(args, filtro.ProveedorID)
		query += fmt.Sprintf(" AND proveedor_id = $%d", len(args))
	}
	query, args = conRangoFechas(query, args, "created_at", filtro.Desde, filtro.Hasta)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filtro.Limit, filtro.Offset)

	return r.list(query, args...)
}

func (r *CompraRepo) Delete(id string) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM compra_items WHERE compra_id = $1`, id); err != nil {
		return fmt.Errorf("delete compra items: %w", err)
	}
	tag, err := r.q.Exec(context.Background(), `DELETE FROM compras WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete compra: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}

func (r *CompraRepo) list(query string, args ...any) ([]*entity.Compra, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list compras: %w", err)
	}
	defer rows.Close()

	var list []*entity.Compra
	for rows.Next() {
		compra, err := scanCompra(rows)
		if err != nil {
			return nil, fmt.Errorf("scan compra: %w", err)
		}
		list = append(list, compra)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, compra := range list {
		items, err := r.itemsDe(compra.ID)
		if err != nil {
			return nil, err
		}
		compra.Items = items
	}
	return list, nil
}

func (r *CompraRepo) itemsDe(compraID string) ([]entity.ItemCompra, error) {
	query := `
		SELECT producto_id, cantidad, precio_unitario, subtotal
		FROM compra_items
		WHERE compra_id = $1
		ORDER BY producto_id`
	rows, err := r.q.Query(context.Background(), query, compraID)
	if err != nil {
		return nil, fmt.Errorf("list compra items: %w", err)
	}
	defer rows.Close()

	var items []entity.ItemCompra
	for rows.Next() {
		var it entity.ItemCompra
		if err := rows.Scan(&it.ProductoID, &it.Cantidad, &it.PrecioUnitario, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan compra item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanCompra(row pgx.Row) (*entity.Compra, error) {
	var (
		c        entity.Compra
		sucursal *string
	)
	if err := row.Scan(
		&c.ID, &c.ProveedorID, &sucursal, &c.Total, &c.Estado,
		&c.FechaRecepcion, &c.CreadaPor, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if sucursal != nil {
		c.SucursalID = *sucursal
	}
	return &c, nil
}
