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

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

// ProductoRepo implementación de ProductoRepository sobre PostgreSQL.
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador. Acepta pool o tx (Querier).
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

const productoColumns = `id, sku, nombre, descripcion, categoria_id, precio, activo, created_at, updated_at`

func (r *ProductoRepo) Create(producto *entity.Producto) error {
	query := `
		INSERT INTO productos
			(id, sku, nombre, descripcion, categoria_id, precio, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		producto.ID, producto.SKU, producto.Nombre, producto.Descripcion,
		producto.CategoriaID, producto.Precio, producto.Activo,
		producto.CreatedAt, producto.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("create producto: %w", err)
	}
	return nil
}

func (r *ProductoRepo) GetByID(id string) (*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE id = $1 AND activo = true`
	producto, err := scanProducto(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return producto, nil
}

// ListByIDs lookup en lote (incluye inactivos: el enriquecimiento de ventas
// y compras históricas necesita los nombres igual).
func (r *ProductoRepo) ListByIDs(ids []string) ([]*entity.Producto, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + productoColumns + ` FROM productos WHERE id = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("list productos by ids: %w", err)
	}
	defer rows.Close()
	return scanProductos(rows)
}

func (r *ProductoRepo) Update(producto *entity.Producto) error {
	query := `
		UPDATE productos
		SET nombre = $2, descripcion = $3, categoria_id = NULLIF($4, ''),
		    precio = $5, activo = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		producto.ID, producto.Nombre, producto.Descripcion, producto.CategoriaID,
		producto.Precio, producto.Activo, producto.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update producto: %w", err)
	}
	return nil
}

func (r *ProductoRepo) List(limit, offset int) ([]*entity.Producto, error) {
	query := `
		SELECT ` + productoColumns + `
		FROM productos
		WHERE activo = true
		ORDER BY nombre LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	return scanProductos(rows)
}

// Delete borrado lógico. Las ventas y movimientos históricos mantienen la FK.
func (r *ProductoRepo) Delete(id string) error {
	query := `UPDATE productos SET activo = false, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("delete producto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}

func scanProducto(row pgx.Row) (*entity.Producto, error) {
	var (
		p         entity.Producto
		categoria *string
	)
	if err := row.Scan(
		&p.ID, &p.SKU, &p.Nombre, &p.Descripcion, &categoria,
		&p.Precio, &p.Activo, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if categoria != nil {
		p.CategoriaID = *categoria
	}
	return &p, nil
}

func scanProductos(rows pgx.Rows) ([]*entity.Producto, error) {
	var list []*entity.Producto
	for rows.Next() {
		p, err := scanProducto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
