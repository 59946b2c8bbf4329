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

var _ repository.ProveedorRepository = (*ProveedorRepo)(nil)

// ProveedorRepo implementación de ProveedorRepository sobre PostgreSQL.
type ProveedorRepo struct {
	q Querier
}

// NewProveedorRepository construye el adaptador. Acepta pool o tx (Querier).
func NewProveedorRepository(q Querier) *ProveedorRepo {
	return &ProveedorRepo{q: q}
}

const proveedorColumns = `id, nombre, contacto, telefono, email, activo, created_at, updated_at`

func (r *ProveedorRepo) Create(proveedor *entity.Proveedor) error {
	query := `
		INSERT INTO proveedores (id, nombre, contacto, telefono, email, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		proveedor.ID, proveedor.Nombre, proveedor.Contacto, proveedor.Telefono,
		proveedor.Email, proveedor.Activo, proveedor.CreatedAt, proveedor.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("create proveedor: %w", err)
	}
	return nil
}

func (r *ProveedorRepo) GetByID(id string) (*entity.Proveedor, error) {
	query := `SELECT ` + proveedorColumns + ` FROM proveedores WHERE id = $1 AND activo = true`
	proveedor, err := scanProveedor(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proveedor: %w", err)
	}
	return proveedor, nil
}

// ListByIDs lookup en lote (incluye inactivos, para compras históricas).
func (r *ProveedorRepo) ListByIDs(ids []string) ([]*entity.Proveedor, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + proveedorColumns + ` FROM proveedores WHERE id = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("list proveedores by ids: %w", err)
	}
	defer rows.Close()
	return scanProveedores(rows)
}

func (r *ProveedorRepo) Update(proveedor *entity.Proveedor) error {
	query := `
		UPDATE proveedores
		SET nombre = $2, contacto = $3, telefono = $4, email = $5, activo = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		proveedor.ID, proveedor.Nombre, proveedor.Contacto, proveedor.Telefono,
		proveedor.Email, proveedor.Activo, proveedor.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update proveedor: %w", err)
	}
	return nil
}

func (r *ProveedorRepo) List(limit, offset int) ([]*entity.Proveedor, error) {
	query := `
		SELECT ` + proveedorColumns + `
		FROM proveedores
		WHERE activo = true
		ORDER BY nombre LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list proveedores: %w", err)
	}
	defer rows.Close()
	return scanProveedores(rows)
}

func (r *ProveedorRepo) Delete(id string) error {
	query := `UPDATE proveedores SET activo = false, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("delete proveedor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}

func scanProveedor(row pgx.Row) (*entity.Proveedor, error) {
	var p entity.Proveedor
	if err := row.Scan(
		&p.ID, &p.Nombre, &p.Contacto, &p.Telefono, &p.Email,
		&p.Activo, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProveedores(rows pgx.Rows) ([]*entity.Proveedor, error) {
	var list []*entity.Proveedor
	for rows.Next() {
		p, err := scanProveedor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan proveedor: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
