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

var _ repository.SucursalRepository = (*SucursalRepo)(nil)

// SucursalRepo implementación de SucursalRepository sobre PostgreSQL.
type SucursalRepo struct {
	q Querier
}

// NewSucursalRepository construye el adaptador. Acepta pool o tx (Querier).
func NewSucursalRepository(q Querier) *SucursalRepo {
	return &SucursalRepo{q: q}
}

const sucursalColumns = `id, nombre, direccion, principal, created_at, updated_at`

func (r *SucursalRepo) Create(sucursal *entity.Sucursal) error {
	query := `
		INSERT INTO sucursales (id, nombre, direccion, principal, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		sucursal.ID, sucursal.Nombre, sucursal.Direccion, sucursal.Principal,
		sucursal.CreatedAt, sucursal.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("create sucursal: %w", err)
	}
	return nil
}

func (r *SucursalRepo) GetByID(id string) (*entity.Sucursal, error) {
	query := `SELECT ` + sucursalColumns + ` FROM sucursales WHERE id = $1`
	sucursal, err := scanSucursal(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sucursal: %w", err)
	}
	return sucursal, nil
}

// GetPrincipal devuelve nil, nil si ninguna sucursal está marcada principal.
func (r *SucursalRepo) GetPrincipal() (*entity.Sucursal, error) {
	query := `SELECT ` + sucursalColumns + ` FROM sucursales WHERE principal = true LIMIT 1`
	sucursal, err := scanSucursal(r.q.QueryRow(context.Background(), query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sucursal principal: %w", err)
	}
	return sucursal, nil
}

func (r *SucursalRepo) Update(sucursal *entity.Sucursal) error {
	query := `
		UPDATE sucursales
		SET nombre = $2, direccion = $3, principal = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		sucursal.ID, sucursal.Nombre, sucursal.Direccion, sucursal.Principal, sucursal.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update sucursal: %w", err)
	}
	return nil
}

func (r *SucursalRepo) List(limit, offset int) ([]*entity.Sucursal, error) {
	query := `
		SELECT ` + sucursalColumns + `
		FROM sucursales
		ORDER BY nombre LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sucursales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sucursal
	for rows.Next() {
		s, err := scanSucursal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sucursal: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *SucursalRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM sucursales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sucursal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}

func scanSucursal(row pgx.Row) (*entity.Sucursal, error) {
	var s entity.Sucursal
	if err := row.Scan(&s.ID, &s.Nombre, &s.Direccion, &s.Principal, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
