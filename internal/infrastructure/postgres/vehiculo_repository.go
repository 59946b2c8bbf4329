package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

var _ repository.VehiculoRepository = (*VehiculoRepo)(nil)

// VehiculoRepo implementación de VehiculoRepository sobre PostgreSQL.
type VehiculoRepo struct {
	q Querier
}

// NewVehiculoRepository construye el adaptador. Acepta pool o tx (Querier).
func NewVehiculoRepository(q Querier) *VehiculoRepo {
	return &VehiculoRepo{q: q}
}

func (r *VehiculoRepo) Create(vehiculo *entity.Vehiculo) error {
	query := `
		INSERT INTO vehiculos (id, placa, marca, modelo, anio, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		vehiculo.ID, vehiculo.Placa, vehiculo.Marca, vehiculo.Modelo,
		vehiculo.Anio, vehiculo.Activo, vehiculo.CreatedAt, vehiculo.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("create vehiculo: %w", err)
	}
	return nil
}

func (r *VehiculoRepo) GetByID(id string) (*entity.Vehiculo, error) {
	query := `
		SELECT id, placa, marca, modelo, anio, activo, created_at, updated_at
		FROM vehiculos
		WHERE id = $1 AND activo = true`
	var v entity.Vehiculo
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.Placa, &v.Marca, &v.Modelo, &v.Anio, &v.Activo, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehiculo: %w", err)
	}
	return &v, nil
}

func (r *VehiculoRepo) Update(vehiculo *entity.Vehiculo) error {
	query := `
		UPDATE vehiculos
		SET placa = $2, marca = $3, modelo = $4, anio = $5, activo = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		vehiculo.ID, vehiculo.Placa, vehiculo.Marca, vehiculo.Modelo,
		vehiculo.Anio, vehiculo.Activo, vehiculo.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update vehiculo: %w", err)
	}
	return nil
}

func (r *VehiculoRepo) List(limit, offset int) ([]*entity.Vehiculo, error) {
	query := `
		SELECT id, placa, marca, modelo, anio, activo, created_at, updated_at
		FROM vehiculos
		WHERE activo = true
		ORDER BY placa LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list vehiculos: %w", err)
	}
	defer rows.Close()

	var list []*entity.Vehiculo
	for rows.Next() {
		var v entity.Vehiculo
		if err := rows.Scan(&v.ID, &v.Placa, &v.Marca, &v.Modelo, &v.Anio, &v.Activo, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan vehiculo: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

func (r *VehiculoRepo) Delete(id string) error {
	query := `UPDATE vehiculos SET activo = false, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("delete vehiculo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}

func (r *VehiculoRepo) CreateGasto(gasto *entity.GastoVehiculo) error {
	query := `
		INSERT INTO vehiculo_gastos (id, vehiculo_id, concepto, monto, fecha, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		gasto.ID, gasto.VehiculoID, gasto.Concepto, gasto.Monto,
		gasto.Fecha, gasto.ActorID, gasto.CreatedAt)
	if err != nil {
		return fmt.Errorf("create gasto vehiculo: %w", err)
	}
	return nil
}

func (r *VehiculoRepo) ListGastos(vehiculoID string, desde, hasta *time.Time, limit, offset int) ([]*entity.GastoVehiculo, error) {
	query := `
		SELECT id, vehiculo_id, concepto, monto, fecha, actor_id, created_at
		FROM vehiculo_gastos
		WHERE vehiculo_id = $1`
	args := []any{vehiculoID}
	query, args = conRangoFechas(query, args, "fecha", desde, hasta)
	query += fmt.Sprintf(" ORDER BY fecha DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list gastos vehiculo: %w", err)
	}
	defer rows.Close()

	var list []*entity.GastoVehiculo
	for rows.Next() {
		var g entity.GastoVehiculo
		if err := rows.Scan(&g.ID, &g.VehiculoID, &g.Concepto, &g.Monto, &g.Fecha, &g.ActorID, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan gasto vehiculo: %w", err)
		}
		list = append(list, &g)
	}
	return list, rows.Err()
}

func (r *VehiculoRepo) TotalGastosMes(vehiculoID string, anio int, mes time.Month) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(monto), 0)
		FROM vehiculo_gastos
		WHERE vehiculo_id = $1
		  AND date_trunc('month', fecha) = make_date($2, $3, 1)`
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, vehiculoID, anio, int(mes)).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total gastos mes: %w", err)
	}
	return total, nil
}
