package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador. Acepta pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

func (r *StockRepo) Get(productoID, sucursalID string) (*entity.StockSucursal, error) {
	return r.get(productoID, sucursalID, false)
}

// GetForUpdate bloquea la fila del contador (SELECT FOR UPDATE). Si el
// producto aún no tiene fila en la sucursal, devuelve cantidad cero; la
// serialización en ese caso la da el ON CONFLICT del Upsert.
func (r *StockRepo) GetForUpdate(productoID, sucursalID string) (*entity.StockSucursal, error) {
	return r.get(productoID, sucursalID, true)
}

func (r *StockRepo) get(productoID, sucursalID string, forUpdate bool) (*entity.StockSucursal, error) {
	query := `
		SELECT producto_id, sucursal_id, cantidad, cantidad_minima, updated_at
		FROM stock_sucursal
		WHERE producto_id = $1 AND sucursal_id = $2`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var s entity.StockSucursal
	err := r.q.QueryRow(context.Background(), query, productoID, sucursalID).Scan(
		&s.ProductoID, &s.SucursalID, &s.Cantidad, &s.CantidadMinima, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockSucursal{
				ProductoID:     productoID,
				SucursalID:     sucursalID,
				Cantidad:       decimal.Zero,
				CantidadMinima: decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

func (r *StockRepo) Upsert(stock *entity.StockSucursal) error {
	query := `
		INSERT INTO stock_sucursal (producto_id, sucursal_id, cantidad, cantidad_minima, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (producto_id, sucursal_id)
		DO UPDATE SET cantidad = EXCLUDED.cantidad, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		stock.ProductoID, stock.SucursalID, stock.Cantidad, stock.CantidadMinima)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

func (r *StockRepo) ListBySucursal(sucursalID string, limit, offset int) ([]*entity.StockSucursal, error) {
	query := `
		SELECT producto_id, sucursal_id, cantidad, cantidad_minima, updated_at
		FROM stock_sucursal
		WHERE sucursal_id = $1
		ORDER BY updated_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, sucursalID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock by sucursal: %w", err)
	}
	defer rows.Close()
	return scanStock(rows)
}

func (r *StockRepo) ListBajoMinimo(sucursalID string) ([]*entity.StockSucursal, error) {
	query := `
		SELECT producto_id, sucursal_id, cantidad, cantidad_minima, updated_at
		FROM stock_sucursal
		WHERE sucursal_id = $1
		  AND cantidad_minima > 0
		  AND cantidad <= cantidad_minima
		ORDER BY (cantidad_minima - cantidad) DESC`
	rows, err := r.q.Query(context.Background(), query, sucursalID)
	if err != nil {
		return nil, fmt.Errorf("list stock bajo minimo: %w", err)
	}
	defer rows.Close()
	return scanStock(rows)
}

func scanStock(rows pgx.Rows) ([]*entity.StockSucursal, error) {
	var list []*entity.StockSucursal
	for rows.Next() {
		var s entity.StockSucursal
		if err := rows.Scan(&s.ProductoID, &s.SucursalID, &s.Cantidad, &s.CantidadMinima, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
