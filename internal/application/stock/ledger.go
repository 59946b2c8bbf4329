package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

// DeltaStock cambio firmado sobre el contador de un (producto, sucursal).
// Cantidad positiva acredita (entrada), negativa descuenta (salida).
type DeltaStock struct {
	ProductoID     string
	SucursalID     string
	Cantidad       decimal.Decimal
	Motivo         string
	ReferenciaTipo string
	ReferenciaID   string
	ActorID        string
}

// Ledger mantiene el contador de stock por (producto, sucursal) y el log
// append-only de movimientos. Toda mutación pasa por AplicarDeltaEnTx.
type Ledger struct {
	txRunner  TxRunner
	stockRepo repository.StockRepository
	movRepo   repository.MovimientoStockRepository
}

// NewLedger construye el ledger. stockRepo y movRepo van atados al pool
// (lecturas); las escrituras usan los repos de la tx que abre txRunner.
func NewLedger(txRunner TxRunner, stockRepo repository.StockRepository, movRepo repository.MovimientoStockRepository) *Ledger {
	return &Ledger{txRunner: txRunner, stockRepo: stockRepo, movRepo: movRepo}
}

// ConsultarStock devuelve la cantidad actual; cero si el producto nunca
// tuvo stock en esa sucursal (no es error).
func (l *Ledger) ConsultarStock(ctx context.Context, productoID, sucursalID string) (decimal.Decimal, error) {
	s, err := l.stockRepo.Get(productoID, sucursalID)
	if err != nil {
		return decimal.Zero, err
	}
	return s.Cantidad, nil
}

// ListarStock stock de una sucursal, paginado.
func (l *Ledger) ListarStock(ctx context.Context, sucursalID string, limit, offset int) ([]*entity.StockSucursal, error) {
	return l.stockRepo.ListBySucursal(sucursalID, limit, offset)
}

// ListarStockBajo filas en o bajo su cantidad mínima.
func (l *Ledger) ListarStockBajo(ctx context.Context, sucursalID string) ([]*entity.StockSucursal, error) {
	return l.stockRepo.ListBajoMinimo(sucursalID)
}

// ListarMovimientos log de auditoría por sucursal.
func (l *Ledger) ListarMovimientos(ctx context.Context, sucursalID string, desde, hasta *time.Time, limit, offset int) ([]*entity.MovimientoStock, error) {
	return l.movRepo.ListBySucursal(sucursalID, desde, hasta, limit, offset)
}

// AplicarDelta aplica un delta en su propia transacción.
func (l *Ledger) AplicarDelta(ctx context.Context, delta DeltaStock) error {
	return l.txRunner.Run(ctx, func(stockRepo repository.StockRepository, movRepo repository.MovimientoStockRepository) error {
		return AplicarDeltaEnTx(stockRepo, movRepo, delta, time.Now())
	})
}

// AplicarDeltaEnTx aplica un delta usando repositorios ya atados a la
// transacción del caller. La validación ocurre aquí dentro, bajo el
// bloqueo de fila (SELECT FOR UPDATE): dos operaciones concurrentes sobre
// el mismo (producto, sucursal) se serializan y la segunda revalida contra
// la cantidad ya confirmada, no contra una lectura previa.
func AplicarDeltaEnTx(
	stockRepo repository.StockRepository,
	movRepo repository.MovimientoStockRepository,
	delta DeltaStock,
	now time.Time,
) error {
	if delta.ProductoID == "" || delta.SucursalID == "" || delta.Cantidad.IsZero() {
		return domain.ErrEntradaInvalida
	}

	actual, err := stockRepo.GetForUpdate(delta.ProductoID, delta.SucursalID)
	if err != nil {
		return err
	}
	nueva := actual.Cantidad.Add(delta.Cantidad)
	if nueva.IsNegative() {
		return &domain.StockInsuficienteError{
			ProductoID: delta.ProductoID,
			Disponible: actual.Cantidad,
			Solicitado: delta.Cantidad.Neg(),
		}
	}

	actual.Cantidad = nueva
	actual.UpdatedAt = now
	if err := stockRepo.Upsert(actual); err != nil {
		return err
	}

	tipo := entity.MovimientoEntrada
	if delta.Cantidad.IsNegative() {
		tipo = entity.MovimientoSalida
	}
	mov := &entity.MovimientoStock{
		ID:             uuid.New().String(),
		SucursalID:     delta.SucursalID,
		ProductoID:     delta.ProductoID,
		Tipo:           tipo,
		Cantidad:       delta.Cantidad.Abs(),
		Motivo:         delta.Motivo,
		ReferenciaTipo: delta.ReferenciaTipo,
		ReferenciaID:   delta.ReferenciaID,
		ActorID:        delta.ActorID,
		CreatedAt:      now,
	}
	return movRepo.Create(mov)
}
