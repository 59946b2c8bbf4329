package stock_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-backoffice/internal/application/stock"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

func claveStock(productoID, sucursalID string) string {
	return productoID + "|" + sucursalID
}

type fakeStockRepo struct {
	filas map[string]*entity.StockSucursal
}

func (f *fakeStockRepo) Get(productoID, sucursalID string) (*entity.StockSucursal, error) {
	if fila, ok := f.filas[claveStock(productoID, sucursalID)]; ok {
		c := *fila
		return &c, nil
	}
	return &entity.StockSucursal{ProductoID: productoID, SucursalID: sucursalID}, nil
}

func (f *fakeStockRepo) GetForUpdate(productoID, sucursalID string) (*entity.StockSucursal, error) {
	return f.Get(productoID, sucursalID)
}

func (f *fakeStockRepo) Upsert(s *entity.StockSucursal) error {
	c := *s
	f.filas[claveStock(s.ProductoID, s.SucursalID)] = &c
	return nil
}

func (f *fakeStockRepo) ListBySucursal(sucursalID string, limit, offset int) ([]*entity.StockSucursal, error) {
	var out []*entity.StockSucursal
	for _, fila := range f.filas {
		if fila.SucursalID == sucursalID {
			c := *fila
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *fakeStockRepo) ListBajoMinimo(sucursalID string) ([]*entity.StockSucursal, error) {
	var out []*entity.StockSucursal
	for _, fila := range f.filas {
		if fila.SucursalID == sucursalID && fila.BajoMinimo() {
			c := *fila
			out = append(out, &c)
		}
	}
	return out, nil
}

type fakeMovRepo struct {
	movs []*entity.MovimientoStock
}

func (f *fakeMovRepo) Create(mov *entity.MovimientoStock) error {
	c := *mov
	f.movs = append(f.movs, &c)
	return nil
}

func (f *fakeMovRepo) ListBySucursal(sucursalID string, desde, hasta *time.Time, limit, offset int) ([]*entity.MovimientoStock, error) {
	return f.movs, nil
}

func (f *fakeMovRepo) ListByProducto(productoID string, desde, hasta *time.Time, limit, offset int) ([]*entity.MovimientoStock, error) {
	return f.movs, nil
}

type fakeRunner struct {
	stockRepo *fakeStockRepo
	movRepo   *fakeMovRepo
}

func (r *fakeRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.MovimientoStockRepository,
) error) error {
	return fn(r.stockRepo, r.movRepo)
}

func nuevoLedger() (*stock.Ledger, *fakeStockRepo, *fakeMovRepo) {
	stockRepo := &fakeStockRepo{filas: map[string]*entity.StockSucursal{}}
	movRepo := &fakeMovRepo{}
	runner := &fakeRunner{stockRepo: stockRepo, movRepo: movRepo}
	return stock.NewLedger(runner, stockRepo, movRepo), stockRepo, movRepo
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Una entrada crea la fila si no existe y deja su movimiento de auditoría.
func TestAplicarDelta_Entrada(t *testing.T) {
	ledger, stockRepo, movRepo := nuevoLedger()

	err := ledger.AplicarDelta(context.Background(), stock.DeltaStock{
		ProductoID:     "prod-a",
		SucursalID:     "suc-1",
		Cantidad:       dec("5"),
		Motivo:         entity.MotivoRecepcionCompra,
		ReferenciaTipo: entity.ReferenciaCompra,
		ReferenciaID:   "compra-1",
		ActorID:        "user-1",
	})
	require.NoError(t, err)

	fila, _ := stockRepo.Get("prod-a", "suc-1")
	assert.True(t, fila.Cantidad.Equal(dec("5")))

	require.Len(t, movRepo.movs, 1)
	mov := movRepo.movs[0]
	assert.Equal(t, entity.MovimientoEntrada, mov.Tipo)
	assert.True(t, mov.Cantidad.Equal(dec("5")), "la cantidad del movimiento siempre es positiva")
	assert.Equal(t, "compra-1", mov.ReferenciaID)
	assert.NotEmpty(t, mov.ID)
}

// Una salida que dejaría el contador negativo se rechaza completa.
func TestAplicarDelta_SalidaInsuficiente(t *testing.T) {
	ledger, stockRepo, movRepo := nuevoLedger()
	stockRepo.filas[claveStock("prod-a", "suc-1")] = &entity.StockSucursal{
		ProductoID: "prod-a", SucursalID: "suc-1", Cantidad: dec("3"),
	}

	err := ledger.AplicarDelta(context.Background(), stock.DeltaStock{
		ProductoID: "prod-a",
		SucursalID: "suc-1",
		Cantidad:   dec("-5"),
		Motivo:     entity.MotivoVenta,
	})

	var stockErr *domain.StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.True(t, stockErr.Disponible.Equal(dec("3")))
	assert.True(t, stockErr.Solicitado.Equal(dec("5")), "el solicitado se reporta en positivo")

	fila, _ := stockRepo.Get("prod-a", "suc-1")
	assert.True(t, fila.Cantidad.Equal(dec("3")), "el contador no debe moverse")
	assert.Empty(t, movRepo.movs, "el rechazo no deja movimiento")
}

// Consumir exactamente el disponible deja el contador en cero.
func TestAplicarDelta_SalidaExacta(t *testing.T) {
	ledger, stockRepo, movRepo := nuevoLedger()
	stockRepo.filas[claveStock("prod-a", "suc-1")] = &entity.StockSucursal{
		ProductoID: "prod-a", SucursalID: "suc-1", Cantidad: dec("5"),
	}

	err := ledger.AplicarDelta(context.Background(), stock.DeltaStock{
		ProductoID: "prod-a",
		SucursalID: "suc-1",
		Cantidad:   dec("-5"),
		Motivo:     entity.MotivoVenta,
	})
	require.NoError(t, err)

	cantidad, err := ledger.ConsultarStock(context.Background(), "prod-a", "suc-1")
	require.NoError(t, err)
	assert.True(t, cantidad.IsZero())
	require.Len(t, movRepo.movs, 1)
	assert.Equal(t, entity.MovimientoSalida, movRepo.movs[0].Tipo)
}

// Delta cero o incompleto es entrada inválida.
func TestAplicarDelta_EntradaInvalida(t *testing.T) {
	ledger, _, _ := nuevoLedger()

	err := ledger.AplicarDelta(context.Background(), stock.DeltaStock{
		ProductoID: "prod-a",
		SucursalID: "suc-1",
		Cantidad:   decimal.Zero,
	})
	assert.True(t, errors.Is(err, domain.ErrEntradaInvalida))

	err = ledger.AplicarDelta(context.Background(), stock.DeltaStock{
		SucursalID: "suc-1",
		Cantidad:   dec("1"),
	})
	assert.True(t, errors.Is(err, domain.ErrEntradaInvalida))
}

// Consultar un producto sin fila devuelve cero, no error.
func TestConsultarStock_SinFila(t *testing.T) {
	ledger, _, _ := nuevoLedger()

	cantidad, err := ledger.ConsultarStock(context.Background(), "prod-x", "suc-1")
	require.NoError(t, err)
	assert.True(t, cantidad.IsZero())
}

// El listado bajo mínimo solo incluye filas con umbral configurado.
func TestListarStockBajo(t *testing.T) {
	ledger, stockRepo, _ := nuevoLedger()
	stockRepo.filas[claveStock("prod-a", "suc-1")] = &entity.StockSucursal{
		ProductoID: "prod-a", SucursalID: "suc-1", Cantidad: dec("2"), CantidadMinima: dec("5"),
	}
	stockRepo.filas[claveStock("prod-b", "suc-1")] = &entity.StockSucursal{
		ProductoID: "prod-b", SucursalID: "suc-1", Cantidad: dec("0"),
	}

	bajos, err := ledger.ListarStockBajo(context.Background(), "suc-1")
	require.NoError(t, err)
	require.Len(t, bajos, 1, "sin umbral configurado la fila no cuenta como baja")
	assert.Equal(t, "prod-a", bajos[0].ProductoID)
}
