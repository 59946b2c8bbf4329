package compras_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-backoffice/internal/application/compras"
	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

func claveStock(productoID, sucursalID string) string {
	return productoID + "|" + sucursalID
}

type fakeStockRepo struct {
	filas map[string]*entity.StockSucursal
}

func (f *fakeStockRepo) cantidad(productoID, sucursalID string) decimal.Decimal {
	if fila, ok := f.filas[claveStock(productoID, sucursalID)]; ok {
		return fila.Cantidad
	}
	return decimal.Zero
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

func (f *fakeStockRepo) Upsert(stock *entity.StockSucursal) error {
	c := *stock
	f.filas[claveStock(stock.ProductoID, stock.SucursalID)] = &c
	return nil
}

func (f *fakeStockRepo) ListBySucursal(sucursalID string, limit, offset int) ([]*entity.StockSucursal, error) {
	return nil, nil
}

func (f *fakeStockRepo) ListBajoMinimo(sucursalID string) ([]*entity.StockSucursal, error) {
	return nil, nil
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

type fakeCompraRepo struct {
	compras map[string]*entity.Compra
}

func copiarCompra(c *entity.Compra) *entity.Compra {
	cc := *c
	cc.Items = make([]entity.ItemCompra, len(c.Items))
	copy(cc.Items, c.Items)
	if c.FechaRecepcion != nil {
		f := *c.FechaRecepcion
		cc.FechaRecepcion = &f
	}
	return &cc
}

func (f *fakeCompraRepo) Create(compra *entity.Compra) error {
	f.compras[compra.ID] = copiarCompra(compra)
	return nil
}

func (f *fakeCompraRepo) GetByID(id string) (*entity.Compra, error) {
	if c, ok := f.compras[id]; ok {
		return copiarCompra(c), nil
	}
	return nil, nil
}

func (f *fakeCompraRepo) GetForUpdate(id string) (*entity.Compra, error) {
	return f.GetByID(id)
}

func (f *fakeCompraRepo) Update(compra *entity.Compra) error {
	f.compras[compra.ID] = copiarCompra(compra)
	return nil
}

func (f *fakeCompraRepo) ReplaceItems(compraID string, items []entity.ItemCompra) error {
	if c, ok := f.compras[compraID]; ok {
		c.Items = make([]entity.ItemCompra, len(items))
		copy(c.Items, items)
	}
	return nil
}

func (f *fakeCompraRepo) List(limit, offset int) ([]*entity.Compra, error) { return nil, nil }

func (f *fakeCompraRepo) Filtrar(filtro repository.FiltroCompras) ([]*entity.Compra, error) {
	return nil, nil
}

func (f *fakeCompraRepo) Delete(id string) error {
	delete(f.compras, id)
	return nil
}

type fakeProveedorRepo struct {
	proveedores map[string]*entity.Proveedor
}

func (f *fakeProveedorRepo) Create(p *entity.Proveedor) error { f.proveedores[p.ID] = p; return nil }

func (f *fakeProveedorRepo) GetByID(id string) (*entity.Proveedor, error) {
	return f.proveedores[id], nil
}

func (f *fakeProveedorRepo) ListByIDs(ids []string) ([]*entity.Proveedor, error) {
	var out []*entity.Proveedor
	for _, id := range ids {
		if p, ok := f.proveedores[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProveedorRepo) Update(p *entity.Proveedor) error { return nil }

func (f *fakeProveedorRepo) List(limit, offset int) ([]*entity.Proveedor, error) { return nil, nil }

func (f *fakeProveedorRepo) Delete(id string) error { return nil }

type fakeProductoRepo struct {
	productos map[string]*entity.Producto
}

func (f *fakeProductoRepo) Create(p *entity.Producto) error { f.productos[p.ID] = p; return nil }

func (f *fakeProductoRepo) GetByID(id string) (*entity.Producto, error) {
	return f.productos[id], nil
}

func (f *fakeProductoRepo) ListByIDs(ids []string) ([]*entity.Producto, error) {
	var out []*entity.Producto
	for _, id := range ids {
		if p, ok := f.productos[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductoRepo) Update(p *entity.Producto) error { return nil }

func (f *fakeProductoRepo) List(limit, offset int) ([]*entity.Producto, error) { return nil, nil }

func (f *fakeProductoRepo) Delete(id string) error { return nil }

type fakeSucursalRepo struct {
	sucursales map[string]*entity.Sucursal
}

func (f *fakeSucursalRepo) Create(s *entity.Sucursal) error { f.sucursales[s.ID] = s; return nil }

func (f *fakeSucursalRepo) GetByID(id string) (*entity.Sucursal, error) {
	return f.sucursales[id], nil
}

func (f *fakeSucursalRepo) GetPrincipal() (*entity.Sucursal, error) {
	for _, s := range f.sucursales {
		if s.Principal {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSucursalRepo) Update(s *entity.Sucursal) error { return nil }

func (f *fakeSucursalRepo) List(limit, offset int) ([]*entity.Sucursal, error) { return nil, nil }

func (f *fakeSucursalRepo) Delete(id string) error { return nil }

// fakeRunner emula la transacción: si fn falla, restaura stock y compras
// al estado previo, como haría el rollback real.
type fakeRunner struct {
	stock   *fakeStockRepo
	movs    *fakeMovRepo
	compras *fakeCompraRepo
}

func (r *fakeRunner) RunCompra(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.MovimientoStockRepository,
	compraRepo repository.CompraRepository,
) error) error {
	stockAntes := make(map[string]*entity.StockSucursal, len(r.stock.filas))
	for k, v := range r.stock.filas {
		c := *v
		stockAntes[k] = &c
	}
	movsAntes := len(r.movs.movs)
	comprasAntes := make(map[string]*entity.Compra, len(r.compras.compras))
	for k, v := range r.compras.compras {
		comprasAntes[k] = copiarCompra(v)
	}
	if err := fn(r.stock, r.movs, r.compras); err != nil {
		r.stock.filas = stockAntes
		r.movs.movs = r.movs.movs[:movsAntes]
		r.compras.compras = comprasAntes
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Entorno de prueba
// ──────────────────────────────────────────────────────────────────────────────

type entorno struct {
	uc         *compras.UseCase
	stock      *fakeStockRepo
	movs       *fakeMovRepo
	compras    *fakeCompraRepo
	sucursales *fakeSucursalRepo
}

func nuevoEntorno() *entorno {
	e := &entorno{
		stock:      &fakeStockRepo{filas: map[string]*entity.StockSucursal{}},
		movs:       &fakeMovRepo{},
		compras:    &fakeCompraRepo{compras: map[string]*entity.Compra{}},
		sucursales: &fakeSucursalRepo{sucursales: map[string]*entity.Sucursal{}},
	}
	proveedores := &fakeProveedorRepo{proveedores: map[string]*entity.Proveedor{
		"prov-1": {ID: "prov-1", Nombre: "Distribuidora Sur", Activo: true},
	}}
	productos := &fakeProductoRepo{productos: map[string]*entity.Producto{
		"prod-a": {ID: "prod-a", Nombre: "Aceite 1L", Precio: dec("80"), Activo: true},
		"prod-b": {ID: "prod-b", Nombre: "Filtro", Precio: dec("30"), Activo: true},
	}}
	runner := &fakeRunner{stock: e.stock, movs: e.movs, compras: e.compras}
	e.uc = compras.NewUseCase(runner, e.compras, proveedores, productos, e.sucursales)
	return e
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func compraPendiente(sucursalID string) *entity.Compra {
	now := time.Now()
	return &entity.Compra{
		ID:          "compra-1",
		ProveedorID: "prov-1",
		SucursalID:  sucursalID,
		Items: []entity.ItemCompra{
			{ProductoID: "prod-b", Cantidad: dec("2"), PrecioUnitario: dec("30"), Subtotal: dec("60")},
			{ProductoID: "prod-a", Cantidad: dec("5"), PrecioUnitario: dec("80"), Subtotal: dec("400")},
		},
		Total:     dec("460"),
		Estado:    entity.EstadoCompraPendiente,
		CreadaPor: "user-1",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func ctxTest() dto.ContextoSolicitud {
	return dto.ContextoSolicitud{ActorID: "user-1", SucursalID: "suc-1"}
}

// ──────────────────────────────────────────────────────────────────────────────
// Recibir
// ──────────────────────────────────────────────────────────────────────────────

// La recepción acredita el stock de cada línea y marca la compra recibida.
func TestRecibir_AcreditaStock(t *testing.T) {
	e := nuevoEntorno()
	e.compras.compras["compra-1"] = compraPendiente("suc-1")
	e.stock.filas[claveStock("prod-a", "suc-1")] = &entity.StockSucursal{
		ProductoID: "prod-a", SucursalID: "suc-1", Cantidad: dec("3"),
	}

	resp, err := e.uc.Recibir(context.Background(), ctxTest(), "compra-1")
	require.NoError(t, err)

	assert.Equal(t, entity.EstadoCompraRecibida, resp.Estado)
	assert.NotNil(t, resp.FechaRecepcion, "la recepción queda fechada")
	assert.True(t, e.stock.cantidad("prod-a", "suc-1").Equal(dec("8")), "3 existentes + 5 recibidos")
	assert.True(t, e.stock.cantidad("prod-b", "suc-1").Equal(dec("2")), "producto sin fila previa arranca de cero")

	require.Len(t, e.movs.movs, 2, "un movimiento de entrada por línea")
	for _, mov := range e.movs.movs {
		assert.Equal(t, entity.MovimientoEntrada, mov.Tipo)
		assert.Equal(t, entity.MotivoRecepcionCompra, mov.Motivo)
		assert.Equal(t, entity.ReferenciaCompra, mov.ReferenciaTipo)
		assert.Equal(t, "compra-1", mov.ReferenciaID)
	}
	// Bloqueo en orden estable por producto.
	assert.Equal(t, "prod-a", e.movs.movs[0].ProductoID)
	assert.Equal(t, "prod-b", e.movs.movs[1].ProductoID)
}

// La segunda recepción no vuelve a acreditar: el stock se acredita
// exactamente una vez por compra.
func TestRecibir_DobleRecepcionRechazada(t *testing.T) {
	e := nuevoEntorno()
	e.compras.compras["compra-1"] = compraPendiente("suc-1")

	_, err := e.uc.Recibir(context.Background(), ctxTest(), "compra-1")
	require.NoError(t, err)
	movsTrasPrimera := len(e.movs.movs)

	_, err = e.uc.Recibir(context.Background(), ctxTest(), "compra-1")
	assert.True(t, errors.Is(err, domain.ErrCompraYaProcesada))

	assert.True(t, e.stock.cantidad("prod-a", "suc-1").Equal(dec("5")), "el stock no debe duplicarse")
	assert.Len(t, e.movs.movs, movsTrasPrimera, "la recepción rechazada no genera movimientos")
}

// Compra sin sucursal propia cae en la sucursal principal.
func TestRecibir_SinSucursalUsaPrincipal(t *testing.T) {
	e := nuevoEntorno()
	e.sucursales.sucursales["suc-main"] = &entity.Sucursal{ID: "suc-main", Nombre: "Casa matriz", Principal: true}
	e.compras.compras["compra-1"] = compraPendiente("")

	resp, err := e.uc.Recibir(context.Background(), ctxTest(), "compra-1")
	require.NoError(t, err)

	assert.Equal(t, "suc-main", resp.SucursalID, "la compra queda asociada a la principal")
	assert.True(t, e.stock.cantidad("prod-a", "suc-main").Equal(dec("5")))
}

// Sin sucursal propia ni principal no hay dónde acreditar.
func TestRecibir_SinSucursalNiPrincipal(t *testing.T) {
	e := nuevoEntorno()
	e.compras.compras["compra-1"] = compraPendiente("")

	_, err := e.uc.Recibir(context.Background(), ctxTest(), "compra-1")
	assert.True(t, errors.Is(err, domain.ErrSinSucursal))
	assert.Empty(t, e.movs.movs)
}

// Una compra cancelada no puede recibirse.
func TestRecibir_CompraCancelada(t *testing.T) {
	e := nuevoEntorno()
	compra := compraPendiente("suc-1")
	compra.Estado = entity.EstadoCompraCancelada
	e.compras.compras["compra-1"] = compra

	_, err := e.uc.Recibir(context.Background(), ctxTest(), "compra-1")
	var estadoErr *domain.EstadoInvalidoError
	assert.ErrorAs(t, err, &estadoErr)
}

func TestRecibir_CompraInexistente(t *testing.T) {
	e := nuevoEntorno()

	_, err := e.uc.Recibir(context.Background(), ctxTest(), "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNoEncontrado))
}

// ──────────────────────────────────────────────────────────────────────────────
// CambiarEstado / Eliminar
// ──────────────────────────────────────────────────────────────────────────────

// recibida -> completada es administrativa, sin efecto sobre stock.
func TestCambiarEstado_RecibidaACompletada(t *testing.T) {
	e := nuevoEntorno()
	e.compras.compras["compra-1"] = compraPendiente("suc-1")
	_, err := e.uc.Recibir(context.Background(), ctxTest(), "compra-1")
	require.NoError(t, err)
	movsTrasRecepcion := len(e.movs.movs)

	resp, err := e.uc.CambiarEstado(context.Background(), "compra-1", entity.EstadoCompraCompletada)
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoCompraCompletada, resp.Estado)
	assert.Len(t, e.movs.movs, movsTrasRecepcion)
}

// La transición a recibida solo pasa por Recibir.
func TestCambiarEstado_ARecibidaRechazada(t *testing.T) {
	e := nuevoEntorno()
	e.compras.compras["compra-1"] = compraPendiente("suc-1")

	_, err := e.uc.CambiarEstado(context.Background(), "compra-1", entity.EstadoCompraRecibida)
	var estadoErr *domain.EstadoInvalidoError
	assert.ErrorAs(t, err, &estadoErr)
}

// Una compra recibida ya acreditó stock: no se elimina.
func TestEliminar_CompraRecibidaRechazada(t *testing.T) {
	e := nuevoEntorno()
	e.compras.compras["compra-1"] = compraPendiente("suc-1")
	_, err := e.uc.Recibir(context.Background(), ctxTest(), "compra-1")
	require.NoError(t, err)

	err = e.uc.Eliminar(context.Background(), "compra-1")
	var estadoErr *domain.EstadoInvalidoError
	assert.ErrorAs(t, err, &estadoErr)
}

func TestEliminar_CompraPendiente(t *testing.T) {
	e := nuevoEntorno()
	e.compras.compras["compra-1"] = compraPendiente("suc-1")

	require.NoError(t, e.uc.Eliminar(context.Background(), "compra-1"))
	compra, _ := e.compras.GetByID("compra-1")
	assert.Nil(t, compra)
}
