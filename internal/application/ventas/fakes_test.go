package ventas_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-backoffice/internal/application/historial"
	"github.com/tu-usuario/pos-backoffice/internal/application/ventas"
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
	// bloqueos registra el orden de llamadas a GetForUpdate.
	bloqueos []string
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{filas: map[string]*entity.StockSucursal{}}
}

func (f *fakeStockRepo) fijar(productoID, sucursalID string, cantidad decimal.Decimal) {
	f.filas[claveStock(productoID, sucursalID)] = &entity.StockSucursal{
		ProductoID: productoID,
		SucursalID: sucursalID,
		Cantidad:   cantidad,
	}
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
	f.bloqueos = append(f.bloqueos, productoID)
	return f.Get(productoID, sucursalID)
}

func (f *fakeStockRepo) Upsert(stock *entity.StockSucursal) error {
	c := *stock
	f.filas[claveStock(stock.ProductoID, stock.SucursalID)] = &c
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

func (f *fakeStockRepo) snapshot() map[string]*entity.StockSucursal {
	out := make(map[string]*entity.StockSucursal, len(f.filas))
	for k, v := range f.filas {
		c := *v
		out[k] = &c
	}
	return out
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

type fakeVentaRepo struct {
	ventas map[string]*entity.Venta
}

func newFakeVentaRepo() *fakeVentaRepo {
	return &fakeVentaRepo{ventas: map[string]*entity.Venta{}}
}

func copiarVenta(v *entity.Venta) *entity.Venta {
	c := *v
	c.Items = make([]entity.ItemVenta, len(v.Items))
	copy(c.Items, v.Items)
	return &c
}

func (f *fakeVentaRepo) Create(venta *entity.Venta) error {
	f.ventas[venta.ID] = copiarVenta(venta)
	return nil
}

func (f *fakeVentaRepo) GetByID(id string) (*entity.Venta, error) {
	if v, ok := f.ventas[id]; ok {
		return copiarVenta(v), nil
	}
	return nil, nil
}

func (f *fakeVentaRepo) GetForUpdate(id string) (*entity.Venta, error) {
	return f.GetByID(id)
}

func (f *fakeVentaRepo) Update(venta *entity.Venta) error {
	guardada, ok := f.ventas[venta.ID]
	if !ok {
		return nil
	}
	items := guardada.Items
	f.ventas[venta.ID] = copiarVenta(venta)
	f.ventas[venta.ID].Items = items
	return nil
}

func (f *fakeVentaRepo) ReplaceItems(ventaID string, items []entity.ItemVenta) error {
	if v, ok := f.ventas[ventaID]; ok {
		v.Items = make([]entity.ItemVenta, len(items))
		copy(v.Items, items)
	}
	return nil
}

func (f *fakeVentaRepo) List(filtro repository.FiltroVentas) ([]*entity.Venta, error) {
	var out []*entity.Venta
	for _, v := range f.ventas {
		if !v.Eliminada {
			out = append(out, copiarVenta(v))
		}
	}
	return out, nil
}

func (f *fakeVentaRepo) ListEliminadas(limit, offset int) ([]*entity.Venta, error) {
	var out []*entity.Venta
	for _, v := range f.ventas {
		if v.Eliminada {
			out = append(out, copiarVenta(v))
		}
	}
	return out, nil
}

func (f *fakeVentaRepo) Buscar(q string, limit int) ([]*entity.Venta, error) {
	return nil, nil
}

func (f *fakeVentaRepo) SoftDelete(id string) error {
	if v, ok := f.ventas[id]; ok {
		v.Eliminada = true
	}
	return nil
}

func (f *fakeVentaRepo) ResumenDia(fecha time.Time) (*entity.ResumenDiaVentas, error) {
	return &entity.ResumenDiaVentas{Fecha: fecha, VentasPorEstado: map[string]int{}}, nil
}

func (f *fakeVentaRepo) snapshot() map[string]*entity.Venta {
	out := make(map[string]*entity.Venta, len(f.ventas))
	for k, v := range f.ventas {
		out[k] = copiarVenta(v)
	}
	return out
}

type fakeClienteRepo struct {
	clientes map[string]*entity.Cliente
}

func (f *fakeClienteRepo) Create(c *entity.Cliente) error { f.clientes[c.ID] = c; return nil }

func (f *fakeClienteRepo) GetByID(id string) (*entity.Cliente, error) {
	return f.clientes[id], nil
}

func (f *fakeClienteRepo) ListByIDs(ids []string) ([]*entity.Cliente, error) {
	var out []*entity.Cliente
	for _, id := range ids {
		if c, ok := f.clientes[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeClienteRepo) Update(c *entity.Cliente) error { return nil }

func (f *fakeClienteRepo) List(limit, offset int) ([]*entity.Cliente, error) { return nil, nil }

func (f *fakeClienteRepo) Delete(id string) error { return nil }

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

type fakePublicador struct {
	eventos []historial.Evento
}

func (f *fakePublicador) Publicar(ev historial.Evento) {
	f.eventos = append(f.eventos, ev)
}

// fakeRunner emula la transacción: si fn falla, restaura stock y ventas
// al estado previo, como haría el rollback real.
type fakeRunner struct {
	stock  *fakeStockRepo
	movs   *fakeMovRepo
	ventas *fakeVentaRepo
}

func (r *fakeRunner) RunVenta(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.MovimientoStockRepository,
	ventaRepo repository.VentaRepository,
) error) error {
	stockAntes := r.stock.snapshot()
	movsAntes := len(r.movs.movs)
	ventasAntes := r.ventas.snapshot()
	if err := fn(r.stock, r.movs, r.ventas); err != nil {
		r.stock.filas = stockAntes
		r.movs.movs = r.movs.movs[:movsAntes]
		r.ventas.ventas = ventasAntes
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Entorno de prueba
// ──────────────────────────────────────────────────────────────────────────────

type entorno struct {
	uc        *ventas.UseCase
	stock     *fakeStockRepo
	movs      *fakeMovRepo
	ventas    *fakeVentaRepo
	clientes  *fakeClienteRepo
	productos *fakeProductoRepo
	pub       *fakePublicador
}

func nuevoEntorno() *entorno {
	e := &entorno{
		stock:     newFakeStockRepo(),
		movs:      &fakeMovRepo{},
		ventas:    newFakeVentaRepo(),
		clientes:  &fakeClienteRepo{clientes: map[string]*entity.Cliente{}},
		productos: &fakeProductoRepo{productos: map[string]*entity.Producto{}},
		pub:       &fakePublicador{},
	}
	runner := &fakeRunner{stock: e.stock, movs: e.movs, ventas: e.ventas}
	e.uc = ventas.NewUseCase(runner, e.ventas, e.clientes, e.productos, e.pub)
	return e
}

func (e *entorno) conProducto(id, nombre string, precio decimal.Decimal) *entorno {
	e.productos.productos[id] = &entity.Producto{ID: id, Nombre: nombre, Precio: precio, Activo: true}
	return e
}

func (e *entorno) conVenta(v *entity.Venta) *entorno {
	e.ventas.ventas[v.ID] = copiarVenta(v)
	return e
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
