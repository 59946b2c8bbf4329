package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-backoffice/internal/application/auth"
	"github.com/tu-usuario/pos-backoffice/internal/application/compras"
	"github.com/tu-usuario/pos-backoffice/internal/application/stock"
	"github.com/tu-usuario/pos-backoffice/internal/application/usecase"
	"github.com/tu-usuario/pos-backoffice/internal/application/ventas"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	VentasUC    *ventas.UseCase
	ComprasUC   *compras.UseCase
	Ledger      *stock.Ledger
	ProductoUC  *usecase.ProductoUseCase
	CategoriaUC *usecase.CategoriaUseCase
	ProveedorUC *usecase.ProveedorUseCase
	ClienteUC   *usecase.ClienteUseCase
	SucursalUC  *usecase.SucursalUseCase
	VehiculoUC  *usecase.VehiculoUseCase
	CajaUC      *usecase.CajaUseCase
	AuthUC      *auth.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Perfil)

	// Ventas (protegido). Las rutas fijas van antes de /:id.
	ventasGroup := protected.Group("/ventas")
	ventaHandler := NewVentaHandler(deps.VentasUC)
	ventasGroup.Get("/buscar", ventaHandler.Buscar)
	ventasGroup.Get("/estadisticas/dia", ventaHandler.EstadisticasDia)
	ventasGroup.Get("/eliminadas", ventaHandler.ListarEliminadas)
	ventasGroup.Post("/", ventaHandler.Crear)
	ventasGroup.Get("/", ventaHandler.Listar)
	ventasGroup.Get("/:id", ventaHandler.Obtener)
	ventasGroup.Put("/:id", ventaHandler.EditarItems)
	ventasGroup.Delete("/:id", ventaHandler.Eliminar)
	ventasGroup.Post("/:id/pagos", ventaHandler.RegistrarPago)
	ventasGroup.Patch("/:id/estado", ventaHandler.CambiarEstado)
	ventasGroup.Post("/:id/devolucion-parcial", ventaHandler.DevolucionParcial)

	// Compras (protegido)
	comprasGroup := protected.Group("/compras")
	compraHandler := NewCompraHandler(deps.ComprasUC)
	comprasGroup.Get("/filtrar", compraHandler.Filtrar)
	comprasGroup.Post("/", compraHandler.Crear)
	comprasGroup.Get("/", compraHandler.Listar)
	comprasGroup.Get("/:id", compraHandler.Obtener)
	comprasGroup.Put("/:id", compraHandler.Actualizar)
	comprasGroup.Patch("/:id", compraHandler.Actualizar)
	comprasGroup.Delete("/:id", compraHandler.Eliminar)
	comprasGroup.Patch("/:id/recibir", compraHandler.Recibir)
	comprasGroup.Patch("/:id/estado", compraHandler.CambiarEstado)

	// Stock y movimientos (protegido)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.Ledger)
	stockGroup.Get("/", stockHandler.Listar)
	stockGroup.Get("/bajo", stockHandler.ListarBajo)
	stockGroup.Get("/movimientos", stockHandler.Movimientos)

	// Catálogo (protegido)
	productos := protected.Group("/productos")
	productoHandler := NewProductoHandler(deps.ProductoUC)
	productos.Post("/", productoHandler.Crear)
	productos.Get("/", productoHandler.Listar)
	productos.Get("/:id", productoHandler.Obtener)
	productos.Put("/:id", productoHandler.Actualizar)
	productos.Delete("/:id", productoHandler.Eliminar)

	categorias := protected.Group("/categorias")
	categoriaHandler := NewCategoriaHandler(deps.CategoriaUC)
	categorias.Post("/", categoriaHandler.Crear)
	categorias.Get("/", categoriaHandler.Listar)
	categorias.Get("/:id", categoriaHandler.Obtener)
	categorias.Put("/:id", categoriaHandler.Actualizar)
	categorias.Delete("/:id", categoriaHandler.Eliminar)

	proveedores := protected.Group("/proveedores")
	proveedorHandler := NewProveedorHandler(deps.ProveedorUC)
	proveedores.Post("/", proveedorHandler.Crear)
	proveedores.Get("/", proveedorHandler.Listar)
	proveedores.Get("/:id", proveedorHandler.Obtener)
	proveedores.Put("/:id", proveedorHandler.Actualizar)
	proveedores.Delete("/:id", proveedorHandler.Eliminar)

	clientes := protected.Group("/clientes")
	clienteHandler := NewClienteHandler(deps.ClienteUC)
	clientes.Post("/", clienteHandler.Crear)
	clientes.Get("/", clienteHandler.Listar)
	clientes.Get("/:id", clienteHandler.Obtener)
	clientes.Put("/:id", clienteHandler.Actualizar)
	clientes.Delete("/:id", clienteHandler.Eliminar)

	sucursales := protected.Group("/sucursales")
	sucursalHandler := NewSucursalHandler(deps.SucursalUC)
	sucursales.Post("/", sucursalHandler.Crear)
	sucursales.Get("/", sucursalHandler.Listar)
	sucursales.Get("/:id", sucursalHandler.Obtener)
	sucursales.Put("/:id", sucursalHandler.Actualizar)
	sucursales.Delete("/:id", sucursalHandler.Eliminar)

	// Flota (protegido)
	vehiculos := protected.Group("/vehiculos")
	vehiculoHandler := NewVehiculoHandler(deps.VehiculoUC)
	vehiculos.Post("/", vehiculoHandler.Crear)
	vehiculos.Get("/", vehiculoHandler.Listar)
	vehiculos.Get("/:id", vehiculoHandler.Obtener)
	vehiculos.Put("/:id", vehiculoHandler.Actualizar)
	vehiculos.Delete("/:id", vehiculoHandler.Eliminar)
	vehiculos.Post("/:id/gastos", vehiculoHandler.RegistrarGasto)
	vehiculos.Get("/:id/gastos", vehiculoHandler.ListarGastos)

	// Caja (protegido)
	caja := protected.Group("/caja")
	cajaHandler := NewCajaHandler(deps.CajaUC)
	caja.Post("/", cajaHandler.Registrar)
	caja.Get("/dia", cajaHandler.Dia)
}
