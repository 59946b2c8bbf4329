package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/pos-backoffice/internal/application/auth"
	"github.com/tu-usuario/pos-backoffice/internal/application/compras"
	"github.com/tu-usuario/pos-backoffice/internal/application/historial"
	"github.com/tu-usuario/pos-backoffice/internal/application/stock"
	"github.com/tu-usuario/pos-backoffice/internal/application/usecase"
	"github.com/tu-usuario/pos-backoffice/internal/application/ventas"
	"github.com/tu-usuario/pos-backoffice/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/pos-backoffice/internal/interfaces/http"
	"github.com/tu-usuario/pos-backoffice/pkg/config"
	"github.com/tu-usuario/pos-backoffice/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("error cargando configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudo conectar a PostgreSQL")
	}
	defer pool.Close()

	log.Info().Msg("conexión a PostgreSQL establecida")

	// ── Repositorios ──────────────────────────────────────────────
	ventaRepo := postgres.NewVentaRepository(pool)
	compraRepo := postgres.NewCompraRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movRepo := postgres.NewMovimientoStockRepository(pool)
	historialRepo := postgres.NewHistorialVentaRepository(pool)
	productoRepo := postgres.NewProductoRepository(pool)
	categoriaRepo := postgres.NewCategoriaRepository(pool)
	proveedorRepo := postgres.NewProveedorRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	sucursalRepo := postgres.NewSucursalRepository(pool)
	vehiculoRepo := postgres.NewVehiculoRepository(pool)
	cajaRepo := postgres.NewCajaRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)

	txRunner := postgres.NewTxRunner(pool)

	// ── Casos de uso ──────────────────────────────────────────────
	outbox := historial.NewOutbox(historialRepo, log, 256)
	ledger := stock.NewLedger(txRunner, stockRepo, movRepo)
	ventasUC := ventas.NewUseCase(txRunner, ventaRepo, clienteRepo, productoRepo, outbox)
	comprasUC := compras.NewUseCase(txRunner, compraRepo, proveedorRepo, productoRepo, sucursalRepo)
	productoUC := usecase.NewProductoUseCase(productoRepo, categoriaRepo)
	categoriaUC := usecase.NewCategoriaUseCase(categoriaRepo)
	proveedorUC := usecase.NewProveedorUseCase(proveedorRepo)
	clienteUC := usecase.NewClienteUseCase(clienteRepo)
	sucursalUC := usecase.NewSucursalUseCase(sucursalRepo)
	vehiculoUC := usecase.NewVehiculoUseCase(vehiculoRepo)
	cajaUC := usecase.NewCajaUseCase(cajaRepo)
	authUC := auth.NewUseCase(usuarioRepo, cfg.JWT)

	// ── HTTP ──────────────────────────────────────────────────────
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		VentasUC:    ventasUC,
		ComprasUC:   comprasUC,
		Ledger:      ledger,
		ProductoUC:  productoUC,
		CategoriaUC: categoriaUC,
		ProveedorUC: proveedorUC,
		ClienteUC:   clienteUC,
		SucursalUC:  sucursalUC,
		VehiculoUC:  vehiculoUC,
		CajaUC:      cajaUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	// El historial se drena después de que dejan de entrar peticiones.
	outbox.Close()

	log.Info().Msg("aplicación detenida")
}
