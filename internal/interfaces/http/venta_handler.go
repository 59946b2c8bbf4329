package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/internal/application/ventas"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

// VentaHandler maneja las peticiones HTTP de ventas (protegido).
type VentaHandler struct {
	uc *ventas.UseCase
}

// NewVentaHandler construye el handler.
func NewVentaHandler(uc *ventas.UseCase) *VentaHandler {
	return &VentaHandler{uc: uc}
}

// Crear POST /api/ventas
func (h *VentaHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearVentaRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	venta, err := h.uc.Crear(c.Context(), GetContexto(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return created(c, venta)
}

// Obtener GET /api/ventas/:id
func (h *VentaHandler) Obtener(c *fiber.Ctx) error {
	venta, err := h.uc.Obtener(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return ok(c, venta)
}

// Listar GET /api/ventas
func (h *VentaHandler) Listar(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return cuerpoInvalido(c)
	}
	page.DefaultPage()

	filtro := repository.FiltroVentas{
		SucursalID: c.Query("sucursal_id"),
		Estado:     c.Query("estado"),
		EstadoPago: c.Query("estado_pago"),
		Limit:      page.Limit,
		Offset:     page.Offset,
	}
	if desde, ok := parseFecha(c.Query("desde")); ok {
		filtro.Desde = &desde
	}
	if hasta, ok := parseFecha(c.Query("hasta")); ok {
		filtro.Hasta = &hasta
	}

	list, err := h.uc.Listar(c.Context(), filtro)
	if err != nil {
		return responderError(c, err)
	}
	return ok(c, list)
}

// EditarItems PUT /api/ventas/:id — reemplaza el detalle y reconcilia stock.
func (h *VentaHandler) EditarItems(c *fiber.Ctx) error {
	var in dto.EditarVentaRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	venta, err := h.uc.EditarItems(c.Context(), GetContexto(c), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return ok(c, venta)
}

// RegistrarPago POST /api/ventas/:id/pagos
func (h *VentaHandler) RegistrarPago(c *fiber.Ctx) error {
	var in dto.RegistrarPagoRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	venta, err := h.uc.RegistrarPago(c.Context(), c.Params("id"), in.Monto)
	if err != nil {
		return responderError(c, err)
	}
	return ok(c, venta)
}

// CambiarEstado PATCH /api/ventas/:id/estado
func (h *VentaHandler) CambiarEstado(c *fiber.Ctx) error {
	var in dto.CambiarEstadoVentaRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	venta, err := h.uc.CambiarEstado(c.Context(), GetContexto(c), c.Params("id"), in.Estado)
	if err != nil {
		return responderError(c, err)
	}
	return ok(c, venta)
}

// DevolucionParcial POST /api/ventas/:id/devolucion-parcial
func (h *VentaHandler) DevolucionParcial(c *fiber.Ctx) error {
	var in dto.DevolucionParcialRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	venta, err := h.uc.DevolucionParcial(c.Context(), GetContexto(c), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return ok(c, venta)
}

// Buscar GET /api/ventas/buscar?q=
func (h *VentaHandler) Buscar(c *fiber.Ctx) error {
	list, err := h.uc.Buscar(c.Context(), c.Query("q"), c.QueryInt("limit"))
	if err != nil {
		return responderError(c, err)
	}
	return ok(c, list)
}

// EstadisticasDia GET /api/ventas/estadisticas/dia?fecha=YYYY-MM-DD
func (h *VentaHandler) EstadisticasDia(c *fiber.Ctx) error {
	fecha := time.Now()
	if f, okF := parseFecha(c.Query("fecha")); okF {
		fecha = f
	}
	resumen, err := h.uc.EstadisticasDia(c.Context(), fecha)
	if err != nil {
		return responderError(c, err)
	}
	return ok(c, resumen)
}

// ListarEliminadas GET /api/ventas/eliminadas
func (h *VentaHandler) ListarEliminadas(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return cuerpoInvalido(c)
	}
	page.DefaultPage()
	list, err := h.uc.ListarEliminadas(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return responderError(c, err)
	}
	return ok(c, list)
}

// Eliminar DELETE /api/ventas/:id — borrado lógico.
func (h *VentaHandler) Eliminar(c *fiber.Ctx) error {
	if err := h.uc.Eliminar(c.Context(), c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return okMensaje(c, "venta eliminada")
}

// parseFecha YYYY-MM-DD; ok=false si viene vacío o malformado.
func parseFecha(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
