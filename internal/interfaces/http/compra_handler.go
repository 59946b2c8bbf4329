package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-backoffice/internal/application/compras"
	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
)

// CompraHandler maneja las peticiones HTTP de compras (protegido).
type CompraHandler struct {
	uc *compras.UseCase
}

// NewCompraHandler construye el handler.
func NewCompraHandler(uc *compras.UseCase) *CompraHandler {
	return &CompraHandler{uc: uc}
}

// Crear POST /api/compras
func (h *CompraHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearCompraRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	compra, err := h.uc.Crear(c.Context(), GetContexto(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return created(c, compra)
}

// Obtener GET /api/compras/:id
func (h *CompraHandler) Obtener(c *fiber.Ctx) error {
	compra, err := h.uc.Obtener(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return ok(c, compra)
}

// Listar GET /api/compras
func (h *CompraHandler) Listar(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return cuerpoInvalido(c)
	}
	page.DefaultPage()
	list, err := h.uc.Listar(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return responderError(c, err)
	}
	return ok(c, list)
}

// Filtrar GET /api/compras/filtrar
func (h *CompraHandler) Filtrar(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return cuerpoInvalido(c)
	}
	page.DefaultPage()

	filtro := repository.FiltroCompras{
		Estado:      c.Query("estado"),
		ProveedorID: c.Query("proveedor_id"),
		Limit:       page.Limit,
		Offset:      page.Offset,
	}
	if desde, ok := parseFecha(c.Query("desde")); ok {
		filtro.Desde = &desde
	}
	if hasta, ok := parseFecha(c.Query("hasta")); ok {
		filtro.Hasta = &hasta
	}

	list, err := h.uc.Filtrar(c.Context(), filtro)
	if err != nil {
		return responderError(c, err)
	}
	return ok(c, list)
}

// Actualizar PUT /api/compras/:id (solo pendientes)
func (h *CompraHandler) Actualizar(c *fiber.Ctx) error {
	var in dto.ActualizarCompraRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	compra, err := h.uc.Actualizar(c.Context(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return ok(c, compra)
}

// Recibir PATCH /api/compras/:id/recibir — acredita el stock.
func (h *CompraHandler) Recibir(c *fiber.Ctx) error {
	compra, err := h.uc.Recibir(c.Context(), GetContexto(c), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return ok(c, compra)
}

// CambiarEstado PATCH /api/compras/:id/estado
func (h *CompraHandler) CambiarEstado(c *fiber.Ctx) error {
	var in dto.CambiarEstadoCompraRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	compra, err := h.uc.CambiarEstado(c.Context(), c.Params("id"), in.Estado)
	if err != nil {
		return responderError(c, err)
	}
	return ok(c, compra)
}

// Eliminar DELETE /api/compras/:id (solo pendientes o canceladas)
func (h *CompraHandler) Eliminar(c *fiber.Ctx) error {
	if err := h.uc.Eliminar(c.Context(), c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return okMensaje(c, "compra eliminada")
}
