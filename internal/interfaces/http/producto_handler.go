package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/internal/application/usecase"
)

// ProductoHandler maneja las peticiones HTTP del catálogo de productos (protegido).
type ProductoHandler struct {
	uc *usecase.ProductoUseCase
}

// NewProductoHandler construye el handler.
func NewProductoHandler(uc *usecase.ProductoUseCase) *ProductoHandler {
	return &ProductoHandler{uc: uc}
}

// Crear POST /api/productos
func (h *ProductoHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	producto, err := h.uc.Crear(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return created(c, producto)
}

// Obtener GET /api/productos/:id
func (h *ProductoHandler) Obtener(c *fiber.Ctx) error {
	producto, err := h.uc.Obtener(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return ok(c, producto)
}

// Listar GET /api/productos
func (h *ProductoHandler) Listar(c *fiber.Ctx) error {
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

// Actualizar PUT /api/productos/:id
func (h *ProductoHandler) Actualizar(c *fiber.Ctx) error {
	var in dto.ActualizarProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	producto, err := h.uc.Actualizar(c.Context(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return ok(c, producto)
}

// Eliminar DELETE /api/productos/:id — borrado lógico.
func (h *ProductoHandler) Eliminar(c *fiber.Ctx) error {
	if err := h.uc.Eliminar(c.Context(), c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return okMensaje(c, "producto eliminado")
}
