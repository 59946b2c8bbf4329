package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/internal/application/usecase"
)

// ProveedorHandler maneja las peticiones HTTP de proveedores (protegido).
type ProveedorHandler struct {
	uc *usecase.ProveedorUseCase
}

// NewProveedorHandler construye el handler.
func NewProveedorHandler(uc *usecase.ProveedorUseCase) *ProveedorHandler {
	return &ProveedorHandler{uc: uc}
}

// Crear POST /api/proveedores
func (h *ProveedorHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearProveedorRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	proveedor, err := h.uc.Crear(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return created(c, proveedor)
}

// Obtener GET /api/proveedores/:id
func (h *ProveedorHandler) Obtener(c *fiber.Ctx) error {
	proveedor, err := h.uc.Obtener(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return ok(c, proveedor)
}

// Listar GET /api/proveedores
func (h *ProveedorHandler) Listar(c *fiber.Ctx) error {
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

// Actualizar PUT /api/proveedores/:id
func (h *ProveedorHandler) Actualizar(c *fiber.Ctx) error {
	var in dto.ActualizarProveedorRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	proveedor, err := h.uc.Actualizar(c.Context(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return ok(c, proveedor)
}

// Eliminar DELETE /api/proveedores/:id — borrado lógico.
func (h *ProveedorHandler) Eliminar(c *fiber.Ctx) error {
	if err := h.uc.Eliminar(c.Context(), c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return okMensaje(c, "proveedor eliminado")
}
