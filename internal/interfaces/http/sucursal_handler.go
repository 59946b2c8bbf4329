package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/internal/application/usecase"
)

// SucursalHandler maneja las peticiones HTTP de sucursales (protegido).
type SucursalHandler struct {
	uc *usecase.SucursalUseCase
}

// NewSucursalHandler construye el handler.
func NewSucursalHandler(uc *usecase.SucursalUseCase) *SucursalHandler {
	return &SucursalHandler{uc: uc}
}

// Crear POST /api/sucursales
func (h *SucursalHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearSucursalRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	sucursal, err := h.uc.Crear(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return created(c, sucursal)
}

// Obtener GET /api/sucursales/:id
func (h *SucursalHandler) Obtener(c *fiber.Ctx) error {
	sucursal, err := h.uc.Obtener(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return ok(c, sucursal)
}

// Listar GET /api/sucursales
func (h *SucursalHandler) Listar(c *fiber.Ctx) error {
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

// Actualizar PUT /api/sucursales/:id
func (h *SucursalHandler) Actualizar(c *fiber.Ctx) error {
	var in dto.ActualizarSucursalRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	sucursal, err := h.uc.Actualizar(c.Context(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return ok(c, sucursal)
}

// Eliminar DELETE /api/sucursales/:id
func (h *SucursalHandler) Eliminar(c *fiber.Ctx) error {
	if err := h.uc.Eliminar(c.Context(), c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return okMensaje(c, "sucursal eliminada")
}
