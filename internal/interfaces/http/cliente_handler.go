package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/internal/application/usecase"
)

// ClienteHandler maneja las peticiones HTTP de clientes (protegido).
type ClienteHandler struct {
	uc *usecase.ClienteUseCase
}

// NewClienteHandler construye el handler.
func NewClienteHandler(uc *usecase.ClienteUseCase) *ClienteHandler {
	return &ClienteHandler{uc: uc}
}

// Crear POST /api/clientes
func (h *ClienteHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	cliente, err := h.uc.Crear(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return created(c, cliente)
}

// Obtener GET /api/clientes/:id
func (h *ClienteHandler) Obtener(c *fiber.Ctx) error {
	cliente, err := h.uc.Obtener(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return ok(c, cliente)
}

// Listar GET /api/clientes
func (h *ClienteHandler) Listar(c *fiber.Ctx) error {
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

// Actualizar PUT /api/clientes/:id
func (h *ClienteHandler) Actualizar(c *fiber.Ctx) error {
	var in dto.ActualizarClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	cliente, err := h.uc.Actualizar(c.Context(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return ok(c, cliente)
}

// Eliminar DELETE /api/clientes/:id — borrado lógico.
func (h *ClienteHandler) Eliminar(c *fiber.Ctx) error {
	if err := h.uc.Eliminar(c.Context(), c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return okMensaje(c, "cliente eliminado")
}
