package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/internal/application/usecase"
)

// CategoriaHandler maneja las peticiones HTTP de categorías (protegido).
type CategoriaHandler struct {
	uc *usecase.CategoriaUseCase
}

// NewCategoriaHandler construye el handler.
func NewCategoriaHandler(uc *usecase.CategoriaUseCase) *CategoriaHandler {
	return &CategoriaHandler{uc: uc}
}

// Crear POST /api/categorias
func (h *CategoriaHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearCategoriaRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	categoria, err := h.uc.Crear(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return created(c, categoria)
}

// Obtener GET /api/categorias/:id
func (h *CategoriaHandler) Obtener(c *fiber.Ctx) error {
	categoria, err := h.uc.Obtener(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return ok(c, categoria)
}

// Listar GET /api/categorias
func (h *CategoriaHandler) Listar(c *fiber.Ctx) error {
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

// Actualizar PUT /api/categorias/:id
func (h *CategoriaHandler) Actualizar(c *fiber.Ctx) error {
	var in dto.ActualizarCategoriaRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	categoria, err := h.uc.Actualizar(c.Context(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return ok(c, categoria)
}

// Eliminar DELETE /api/categorias/:id — borrado lógico.
func (h *CategoriaHandler) Eliminar(c *fiber.Ctx) error {
	if err := h.uc.Eliminar(c.Context(), c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return okMensaje(c, "categoría eliminada")
}
