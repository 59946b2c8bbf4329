package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/internal/application/usecase"
)

// CajaHandler maneja las peticiones HTTP de caja chica (protegido).
type CajaHandler struct {
	uc *usecase.CajaUseCase
}

// NewCajaHandler construye el handler.
func NewCajaHandler(uc *usecase.CajaUseCase) *CajaHandler {
	return &CajaHandler{uc: uc}
}

// Registrar POST /api/caja
func (h *CajaHandler) Registrar(c *fiber.Ctx) error {
	var in dto.RegistrarMovimientoCajaRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	mov, err := h.uc.Registrar(c.Context(), GetContexto(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return created(c, mov)
}

// Dia GET /api/caja/dia?fecha=YYYY-MM-DD — movimientos y saldo del día.
func (h *CajaHandler) Dia(c *fiber.Ctx) error {
	fecha := time.Now()
	if f, okF := parseFecha(c.Query("fecha")); okF {
		fecha = f
	}
	dia, err := h.uc.Dia(c.Context(), GetContexto(c), fecha)
	if err != nil {
		return responderError(c, err)
	}
	return ok(c, dia)
}
