package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/internal/application/usecase"
)

// VehiculoHandler maneja las peticiones HTTP de la flota y sus gastos (protegido).
type VehiculoHandler struct {
	uc *usecase.VehiculoUseCase
}

// NewVehiculoHandler construye el handler.
func NewVehiculoHandler(uc *usecase.VehiculoUseCase) *VehiculoHandler {
	return &VehiculoHandler{uc: uc}
}

// Crear POST /api/vehiculos
func (h *VehiculoHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearVehiculoRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	vehiculo, err := h.uc.Crear(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return created(c, vehiculo)
}

// Obtener GET /api/vehiculos/:id
func (h *VehiculoHandler) Obtener(c *fiber.Ctx) error {
	vehiculo, err := h.uc.Obtener(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return ok(c, vehiculo)
}

// Listar GET /api/vehiculos
func (h *VehiculoHandler) Listar(c *fiber.Ctx) error {
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

// Actualizar PUT /api/vehiculos/:id
func (h *VehiculoHandler) Actualizar(c *fiber.Ctx) error {
	var in dto.ActualizarVehiculoRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	vehiculo, err := h.uc.Actualizar(c.Context(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return ok(c, vehiculo)
}

// Eliminar DELETE /api/vehiculos/:id — borrado lógico.
func (h *VehiculoHandler) Eliminar(c *fiber.Ctx) error {
	if err := h.uc.Eliminar(c.Context(), c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return okMensaje(c, "vehículo eliminado")
}

// RegistrarGasto POST /api/vehiculos/:id/gastos
func (h *VehiculoHandler) RegistrarGasto(c *fiber.Ctx) error {
	var in dto.RegistrarGastoRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	gasto, err := h.uc.RegistrarGasto(c.Context(), GetContexto(c), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return created(c, gasto)
}

// ListarGastos GET /api/vehiculos/:id/gastos?desde=&hasta=
// Con anio y mes devuelve además el total del mes.
func (h *VehiculoHandler) ListarGastos(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return cuerpoInvalido(c)
	}
	page.DefaultPage()

	var desde, hasta *time.Time
	if f, okF := parseFecha(c.Query("desde")); okF {
		desde = &f
	}
	if f, okF := parseFecha(c.Query("hasta")); okF {
		hasta = &f
	}

	vehiculoID := c.Params("id")
	list, err := h.uc.ListarGastos(c.Context(), vehiculoID, desde, hasta, page.Limit, page.Offset)
	if err != nil {
		return responderError(c, err)
	}

	anio := c.QueryInt("anio")
	mes := c.QueryInt("mes")
	if anio > 0 && mes >= 1 && mes <= 12 {
		total, err := h.uc.TotalGastosMes(c.Context(), vehiculoID, anio, time.Month(mes))
		if err != nil {
			return responderError(c, err)
		}
		return ok(c, fiber.Map{"gastos": list, "total_mes": total})
	}
	return ok(c, list)
}
