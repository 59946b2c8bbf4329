package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
)

// Códigos de error de la API.
const (
	CodigoValidacion        = "VALIDACION"
	CodigoNoEncontrado      = "NO_ENCONTRADO"
	CodigoStockInsuficiente = "STOCK_INSUFICIENTE"
	CodigoYaProcesada       = "YA_PROCESADA"
	CodigoEstadoInvalido    = "ESTADO_INVALIDO"
	CodigoSinSucursal       = "SIN_SUCURSAL"
	CodigoNoAutorizado      = "NO_AUTORIZADO"
	CodigoInterno           = "INTERNO"
)

// ok responde 200 con el envelope de éxito.
func ok(c *fiber.Ctx, data interface{}) error {
	return c.JSON(dto.Respuesta{Success: true, Data: data})
}

// created responde 201 con el envelope de éxito.
func created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(dto.Respuesta{Success: true, Data: data})
}

// okMensaje responde 200 con mensaje y sin data.
func okMensaje(c *fiber.Ctx, mensaje string) error {
	return c.JSON(dto.Respuesta{Success: true, Message: mensaje})
}

// fail responde un error con código y mensaje en el envelope.
func fail(c *fiber.Ctx, status int, codigo, mensaje string, detalle interface{}) error {
	return c.Status(status).JSON(dto.Respuesta{
		Success: false,
		Error:   codigo,
		Message: mensaje,
		Data:    detalle,
	})
}

// cuerpoInvalido respuesta estándar cuando el body no parsea.
func cuerpoInvalido(c *fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, CodigoValidacion, "cuerpo inválido", nil)
}

// responderError mapea errores de dominio a estado HTTP + código de la API.
// Todo error no clasificado sale como 500 INTERNO con el mensaje original.
func responderError(c *fiber.Ctx, err error) error {
	var stockErr *domain.StockInsuficienteError
	if errors.As(err, &stockErr) {
		return fail(c, fiber.StatusBadRequest, CodigoStockInsuficiente, stockErr.Error(), dto.StockInsuficienteDetalle{
			ProductoID: stockErr.ProductoID,
			Disponible: stockErr.Disponible,
			Solicitado: stockErr.Solicitado,
		})
	}
	var estadoErr *domain.EstadoInvalidoError
	if errors.As(err, &estadoErr) {
		return fail(c, fiber.StatusBadRequest, CodigoEstadoInvalido, estadoErr.Error(), nil)
	}

	switch {
	case errors.Is(err, domain.ErrEntradaInvalida):
		return fail(c, fiber.StatusBadRequest, CodigoValidacion, "datos inválidos", nil)
	case errors.Is(err, domain.ErrNoEncontrado), errors.Is(err, domain.ErrUsuarioNoExiste):
		return fail(c, fiber.StatusNotFound, CodigoNoEncontrado, "recurso no encontrado", nil)
	case errors.Is(err, domain.ErrCompraYaProcesada):
		return fail(c, fiber.StatusBadRequest, CodigoYaProcesada, err.Error(), nil)
	case errors.Is(err, domain.ErrSinSucursal):
		return fail(c, fiber.StatusBadRequest, CodigoSinSucursal, err.Error(), nil)
	case errors.Is(err, domain.ErrPagoExcedeTotal):
		return fail(c, fiber.StatusBadRequest, CodigoValidacion, err.Error(), nil)
	case errors.Is(err, domain.ErrDuplicado), errors.Is(err, domain.ErrEmailYaRegistrado):
		return fail(c, fiber.StatusConflict, CodigoValidacion, err.Error(), nil)
	case errors.Is(err, domain.ErrNoAutorizado):
		return fail(c, fiber.StatusUnauthorized, CodigoNoAutorizado, "credenciales inválidas", nil)
	default:
		return fail(c, fiber.StatusInternalServerError, CodigoInterno, err.Error(), nil)
	}
}
