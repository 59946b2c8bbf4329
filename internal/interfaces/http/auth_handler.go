package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-backoffice/internal/application/auth"
	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
)

// AuthHandler maneja registro, login y perfil.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	usuario, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return created(c, usuario)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	resp, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return ok(c, resp)
}

// Perfil GET /api/auth/me (protegido)
func (h *AuthHandler) Perfil(c *fiber.Ctx) error {
	usuario, err := h.uc.Perfil(c.Context(), GetContexto(c).ActorID)
	if err != nil {
		return responderError(c, err)
	}
	return ok(c, usuario)
}
