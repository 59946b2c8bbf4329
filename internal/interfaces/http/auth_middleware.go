package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/pkg/jwt"
)

// Locals keys para los claims extraídos del JWT.
const (
	LocalActorID    = "actor_id"
	LocalSucursalID = "sucursal_id"
	LocalRol        = "rol"
)

// AuthMiddleware valida el Bearer Token JWT y deja actor, sucursal y rol en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fail(c, fiber.StatusUnauthorized, CodigoNoAutorizado, "Authorization header requerido", nil)
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fail(c, fiber.StatusUnauthorized, CodigoNoAutorizado, "formato: Bearer <token>", nil)
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return fail(c, fiber.StatusUnauthorized, CodigoNoAutorizado, "token vacío", nil)
		}
		actorID, sucursalID, rol, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return fail(c, fiber.StatusUnauthorized, CodigoNoAutorizado, "token inválido o expirado", nil)
		}
		c.Locals(LocalActorID, actorID)
		c.Locals(LocalSucursalID, sucursalID)
		c.Locals(LocalRol, rol)
		return c.Next()
	}
}

// GetContexto arma el contexto de solicitud desde los locals del middleware.
func GetContexto(c *fiber.Ctx) dto.ContextoSolicitud {
	return dto.ContextoSolicitud{
		ActorID:    localString(c, LocalActorID),
		SucursalID: localString(c, LocalSucursalID),
	}
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
