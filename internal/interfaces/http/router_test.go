package http_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	apphttp "github.com/tu-usuario/pos-backoffice/internal/interfaces/http"
)

func rutaRegistrada(app *fiber.App, metodo, path string) bool {
	for _, r := range app.GetRoutes() {
		if r.Method == metodo && r.Path == path {
			return true
		}
	}
	return false
}

// Compras expone la actualización tanto por PUT como por PATCH sobre
// /:id, además de las acciones de recepción y cambio de estado.
func TestRouter_RutasDeCompras(t *testing.T) {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{})

	assert.True(t, rutaRegistrada(app, fiber.MethodPut, "/api/compras/:id"))
	assert.True(t, rutaRegistrada(app, fiber.MethodPatch, "/api/compras/:id"),
		"PATCH /:id actualiza la compra igual que PUT /:id")
	assert.True(t, rutaRegistrada(app, fiber.MethodPatch, "/api/compras/:id/recibir"))
	assert.True(t, rutaRegistrada(app, fiber.MethodPatch, "/api/compras/:id/estado"))
	assert.True(t, rutaRegistrada(app, fiber.MethodDelete, "/api/compras/:id"))
}
