package returns

import (
	"sitewise/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupReturnsRoutes(app *fiber.App) {
	api := app.Group("/api/returns")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetReturnsAPI)
	api.Post("/", CreateReturnAPI)
	api.Put("/:id/status", UpdateReturnStatusAPI)
	api.Put("/:id/complete", CompleteReturnAPI)
}
