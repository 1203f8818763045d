package deliveries

import (
	"sitewise/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupDeliveriesRoutes(app *fiber.App) {
	api := app.Group("/api/deliveries")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetDeliveriesAPI)
	api.Post("/", CreateDeliveryAPI)
	api.Get("/:id", GetDeliveryAPI)
}
