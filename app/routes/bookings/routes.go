package bookings

import (
	"sitewise/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupBookingsRoutes(app *fiber.App) {
	api := app.Group("/api/bookings")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetBookingsAPI)
	api.Post("/", CreateBookingAPI)
	api.Put("/:id/progress", UpdateBookingProgressAPI)
}
