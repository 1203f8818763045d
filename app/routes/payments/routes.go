package payments

import (
	"sitewise/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupPaymentsRoutes(app *fiber.App) {
	api := app.Group("/api/payments")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetPaymentsAPI)
	api.Post("/", CreatePaymentAPI)
	api.Post("/preview", PreviewAllocationAPI)
	api.Get("/:id", GetPaymentAPI)
}
