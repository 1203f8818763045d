package creditnotes

import (
	"sitewise/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupCreditNotesRoutes(app *fiber.App) {
	api := app.Group("/api/credit-notes")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetCreditNotesAPI)
	api.Post("/", CreateCreditNoteAPI)
}
