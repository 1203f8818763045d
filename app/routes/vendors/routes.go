package vendors

import (
	"sitewise/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupVendorsRoutes(app *fiber.App) {
	api := app.Group("/api/vendors")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetVendorsAPI)
	api.Post("/", CreateVendorAPI)
	api.Get("/:id", GetVendorAPI)
	api.Put("/:id", UpdateVendorAPI)
	api.Delete("/:id", DeleteVendorAPI)

	api.Get("/:id/ledger", GetVendorLedgerAPI)
	api.Get("/:id/ledger/csv", ExportLedgerCSVAPI)
	api.Get("/:id/ledger/pdf", ExportLedgerPDFAPI)
	api.Get("/:id/ledger/tally-xml", ExportLedgerTallyXMLAPI)
}
