package creditnotes

import (
	"sitewise/app/config"
	"sitewise/app/database"
	"sitewise/app/models"

	"github.com/gofiber/fiber/v2"
)

func GetCreditNotesAPI(c *fiber.Ctx) error {
	vendorID := c.Query("vendor_id")
	if vendorID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "vendor_id is required")
	}

	var (
		notes []*models.CreditNote
		err   error
	)
	if c.Query("active") == "true" {
		notes, err = database.GetActiveCreditNotesByVendor(config.GetDB(), vendorID)
	} else {
		notes, err = database.GetCreditNotesByVendor(config.GetDB(), vendorID)
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load credit notes")
	}
	if notes == nil {
		notes = []*models.CreditNote{}
	}

	return c.JSON(fiber.Map{"success": true, "data": notes})
}

func CreateCreditNoteAPI(c *fiber.Ctx) error {
	var n models.CreditNote
	if err := c.BodyParser(&n); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if n.SiteID == "" || n.VendorID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "site_id and vendor_id are required")
	}
	if n.CreditAmount <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "credit_amount must be greater than 0")
	}

	if err := database.CreateCreditNote(config.GetDB(), &n); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create credit note")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": n})
}
