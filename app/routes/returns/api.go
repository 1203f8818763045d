package returns

import (
	"database/sql"

	"sitewise/app/config"
	"sitewise/app/database"
	"sitewise/app/models"

	"github.com/gofiber/fiber/v2"
)

func GetReturnsAPI(c *fiber.Ctx) error {
	vendorID := c.Query("vendor_id")
	if vendorID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "vendor_id is required")
	}

	returns, err := database.GetReturnsByVendor(config.GetDB(), vendorID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load returns")
	}
	if returns == nil {
		returns = []*models.VendorReturn{}
	}

	return c.JSON(fiber.Map{"success": true, "data": returns})
}

func CreateReturnAPI(c *fiber.Ctx) error {
	var r models.VendorReturn
	if err := c.BodyParser(&r); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if r.SiteID == "" || r.VendorID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "site_id and vendor_id are required")
	}
	if r.TotalReturnAmount <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "total_return_amount must be greater than 0")
	}
	if r.ProcessingOption != "" &&
		r.ProcessingOption != models.ProcessCreditNote && r.ProcessingOption != models.ProcessRefund {
		return fiber.NewError(fiber.StatusBadRequest, "processing_option must be credit_note or refund")
	}

	if err := database.CreateReturn(config.GetDB(), &r); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create return")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": r})
}

func UpdateReturnStatusAPI(c *fiber.Ctx) error {
	type StatusRequest struct {
		Status models.ReturnStatus `json:"status"`
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	switch req.Status {
	case models.ReturnInitiated, models.ReturnApproved, models.ReturnRejected:
	default:
		return fiber.NewError(fiber.StatusBadRequest, "Invalid status, use the complete endpoint to settle a return")
	}

	if err := database.UpdateReturnStatus(config.GetDB(), c.Params("id"), req.Status); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update return")
	}

	return c.JSON(fiber.Map{"success": true})
}

// CompleteReturnAPI settles an approved return. A credit_note return issues a
// credit note for the return amount; a refund return records the refunded
// amount and moves to refunded.
func CompleteReturnAPI(c *fiber.Ctx) error {
	type CompleteRequest struct {
		RefundAmount float64 `json:"refund_amount"`
	}

	var req CompleteRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	db := config.GetDB()
	r, err := database.GetReturnByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Return not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load return")
	}

	if r.Status != models.ReturnInitiated && r.Status != models.ReturnApproved {
		return fiber.NewError(fiber.StatusConflict, "Return is already settled")
	}
	if r.ProcessingOption == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Return has no processing option")
	}

	note, err := database.CompleteReturn(db, r, req.RefundAmount)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to complete return")
	}

	data := fiber.Map{"return": r}
	if note != nil {
		data["credit_note"] = note
	}
	return c.JSON(fiber.Map{"success": true, "data": data})
}
