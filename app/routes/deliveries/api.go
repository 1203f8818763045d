package deliveries

import (
	"database/sql"

	"sitewise/app/config"
	"sitewise/app/database"
	"sitewise/app/models"
	"sitewise/app/services"

	"github.com/gofiber/fiber/v2"
)

// GetDeliveriesAPI lists deliveries for a vendor or a site, each carrying the
// derived payment status, paid amount and outstanding.
func GetDeliveriesAPI(c *fiber.Ctx) error {
	db := config.GetDB()
	vendorID := c.Query("vendor_id")
	siteID := c.Query("site_id")

	var (
		deliveries  []*models.Delivery
		allocations []*models.PaymentAllocation
		err         error
	)
	switch {
	case vendorID != "":
		deliveries, err = database.GetDeliveriesByVendor(db, vendorID)
		if err == nil {
			allocations, err = database.GetAllocationsByVendor(db, vendorID)
		}
	case siteID != "":
		deliveries, err = database.GetDeliveriesBySite(db, siteID)
		if err == nil {
			allocations, err = database.GetAllocationsBySite(db, siteID)
		}
	default:
		return fiber.NewError(fiber.StatusBadRequest, "vendor_id or site_id is required")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load deliveries")
	}

	return c.JSON(fiber.Map{"success": true, "data": services.EnhanceDeliveries(deliveries, allocations)})
}

func GetDeliveryAPI(c *fiber.Ctx) error {
	db := config.GetDB()
	delivery, err := database.GetDeliveryByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Delivery not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load delivery")
	}

	allocations, err := database.GetAllocationsByVendor(db, delivery.VendorID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load allocations")
	}

	enhanced := services.EnhanceDeliveries([]*models.Delivery{delivery}, allocations)
	return c.JSON(fiber.Map{"success": true, "data": enhanced[0]})
}

func CreateDeliveryAPI(c *fiber.Ctx) error {
	var d models.Delivery
	if err := c.BodyParser(&d); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if d.SiteID == "" || d.VendorID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "site_id and vendor_id are required")
	}
	if d.TotalAmount <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "total_amount must be greater than 0")
	}

	if err := database.CreateDelivery(config.GetDB(), &d); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create delivery")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": d})
}
