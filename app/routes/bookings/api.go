package bookings

import (
	"sitewise/app/config"
	"sitewise/app/database"
	"sitewise/app/models"
	"sitewise/app/services"

	"github.com/gofiber/fiber/v2"
)

// GetBookingsAPI lists service bookings for a vendor or a site with derived
// payment status fields.
func GetBookingsAPI(c *fiber.Ctx) error {
	db := config.GetDB()
	vendorID := c.Query("vendor_id")
	siteID := c.Query("site_id")

	var (
		bookings    []*models.ServiceBooking
		allocations []*models.PaymentAllocation
		err         error
	)
	switch {
	case vendorID != "":
		bookings, err = database.GetServiceBookingsByVendor(db, vendorID)
		if err == nil {
			allocations, err = database.GetAllocationsByVendor(db, vendorID)
		}
	case siteID != "":
		bookings, err = database.GetServiceBookingsBySite(db, siteID)
		if err == nil {
			allocations, err = database.GetAllocationsBySite(db, siteID)
		}
	default:
		return fiber.NewError(fiber.StatusBadRequest, "vendor_id or site_id is required")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load bookings")
	}

	return c.JSON(fiber.Map{"success": true, "data": services.EnhanceServiceBookings(bookings, allocations)})
}

func CreateBookingAPI(c *fiber.Ctx) error {
	var b models.ServiceBooking
	if err := c.BodyParser(&b); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if b.SiteID == "" || b.VendorID == "" || b.ServiceName == "" {
		return fiber.NewError(fiber.StatusBadRequest, "site_id, vendor_id and service_name are required")
	}
	if b.TotalAmount <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "total_amount must be greater than 0")
	}

	if err := database.CreateServiceBooking(config.GetDB(), &b); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create booking")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": b})
}

func UpdateBookingProgressAPI(c *fiber.Ctx) error {
	type ProgressRequest struct {
		PercentCompleted float64 `json:"percent_completed"`
	}

	var req ProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.PercentCompleted < 0 || req.PercentCompleted > 100 {
		return fiber.NewError(fiber.StatusBadRequest, "percent_completed must be between 0 and 100")
	}

	if err := database.UpdateServiceBookingProgress(config.GetDB(), c.Params("id"), req.PercentCompleted); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update booking progress")
	}

	return c.JSON(fiber.Map{"success": true})
}
