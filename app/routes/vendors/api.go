package vendors

import (
	"database/sql"
	"time"

	"sitewise/app/config"
	"sitewise/app/database"
	"sitewise/app/models"
	"sitewise/app/services"

	"github.com/gofiber/fiber/v2"
)

func GetVendorsAPI(c *fiber.Ctx) error {
	siteID := c.Query("site_id")
	if siteID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "site_id is required")
	}

	vendors, err := database.GetVendorsBySite(config.GetDB(), siteID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load vendors")
	}
	if vendors == nil {
		vendors = []*models.Vendor{}
	}

	return c.JSON(fiber.Map{"success": true, "data": vendors})
}

func GetVendorAPI(c *fiber.Ctx) error {
	db := config.GetDB()
	vendor, err := database.GetVendorByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Vendor not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load vendor")
	}

	summary, err := buildVendorSummary(db, vendor.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load vendor summary")
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"vendor":  vendor,
		"summary": summary,
	}})
}

func CreateVendorAPI(c *fiber.Ctx) error {
	var v models.Vendor
	if err := c.BodyParser(&v); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if v.SiteID == "" || v.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "site_id and name are required")
	}

	if err := database.CreateVendor(config.GetDB(), &v); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create vendor")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": v})
}

func UpdateVendorAPI(c *fiber.Ctx) error {
	var v models.Vendor
	if err := c.BodyParser(&v); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	v.ID = c.Params("id")

	if err := database.UpdateVendor(config.GetDB(), &v); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update vendor")
	}

	return c.JSON(fiber.Map{"success": true, "data": v})
}

func DeleteVendorAPI(c *fiber.Ctx) error {
	if err := database.DeleteVendor(config.GetDB(), c.Params("id")); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete vendor")
	}
	return c.JSON(fiber.Map{"success": true})
}

func GetVendorLedgerAPI(c *fiber.Ctx) error {
	ledger, err := loadVendorLedger(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Vendor not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build ledger")
	}

	from, to, err := parseDateRange(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid date filter, expected YYYY-MM-DD")
	}
	view := services.FilterLedgerByDate(ledger, from, to)

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"vendor":              ledger.Vendor,
		"entries":             view.Entries,
		"opening_balance":     view.OpeningBalance,
		"has_opening_balance": view.HasOpeningBalance,
		"totals":              view.Totals,
	}})
}

// loadVendorLedger fetches everything that feeds a vendor's ledger and builds it.
func loadVendorLedger(db *sql.DB, vendorID string) (services.VendorLedger, error) {
	vendor, err := database.GetVendorByID(db, vendorID)
	if err != nil {
		return services.VendorLedger{}, err
	}
	deliveries, err := database.GetDeliveriesByVendor(db, vendorID)
	if err != nil {
		return services.VendorLedger{}, err
	}
	payments, err := database.GetPaymentsByVendor(db, vendorID)
	if err != nil {
		return services.VendorLedger{}, err
	}
	returns, err := database.GetReturnsByVendor(db, vendorID)
	if err != nil {
		return services.VendorLedger{}, err
	}
	creditNotes, err := database.GetCreditNotesByVendor(db, vendorID)
	if err != nil {
		return services.VendorLedger{}, err
	}

	return services.BuildVendorLedger(vendor, deliveries, payments, returns, creditNotes), nil
}

// buildVendorSummary derives the vendor's financial position: deliveries plus
// booking progress, less payments and unused credit.
func buildVendorSummary(db *sql.DB, vendorID string) (*models.VendorSummary, error) {
	deliveries, err := database.GetDeliveriesByVendor(db, vendorID)
	if err != nil {
		return nil, err
	}
	bookings, err := database.GetServiceBookingsByVendor(db, vendorID)
	if err != nil {
		return nil, err
	}
	payments, err := database.GetPaymentsByVendor(db, vendorID)
	if err != nil {
		return nil, err
	}
	creditNotes, err := database.GetActiveCreditNotesByVendor(db, vendorID)
	if err != nil {
		return nil, err
	}

	summary := &models.VendorSummary{}
	for _, d := range deliveries {
		summary.TotalDeliveries += d.TotalAmount
	}
	for _, b := range bookings {
		summary.BookingProgress += b.TotalAmount * b.PercentCompleted / 100
	}
	for _, p := range payments {
		summary.TotalPaid += p.Amount
	}
	for _, n := range creditNotes {
		summary.CreditNoteBalance += n.Balance
	}
	summary.Outstanding = summary.TotalDeliveries + summary.BookingProgress -
		summary.TotalPaid - summary.CreditNoteBalance
	return summary, nil
}

// parseDateRange reads the optional from/to filter query params.
func parseDateRange(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, nil, err
		}
		to = &t
	}
	return from, to, nil
}
