package payments

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"sitewise/app/config"
	"sitewise/app/database"
	"sitewise/app/models"
	"sitewise/app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func GetPaymentsAPI(c *fiber.Ctx) error {
	vendorID := c.Query("vendor_id")
	if vendorID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "vendor_id is required")
	}

	payments, err := database.GetPaymentsByVendor(config.GetDB(), vendorID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load payments")
	}
	if payments == nil {
		payments = []*models.Payment{}
	}

	return c.JSON(fiber.Map{"success": true, "data": payments})
}

func GetPaymentAPI(c *fiber.Ctx) error {
	payment, err := database.GetPaymentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Payment not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load payment")
	}

	return c.JSON(fiber.Map{"success": true, "data": payment})
}

// loadAllocationSession builds the per-vendor allocation lines and the active
// credit notes the caller selected.
func loadAllocationSession(db *sql.DB, vendorID string, creditNoteIDs []string) ([]services.AllocationLine, []*models.CreditNote, error) {
	deliveries, err := database.GetDeliveriesByVendor(db, vendorID)
	if err != nil {
		return nil, nil, err
	}
	bookings, err := database.GetServiceBookingsByVendor(db, vendorID)
	if err != nil {
		return nil, nil, err
	}
	allocations, err := database.GetAllocationsByVendor(db, vendorID)
	if err != nil {
		return nil, nil, err
	}
	lines := services.BuildAllocationLines(deliveries, bookings, allocations)

	var selected []*models.CreditNote
	if len(creditNoteIDs) > 0 {
		active, err := database.GetActiveCreditNotesByVendor(db, vendorID)
		if err != nil {
			return nil, nil, err
		}
		wanted := make(map[string]bool, len(creditNoteIDs))
		for _, id := range creditNoteIDs {
			wanted[id] = true
		}
		for _, n := range active {
			if wanted[n.ID] {
				selected = append(selected, n)
			}
		}
	}

	return lines, selected, nil
}

// PreviewAllocationAPI runs one allocation pass without persisting anything.
// Mode "amount" distributes the amount greedily over the open obligations;
// mode "selections" applies the caller's per-line amounts and recomputes the
// payment total from them.
func PreviewAllocationAPI(c *fiber.Ctx) error {
	type PreviewRequest struct {
		VendorID      string                           `json:"vendor_id"`
		Mode          string                           `json:"mode"`
		Amount        float64                          `json:"amount"`
		Allocations   []services.PersistableAllocation `json:"allocations"`
		CreditNoteIDs []string                         `json:"credit_notes"`
		PayAll        bool                             `json:"pay_all"`
	}

	var req PreviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.VendorID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "vendor_id is required")
	}

	lines, selected, err := loadAllocationSession(config.GetDB(), req.VendorID, req.CreditNoteIDs)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load obligations")
	}

	amount := req.Amount
	switch {
	case req.PayAll:
		amount = services.PayAllOutstanding(lines, selected)
	case req.Mode == "selections":
		for _, a := range req.Allocations {
			services.SetLineAllocation(lines, a.ObligationID, a.AllocatedAmount)
		}
		amount = services.RecomputeFromSelections(lines, selected)
	default:
		services.DistributeFromAmount(amount, lines, selected)
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"amount":             amount,
		"credit_note_amount": services.CreditNoteAmount(selected),
		"total_allocated":    services.TotalAllocated(lines),
		"total_outstanding":  services.TotalOutstanding(lines),
		"lines":              lines,
	}})
}

func CreatePaymentAPI(c *fiber.Ctx) error {
	type CreatePaymentRequest struct {
		SiteID        string                           `json:"site_id"`
		VendorID      string                           `json:"vendor_id"`
		AccountID     string                           `json:"account_id"`
		Amount        float64                          `json:"amount"`
		PaymentDate   string                           `json:"payment_date"`
		Reference     string                           `json:"reference"`
		Notes         string                           `json:"notes"`
		CreditNoteIDs []string                         `json:"credit_notes"`
		Allocations   []services.PersistableAllocation `json:"allocations"`
	}

	var req CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.VendorID == "" || req.SiteID == "" || req.AccountID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "site_id, vendor_id and account_id are required")
	}

	paymentDate, err := parsePaymentDate(req.PaymentDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payment_date, expected YYYY-MM-DD")
	}
	payment := models.Payment{
		SiteID:        req.SiteID,
		VendorID:      req.VendorID,
		AccountID:     req.AccountID,
		Amount:        req.Amount,
		PaymentDate:   paymentDate,
		Reference:     req.Reference,
		Notes:         req.Notes,
		CreditNoteIDs: req.CreditNoteIDs,
	}

	db := config.GetDB()
	lines, selected, err := loadAllocationSession(db, payment.VendorID, payment.CreditNoteIDs)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load obligations")
	}

	for _, a := range req.Allocations {
		services.SetLineAllocation(lines, a.ObligationID, a.AllocatedAmount)
	}

	// All violations are reported together so the caller can fix the whole
	// form in one round trip.
	if errs := services.ValidateAllocations(payment.Amount, lines); len(errs) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"errors":  errs,
		})
	}

	allocations := toModelAllocations(services.PersistableAllocations(lines))

	if payment.Reference == "" {
		payment.Reference = fmt.Sprintf("PAY-%s", strings.ToUpper(uuid.NewString()[:8]))
	}

	// Selected notes are consumed in full; the engine already reduced the
	// distributable amount by their balance.
	payment.CreditNoteIDs = nil
	for _, n := range selected {
		payment.CreditNoteIDs = append(payment.CreditNoteIDs, n.ID)
	}

	if err := database.CreatePaymentWithAllocations(db, &payment, allocations); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to record payment")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": payment})
}

func parsePaymentDate(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func toModelAllocations(records []services.PersistableAllocation) []*models.PaymentAllocation {
	allocations := make([]*models.PaymentAllocation, 0, len(records))
	for _, r := range records {
		id := r.ObligationID
		a := &models.PaymentAllocation{
			ObligationType:  r.Type,
			AllocatedAmount: r.AllocatedAmount,
		}
		if r.Type == models.ObligationServiceBooking {
			a.ServiceBookingID = &id
		} else {
			a.DeliveryID = &id
		}
		allocations = append(allocations, a)
	}
	return allocations
}
