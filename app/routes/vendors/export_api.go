package vendors

import (
	"bytes"
	"database/sql"
	"fmt"
	"time"

	"sitewise/app/config"
	"sitewise/app/services"

	"github.com/gofiber/fiber/v2"
)

func exportFilename(vendorName, extension string) string {
	return fmt.Sprintf("ledger-%s-%s.%s", vendorName, time.Now().Format("2006-01-02"), extension)
}

func ExportLedgerCSVAPI(c *fiber.Ctx) error {
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

	csv := services.GenerateLedgerCSV(services.LedgerCSVOptions{
		Ledger:         view,
		FilterFromDate: c.Query("from"),
		FilterToDate:   c.Query("to"),
		Labels:         services.DefaultLedgerExportLabels(),
		Now:            time.Now(),
	})

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+exportFilename(ledger.Vendor.Name, "csv")+`"`)
	return c.SendString(csv)
}

func ExportLedgerPDFAPI(c *fiber.Ctx) error {
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

	pdf, err := services.GenerateLedgerPDF(services.LedgerPDFOptions{
		VendorName:     ledger.Vendor.Name,
		ContactPerson:  ledger.Vendor.ContactPerson,
		Ledger:         view,
		FilterFromDate: c.Query("from"),
		FilterToDate:   c.Query("to"),
		Labels:         services.DefaultLedgerExportLabels(),
		LogoURL:        config.LogoURL(),
		Now:            time.Now(),
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render PDF")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render PDF")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+exportFilename(ledger.Vendor.Name, "pdf")+`"`)
	return c.Send(buf.Bytes())
}

func ExportLedgerTallyXMLAPI(c *fiber.Ctx) error {
	ledger, err := loadVendorLedger(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Vendor not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build ledger")
	}

	xml := services.GenerateTallyXML(ledger, services.TallyExportOptions{
		CompanyName: config.CompanyName(),
	})

	c.Set(fiber.HeaderContentType, "application/xml")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+exportFilename(ledger.Vendor.Name, "xml")+`"`)
	return c.SendString(xml)
}
