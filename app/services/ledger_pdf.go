package services

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// LedgerPDFOptions configures one paginated PDF export.
type LedgerPDFOptions struct {
	VendorName     string
	ContactPerson  string
	Ledger         FilteredLedger
	FilterFromDate string
	FilterToDate   string
	Labels         LedgerExportLabels
	LogoURL        string
	Now            time.Time
}

const (
	pdfMargin        = 14.0
	pdfRowBreakY     = 245.0
	pdfSummaryBreakY = 210.0
	maxLogoWidth     = 25.0
	maxLogoHeight    = 15.0
)

var pdfColWidths = [6]float64{22, 70, 25, 22, 22, 22}

// GenerateLedgerPDF renders a filtered ledger as an A4 document with
// fixed-width columns, automatic page breaks and a numbered footer on every
// page. The logo is optional; any failure fetching or decoding it is logged
// and the document is produced without it.
func GenerateLedgerPDF(opts LedgerPDFOptions) (*fpdf.Fpdf, error) {
	t := opts.Labels
	ledger := opts.Ledger
	hasDateFilter := opts.FilterFromDate != "" || opts.FilterToDate != ""
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pageWidth, pageHeight := pdf.GetPageSize()

	pdf.SetFooterFunc(func() {
		footerY := pageHeight - 15
		pdf.SetDrawColor(200, 200, 200)
		pdf.Line(pdfMargin, footerY-5, pageWidth-pdfMargin, footerY-5)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(107, 114, 128)
		pdf.Text(pdfMargin, footerY, "Generated with SiteWise - One stop solution for construction site management")
		pdf.Text(pageWidth-pdfMargin-15, footerY, fmt.Sprintf("Page %d", pdf.PageNo()))
		pdf.SetTextColor(0, 0, 0)
	})

	pdf.AddPage()
	y := 25.0

	if opts.LogoURL != "" {
		addLogo(pdf, opts.LogoURL, pageWidth, y)
	}

	y += 10
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Text(pdfMargin, y, t.VendorLedger)

	y += 12
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(pdfMargin, y, fmt.Sprintf("%s: %s", t.Vendor, opts.VendorName))
	y += 6
	if opts.ContactPerson != "" {
		pdf.Text(pdfMargin, y, fmt.Sprintf("%s: %s", t.Contact, opts.ContactPerson))
		y += 6
	}
	pdf.Text(pdfMargin, y, fmt.Sprintf("%s: %s", t.Generated, now.Format("2006-01-02")))

	if hasDateFilter {
		y += 6
		from := opts.FilterFromDate
		if from == "" {
			from = t.Beginning
		}
		to := opts.FilterToDate
		if to == "" {
			to = t.Today
		}
		pdf.Text(pdfMargin, y, fmt.Sprintf("%s: %s - %s", t.FilterPeriod, from, to))
	}
	y += 15

	pdf.SetFont("Helvetica", "B", 9)
	headers := [6]string{t.Date, t.Particulars, t.Reference, t.Debit, t.Credit, t.Balance}
	x := pdfMargin
	for i, h := range headers {
		pdf.Text(x, y, h)
		x += pdfColWidths[i]
	}
	y += 6
	pdf.Line(pdfMargin, y, pageWidth-pdfMargin, y)
	y += 5

	pdf.SetFont("Helvetica", "", 8)

	if ledger.HasOpeningBalance {
		x = pdfMargin
		pdf.Text(x, y, opts.FilterFromDate)
		x += pdfColWidths[0]
		pdf.Text(x, y, t.OpeningBalance)
		x += pdfColWidths[1] + pdfColWidths[2] + pdfColWidths[3] + pdfColWidths[4]
		pdf.Text(x, y, crDrWhole(ledger.OpeningBalance))
		y += 5
	}

	for _, e := range ledger.Entries {
		if y > pdfRowBreakY {
			pdf.AddPage()
			y = 25
			pdf.SetFont("Helvetica", "", 8)
		}

		x = pdfMargin
		pdf.Text(x, y, e.Date.Format("2006-01-02"))
		x += pdfColWidths[0]

		pdf.Text(x, y, truncateToWidth(pdf, e.Particulars, pdfColWidths[1]-2))
		x += pdfColWidths[1]

		ref := e.Reference
		if ref == "" {
			ref = "-"
		}
		pdf.Text(x, y, truncateToWidth(pdf, ref, pdfColWidths[2]-2))
		x += pdfColWidths[2]

		pdf.Text(x, y, wholeAmount(e.Debit))
		x += pdfColWidths[3]
		pdf.Text(x, y, wholeAmount(e.Credit))
		x += pdfColWidths[4]
		pdf.Text(x, y, crDrWhole(e.RunningBalance))

		y += 5
	}

	if y > pdfSummaryBreakY {
		pdf.AddPage()
		y = 25
	}
	y += 8
	pdf.Line(pdfMargin, y, pageWidth-pdfMargin, y)
	y += 6

	pdf.SetFont("Helvetica", "B", 9)
	x = pdfMargin
	pdf.Text(x, y, t.Totals)
	x += pdfColWidths[0] + pdfColWidths[1] + pdfColWidths[2]
	pdf.Text(x, y, fmt.Sprintf("%.0f", ledger.Totals.TotalDebits))
	x += pdfColWidths[3]
	pdf.Text(x, y, fmt.Sprintf("%.0f", ledger.Totals.TotalCredits))
	x += pdfColWidths[4]
	pdf.Text(x, y, crDrWhole(ledger.Totals.FinalBalance))

	y += 8
	pdf.SetFont("Helvetica", "B", 11)
	if ledger.Totals.FinalBalance >= 0 {
		pdf.Text(pdfMargin, y, fmt.Sprintf("%s: %.0f", t.Outstanding, ledger.Totals.FinalBalance))
	} else {
		pdf.Text(pdfMargin, y, fmt.Sprintf("%s: %.0f", t.CreditBalance, -ledger.Totals.FinalBalance))
	}

	if pdf.Err() {
		return nil, pdf.Error()
	}
	return pdf, nil
}

// wholeAmount renders a positive amount without decimals, or a dash.
func wholeAmount(v float64) string {
	if v > 0 {
		return fmt.Sprintf("%.0f", v)
	}
	return "-"
}

// crDrWhole is the compact Cr/Dr rendering used in the PDF columns.
func crDrWhole(balance float64) string {
	if balance >= 0 {
		return fmt.Sprintf("%.0f Cr", balance)
	}
	return fmt.Sprintf("%.0f Dr", -balance)
}

// truncateToWidth shortens text with an ellipsis until it fits the column.
func truncateToWidth(pdf *fpdf.Fpdf, text string, width float64) string {
	for pdf.GetStringWidth(text) > width && len(text) > 3 {
		trimmed := strings.TrimSuffix(text, "...")
		if len(trimmed) <= 4 {
			break
		}
		text = trimmed[:len(trimmed)-4] + "..."
	}
	return text
}

// addLogo fetches the logo over HTTP and places it top-right, scaled into a
// 25x15 box preserving aspect ratio. Failures are swallowed so the export
// never fails because of a missing logo.
func addLogo(pdf *fpdf.Fpdf, url string, pageWidth, y float64) {
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		log.Printf("Could not load logo for PDF: %v", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("Could not load logo for PDF: status %d", resp.StatusCode)
		return
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("Could not load logo for PDF: %v", err)
		return
	}

	imageType := "PNG"
	if ct := resp.Header.Get("Content-Type"); strings.Contains(ct, "jpeg") {
		imageType = "JPG"
	}
	opts := fpdf.ImageOptions{ImageType: imageType, ReadDpi: true}
	info := pdf.RegisterImageOptionsReader("ledger-logo", opts, bytes.NewReader(data))
	if pdf.Err() {
		log.Printf("Could not load logo for PDF: %v", pdf.Error())
		pdf.ClearError()
		return
	}

	aspect := info.Width() / info.Height()
	logoWidth := maxLogoWidth
	logoHeight := maxLogoWidth / aspect
	if logoHeight > maxLogoHeight {
		logoHeight = maxLogoHeight
		logoWidth = maxLogoHeight * aspect
	}
	pdf.ImageOptions("ledger-logo", pageWidth-pdfMargin-logoWidth, y-5, logoWidth, logoHeight, false, opts, 0, "")
}
