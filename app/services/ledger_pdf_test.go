package services

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"sitewise/app/models"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWholeAmount(t *testing.T) {
	assert.Equal(t, "5000", wholeAmount(5000))
	assert.Equal(t, "-", wholeAmount(0))
	assert.Equal(t, "-", wholeAmount(-100))
}

func TestCrDrWhole(t *testing.T) {
	assert.Equal(t, "2000 Cr", crDrWhole(2000))
	assert.Equal(t, "0 Cr", crDrWhole(0))
	assert.Equal(t, "1500 Dr", crDrWhole(-1500))
}

func TestTruncateToWidth(t *testing.T) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 8)

	short := "Invoice: INV-001"
	assert.Equal(t, short, truncateToWidth(pdf, short, 68))

	long := "Credit Note for Return - severely damaged cement bags from the January consignment"
	got := truncateToWidth(pdf, long, 68)
	assert.True(t, len(got) < len(long))
	assert.True(t, len(got) > 3)
	assert.Contains(t, got, "...")
	assert.LessOrEqual(t, pdf.GetStringWidth(got), 68.0)
}

func TestGenerateLedgerPDF(t *testing.T) {
	pdf, err := GenerateLedgerPDF(LedgerPDFOptions{
		VendorName:    "Acme Suppliers",
		ContactPerson: "Ravi Kumar",
		Ledger:        csvTestLedger(),
		Labels:        DefaultLedgerExportLabels(),
		Now:           time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, pdf.PageCount())

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestGenerateLedgerPDFPaginates(t *testing.T) {
	deliveries := make([]*models.Delivery, 120)
	for i := range deliveries {
		deliveries[i] = &models.Delivery{
			ID:                fmt.Sprintf("d-%03d", i),
			TotalAmount:       100,
			DeliveryDate:      day(2024, 1, 1).AddDate(0, 0, i),
			DeliveryReference: fmt.Sprintf("INV-%03d", i),
		}
	}
	view := FilterLedgerByDate(BuildVendorLedger(testVendor(), deliveries, nil, nil, nil), nil, nil)

	pdf, err := GenerateLedgerPDF(LedgerPDFOptions{
		VendorName: "Acme Suppliers",
		Ledger:     view,
		Labels:     DefaultLedgerExportLabels(),
	})
	require.NoError(t, err)
	assert.Greater(t, pdf.PageCount(), 1)
}

func TestGenerateLedgerPDFWithDateFilter(t *testing.T) {
	deliveries := []*models.Delivery{
		{ID: "d-1", TotalAmount: 5000, DeliveryDate: day(2024, 1, 5)},
		{ID: "d-2", TotalAmount: 3000, DeliveryDate: day(2024, 1, 15)},
	}
	from := day(2024, 1, 10)
	view := FilterLedgerByDate(BuildVendorLedger(testVendor(), deliveries, nil, nil, nil), &from, nil)
	require.True(t, view.HasOpeningBalance)

	pdf, err := GenerateLedgerPDF(LedgerPDFOptions{
		VendorName:     "Acme Suppliers",
		Ledger:         view,
		FilterFromDate: "2024-01-10",
		Labels:         DefaultLedgerExportLabels(),
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	assert.NotZero(t, buf.Len())
}

func TestGenerateLedgerPDFBadLogoDoesNotFail(t *testing.T) {
	pdf, err := GenerateLedgerPDF(LedgerPDFOptions{
		VendorName: "Acme Suppliers",
		Ledger:     csvTestLedger(),
		Labels:     DefaultLedgerExportLabels(),
		// unroutable address, the export must still succeed without a logo
		LogoURL: "http://127.0.0.1:1/logo.png",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, pdf.PageCount())
}
