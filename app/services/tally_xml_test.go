package services

import (
	"strings"
	"testing"

	"sitewise/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeXML(t *testing.T) {
	assert.Equal(t, "", escapeXML(""))
	assert.Equal(t, "plain", escapeXML("plain"))
	assert.Equal(t, "A &amp; B", escapeXML("A & B"))
	assert.Equal(t, "&lt;tag&gt;", escapeXML("<tag>"))
	assert.Equal(t, "&quot;q&quot; &apos;a&apos;", escapeXML(`"q" 'a'`))
}

func TestTallyVoucherType(t *testing.T) {
	assert.Equal(t, "Payment", tallyVoucherType(models.LedgerPayment))
	assert.Equal(t, "Purchase", tallyVoucherType(models.LedgerDelivery))
	assert.Equal(t, "Journal", tallyVoucherType(models.LedgerCreditNote))
	assert.Equal(t, "Journal", tallyVoucherType(models.LedgerRefund))
}

func tallyTestLedger() VendorLedger {
	vendor := &models.Vendor{
		ID:            "vendor-1",
		Name:          "Acme & Sons",
		ContactPerson: "Ravi Kumar",
		Phone:         "9876543210",
		Email:         "ravi@acme.example",
		Address:       "12 Main Road",
	}
	deliveries := []*models.Delivery{
		{ID: "d-1", TotalAmount: 5000, DeliveryDate: day(2024, 1, 15), DeliveryReference: "INV-001"},
	}
	payments := []*models.Payment{
		{ID: "p-1", Amount: 3000, PaymentDate: day(2024, 1, 20), Reference: "PAY-001"},
	}
	return BuildVendorLedger(vendor, deliveries, payments, nil, nil)
}

func TestGenerateTallyXMLEnvelope(t *testing.T) {
	xml := GenerateTallyXML(tallyTestLedger(), TallyExportOptions{CompanyName: "SiteWise Constructions"})

	assert.True(t, strings.HasPrefix(xml, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.True(t, strings.HasSuffix(xml, "</ENVELOPE>"))
	for _, tag := range []string{
		"<HEADER>", "<TALLYREQUEST>Import Data</TALLYREQUEST>",
		"<BODY>", "<IMPORTDATA>", "<REQUESTDESC>", "<REQUESTDATA>",
		`<TALLYMESSAGE xmlns:UDF="TallyUDF">`,
		"<SVCURRENTCOMPANY>SiteWise Constructions</SVCURRENTCOMPANY>",
	} {
		assert.Contains(t, xml, tag)
	}
}

func TestGenerateTallyXMLLedgerNode(t *testing.T) {
	xml := GenerateTallyXML(tallyTestLedger(), TallyExportOptions{CompanyName: "SiteWise"})

	// contact person preferred over vendor name
	assert.Contains(t, xml, `<LEDGER NAME="Ravi Kumar" RESERVEDNAME="">`)
	assert.Contains(t, xml, "<PARENT>Sundry Creditors</PARENT>")
	assert.Contains(t, xml, "<LEDGERPHONE>9876543210</LEDGERPHONE>")
	assert.Contains(t, xml, "<LEDGERCONTACT>ravi@acme.example</LEDGERCONTACT>")
	// final balance 2000 -> opening balance on the ledger node
	assert.Contains(t, xml, "<OPENINGBALANCE>2000.00</OPENINGBALANCE>")
}

func TestGenerateTallyXMLVouchers(t *testing.T) {
	xml := GenerateTallyXML(tallyTestLedger(), TallyExportOptions{CompanyName: "SiteWise"})

	// delivery -> Purchase voucher, debit amount positive, deemed positive
	assert.Contains(t, xml, `VCHTYPE="Purchase"`)
	assert.Contains(t, xml, "<VOUCHERNUMBER>INV-001</VOUCHERNUMBER>")
	assert.Contains(t, xml, "<DATE>15-01-2024</DATE>")
	assert.Contains(t, xml, "<AMOUNT>5000.00</AMOUNT>")
	assert.Contains(t, xml, "<ISDEEMEDPOSITIVE>Yes</ISDEEMEDPOSITIVE>")

	// payment -> Payment voucher, credit amount negative
	assert.Contains(t, xml, `VCHTYPE="Payment"`)
	assert.Contains(t, xml, "<AMOUNT>-3000.00</AMOUNT>")
	assert.Contains(t, xml, "<ISDEEMEDPOSITIVE>No</ISDEEMEDPOSITIVE>")
}

func TestGenerateTallyXMLFallbackVoucherNumber(t *testing.T) {
	vendor := &models.Vendor{ID: "vendor-1", Name: "Acme"}
	deliveries := []*models.Delivery{
		{ID: "d-1", TotalAmount: 100, DeliveryDate: day(2024, 1, 5)},
	}
	xml := GenerateTallyXML(BuildVendorLedger(vendor, deliveries, nil, nil, nil), TallyExportOptions{CompanyName: "SiteWise"})

	assert.Contains(t, xml, "<VOUCHERNUMBER>VCH0001</VOUCHERNUMBER>")
	// vendor name used when no contact person
	assert.Contains(t, xml, `<LEDGER NAME="Acme" RESERVEDNAME="">`)
}

func TestGenerateTallyXMLEscapesFreeText(t *testing.T) {
	vendor := &models.Vendor{ID: "vendor-1", Name: "Smith & Co <Pvt>"}
	deliveries := []*models.Delivery{
		{ID: "d-1", TotalAmount: 100, DeliveryDate: day(2024, 1, 5), DeliveryReference: `R&D "special"`},
	}
	xml := GenerateTallyXML(BuildVendorLedger(vendor, deliveries, nil, nil, nil), TallyExportOptions{CompanyName: "A & B"})

	assert.Contains(t, xml, `<LEDGER NAME="Smith &amp; Co &lt;Pvt&gt;"`)
	assert.Contains(t, xml, "<SVCURRENTCOMPANY>A &amp; B</SVCURRENTCOMPANY>")
	assert.Contains(t, xml, "<VOUCHERNUMBER>R&amp;D &quot;special&quot;</VOUCHERNUMBER>")
	assert.NotContains(t, xml, `R&D "special"<`)
}

func TestGenerateTallyXMLNegativeFinalBalance(t *testing.T) {
	vendor := &models.Vendor{ID: "vendor-1", Name: "Acme"}
	payments := []*models.Payment{
		{ID: "p-1", Amount: 700, PaymentDate: day(2024, 1, 5)},
	}
	xml := GenerateTallyXML(BuildVendorLedger(vendor, nil, payments, nil, nil), TallyExportOptions{CompanyName: "SiteWise"})

	// overpaid vendors export a zero opening balance rather than a negative one
	assert.Contains(t, xml, "<OPENINGBALANCE>0.00</OPENINGBALANCE>")
}

func TestGenerateTallyXMLKeepsPaddedEmptyLists(t *testing.T) {
	xml := GenerateTallyXML(tallyTestLedger(), TallyExportOptions{CompanyName: "SiteWise"})
	// the importer is sensitive to the exact shape of the empty list elements
	require.Contains(t, xml, "<BILLALLOCATIONS.LIST>       </BILLALLOCATIONS.LIST>")
	require.Contains(t, xml, "<BANKALLOCATIONS.LIST>       </BANKALLOCATIONS.LIST>")
}
