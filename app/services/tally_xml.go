package services

import (
	"fmt"
	"strings"

	"sitewise/app/models"
)

// TallyExportOptions configures the accounting-system XML export.
type TallyExportOptions struct {
	CompanyName string
}

// escapeXML escapes the five XML special characters in free-text fields.
func escapeXML(text string) string {
	if text == "" {
		return ""
	}
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(text)
}

// tallyAmount formats an amount the way the importer expects.
func tallyAmount(v float64) string {
	if v < 0 {
		v = -v
	}
	return fmt.Sprintf("%.2f", v)
}

// tallyVoucherType maps an entry category to the voucher type the importer
// understands.
func tallyVoucherType(t models.LedgerEntryType) string {
	switch t {
	case models.LedgerPayment:
		return "Payment"
	case models.LedgerDelivery:
		return "Purchase"
	default:
		return "Journal"
	}
}

// GenerateTallyXML renders a vendor ledger as Tally import XML: one LEDGER
// node for the vendor under Sundry Creditors, then one VOUCHER per entry with
// a single debit/credit-signed ledger line. The external system parses this
// exact tag nesting and attribute set, so the schema here (including the
// padded empty .LIST elements) is part of the contract, not just the data.
func GenerateTallyXML(ledger VendorLedger, opts TallyExportOptions) string {
	vendor := ledger.Vendor
	vendorName := escapeXML(vendor.ContactPerson)
	if vendorName == "" {
		vendorName = escapeXML(vendor.Name)
	}
	if vendorName == "" {
		vendorName = "Unknown Vendor"
	}
	companyName := escapeXML(opts.CompanyName)

	openingBalance := "0.00"
	if ledger.Totals.FinalBalance >= 0 {
		openingBalance = tallyAmount(ledger.Totals.FinalBalance)
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<ENVELOPE>
  <HEADER>
    <TALLYREQUEST>Import Data</TALLYREQUEST>
  </HEADER>
  <BODY>
    <IMPORTDATA>
      <REQUESTDESC>
        <REPORTNAME>Vouchers</REPORTNAME>
        <STATICVARIABLES>
          <SVCURRENTCOMPANY>` + companyName + `</SVCURRENTCOMPANY>
        </STATICVARIABLES>
      </REQUESTDESC>
      <REQUESTDATA>
        <TALLYMESSAGE xmlns:UDF="TallyUDF">
          <COMPANY>
            <REMOTECMPINFO.LIST>
              <NAME>` + companyName + `</NAME>
              <REMOTECMPNAME>` + companyName + `</REMOTECMPNAME>
            </REMOTECMPINFO.LIST>
          </COMPANY>
`)

	b.WriteString(`
          <LEDGER NAME="` + vendorName + `" RESERVEDNAME="">
            <OLDAUDITENTRYIDS.LIST TYPE="Number">
              <OLDAUDITENTRYIDS>-1</OLDAUDITENTRYIDS>
            </OLDAUDITENTRYIDS.LIST>
            <GUID></GUID>
            <PARENT>Sundry Creditors</PARENT>
            <LEDGERNAME>` + vendorName + `</LEDGERNAME>
            <LEDGERPHONE>` + escapeXML(vendor.Phone) + `</LEDGERPHONE>
            <LEDGERCONTACT>` + escapeXML(vendor.Email) + `</LEDGERCONTACT>
            <LEDGERADDRESS>` + escapeXML(vendor.Address) + `</LEDGERADDRESS>
            <OPENINGBALANCE>` + openingBalance + `</OPENINGBALANCE>
            <ISCOSTCENTRESON>No</ISCOSTCENTRESON>
            <ISADDABLE>No</ISADDABLE>
            <ISAUDITED>No</ISAUDITED>
            <ISFROMSYSVCH>No</ISFROMSYSVCH>
            <ISDELETED>No</ISDELETED>
            <ISSYSTEM>No</ISSYSTEM>
            <ISEXCLUDEFROMSTOCK>No</ISEXCLUDEFROMSTOCK>
            <ISUPDATINGTARGETID>No</ISUPDATINGTARGETID>
            <ASORIGINAL>Yes</ASORIGINAL>
            <ISRATEINCLUSIVEVAT>No</ISRATEINCLUSIVEVAT>
            <ISPOSINVOICE>No</ISPOSINVOICE>
            <ISINVOICE>No</ISINVOICE>
            <MAILLABEL.LIST>
              <MAILLABEL>General</MAILLABEL>
            </MAILLABEL.LIST>
          </LEDGER>
`)

	for i, entry := range ledger.Entries {
		voucherNumber := escapeXML(entry.Reference)
		if voucherNumber == "" {
			voucherNumber = fmt.Sprintf("VCH%04d", i+1)
		}
		voucherDate := entry.Date.Format("02-01-2006")
		narration := entry.Particulars
		if entry.Details != "" {
			narration += " - " + entry.Details
		}
		narration = escapeXML(narration)
		voucherType := tallyVoucherType(entry.Type)

		deemedPositive := "No"
		amount := "-" + tallyAmount(entry.Credit)
		if entry.Debit > 0 {
			deemedPositive = "Yes"
			amount = tallyAmount(entry.Debit)
		}

		b.WriteString(`
          <VOUCHER REMOTEID="" VCHKEY="" VCHTYPE="` + voucherType + `" ACTION="Create" OBJVIEW="Invoice Voucher View">
            <OLDAUDITENTRYIDS.LIST TYPE="Number">
              <OLDAUDITENTRYIDS>-1</OLDAUDITENTRYIDS>
            </OLDAUDITENTRYIDS.LIST>
            <DATE>` + voucherDate + `</DATE>
            <GUID></GUID>
            <NARRATION>` + narration + `</NARRATION>
            <VOUCHERTYPENAME>` + voucherType + `</VOUCHERTYPENAME>
            <VOUCHERNUMBER>` + voucherNumber + `</VOUCHERNUMBER>
            <PARTYLEDGERNAME>` + vendorName + `</PARTYLEDGERNAME>
            <BASICBASEPARTYNAME>` + vendorName + `</BASICBASEPARTYNAME>
            <PERSISTEDVIEW>Invoice Voucher View</PERSISTEDVIEW>
            <VCHGSTCLASS/>
            <ENTRYTYPE>Item Invoice</ENTRYTYPE>
            <DIFFACTUALQTY>No</DIFFACTUALQTY>
            <AUDITED>No</AUDITED>
            <FORJOBCOSTING>No</FORJOBCOSTING>
            <ISDELETED>No</ISDELETED>
            <ASORIGINAL>Yes</ASORIGINAL>
            <INVOICEDATE>` + voucherDate + `</INVOICEDATE>
            <BASICBUYERNAME>` + vendorName + `</BASICBUYERNAME>
            <ISINVOICE>Yes</ISINVOICE>
            <LEDGERENTRIES.LIST>
              <OLDAUDITENTRYIDS.LIST TYPE="Number">
                <OLDAUDITENTRYIDS>-1</OLDAUDITENTRYIDS>
              </OLDAUDITENTRYIDS.LIST>
              <LEDGERNAME>` + vendorName + `</LEDGERNAME>
              <GSTCLASS/>
              <ISDEEMEDPOSITIVE>` + deemedPositive + `</ISDEEMEDPOSITIVE>
              <LEDGERFROMITEM>No</LEDGERFROMITEM>
              <REMOVEZEROENTRIES>No</REMOVEZEROENTRIES>
              <ISPARTYLEDGER>Yes</ISPARTYLEDGER>
              <ISLASTDEEMEDPOSITIVE>` + deemedPositive + `</ISLASTDEEMEDPOSITIVE>
              <AMOUNT>` + amount + `</AMOUNT>
              <SERVICETAXDETAILS.LIST>       </SERVICETAXDETAILS.LIST>
              <BANKALLOCATIONS.LIST>       </BANKALLOCATIONS.LIST>
              <BILLALLOCATIONS.LIST>       </BILLALLOCATIONS.LIST>
              <INTERESTCOLLECTION.LIST>       </INTERESTCOLLECTION.LIST>
              <OLDAUDITENTRIES.LIST>       </OLDAUDITENTRIES.LIST>
              <ACCOUNTAUDITENTRIES.LIST>       </ACCOUNTAUDITENTRIES.LIST>
              <AUDITENTRIES.LIST>       </AUDITENTRIES.LIST>
              <INPUTCRALLOCS.LIST>       </INPUTCRALLOCS.LIST>
              <DUTYHEADDETAILS.LIST>       </DUTYHEADDETAILS.LIST>
              <EXCISEDUTYHEADDETAILS.LIST>       </EXCISEDUTYHEADDETAILS.LIST>
              <RATEDETAILS.LIST>       </RATEDETAILS.LIST>
              <SUMMARYALLOCS.LIST>       </SUMMARYALLOCS.LIST>
              <STPYMTDETAILS.LIST>       </STPYMTDETAILS.LIST>
              <EXCISEPAYMENTALLOCATIONS.LIST>       </EXCISEPAYMENTALLOCATIONS.LIST>
              <TAXBILLALLOCATIONS.LIST>       </TAXBILLALLOCATIONS.LIST>
              <TAXOBJECTALLOCATIONS.LIST>       </TAXOBJECTALLOCATIONS.LIST>
              <TDSEXPENSEALLOCATIONS.LIST>       </TDSEXPENSEALLOCATIONS.LIST>
              <VATSTATUTORYDETAILS.LIST>       </VATSTATUTORYDETAILS.LIST>
              <COSTTRACKALLOCATIONS.LIST>       </COSTTRACKALLOCATIONS.LIST>
              <REFVOUCHERDETAILS.LIST>       </REFVOUCHERDETAILS.LIST>
              <INVOICEWISEDETAILS.LIST>       </INVOICEWISEDETAILS.LIST>
              <VATITCDETAILS.LIST>       </VATITCDETAILS.LIST>
              <ADVANCETAXDETAILS.LIST>       </ADVANCETAXDETAILS.LIST>
            </LEDGERENTRIES.LIST>
          </VOUCHER>
`)
	}

	b.WriteString(`
        </TALLYMESSAGE>
      </REQUESTDATA>
    </IMPORTDATA>
  </BODY>
</ENVELOPE>`)

	return b.String()
}
