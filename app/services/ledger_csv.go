package services

import (
	"fmt"
	"strings"
	"time"
)

// LedgerExportLabels carries the localized column and label strings for the
// tabular and PDF exports. Callers resolve them from their locale bundle.
type LedgerExportLabels struct {
	VendorLedger   string
	Vendor         string
	Contact        string
	Generated      string
	FilterPeriod   string
	Beginning      string
	Today          string
	Date           string
	Particulars    string
	Reference      string
	Debit          string
	Credit         string
	Balance        string
	OpeningBalance string
	Totals         string
	Outstanding    string
	CreditBalance  string
	FinalBalance   string
}

// DefaultLedgerExportLabels returns the English label set.
func DefaultLedgerExportLabels() LedgerExportLabels {
	return LedgerExportLabels{
		VendorLedger:   "Vendor Ledger",
		Vendor:         "Vendor",
		Contact:        "Contact",
		Generated:      "Generated",
		FilterPeriod:   "Filter Period",
		Beginning:      "Beginning",
		Today:          "Today",
		Date:           "Date",
		Particulars:    "Particulars",
		Reference:      "Reference",
		Debit:          "Debit",
		Credit:         "Credit",
		Balance:        "Balance",
		OpeningBalance: "Opening Balance",
		Totals:         "Totals",
		Outstanding:    "Outstanding",
		CreditBalance:  "Credit Balance",
		FinalBalance:   "Final Balance",
	}
}

// LedgerCSVOptions configures one CSV export.
type LedgerCSVOptions struct {
	Ledger         FilteredLedger
	FilterFromDate string
	FilterToDate   string
	Labels         LedgerExportLabels
	Now            time.Time
}

// escapeCSV quotes a value only when it contains a comma, quote or newline,
// doubling internal quotes. Plain values are emitted bare, matching the
// delimited-text format downstream spreadsheets expect.
func escapeCSV(value string) string {
	if value == "" {
		return ""
	}
	if strings.ContainsAny(value, ",\"\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}

// crDr renders a balance with the Cr/Dr suffix: a non-negative balance means
// the vendor is owed money (Cr), a negative one means the vendor owes us (Dr).
func crDr(balance float64) string {
	if balance >= 0 {
		return fmt.Sprintf("%.2f Cr", balance)
	}
	return fmt.Sprintf("%.2f Dr", -balance)
}

// GenerateLedgerCSV renders a filtered ledger as delimited text: header row,
// optional opening-balance row, one row per entry, totals row, then trailing
// metadata rows (filter period, generation date, final balance with its
// status label).
func GenerateLedgerCSV(opts LedgerCSVOptions) string {
	t := opts.Labels
	ledger := opts.Ledger
	hasDateFilter := opts.FilterFromDate != "" || opts.FilterToDate != ""

	var rows [][]string
	rows = append(rows, []string{t.Date, t.Particulars, t.Reference, t.Debit, t.Credit, t.Balance})

	if ledger.HasOpeningBalance {
		rows = append(rows, []string{
			opts.FilterFromDate, t.OpeningBalance, "", "", "", crDr(ledger.OpeningBalance),
		})
	}

	for _, e := range ledger.Entries {
		debit := ""
		if e.Debit > 0 {
			debit = fmt.Sprintf("%.2f", e.Debit)
		}
		credit := ""
		if e.Credit > 0 {
			credit = fmt.Sprintf("%.2f", e.Credit)
		}
		rows = append(rows, []string{
			e.Date.Format("2006-01-02"),
			escapeCSV(e.Particulars),
			escapeCSV(e.Reference),
			debit,
			credit,
			crDr(e.RunningBalance),
		})
	}

	rows = append(rows, []string{
		"", t.Totals, "",
		fmt.Sprintf("%.2f", ledger.Totals.TotalDebits),
		fmt.Sprintf("%.2f", ledger.Totals.TotalCredits),
		"",
	})
	rows = append(rows, []string{"", "", "", "", "", ""})

	if hasDateFilter {
		from := opts.FilterFromDate
		if from == "" {
			from = t.Beginning
		}
		to := opts.FilterToDate
		if to == "" {
			to = t.Today
		}
		rows = append(rows, []string{t.FilterPeriod, from + " - " + to, "", "", "", ""})
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	rows = append(rows, []string{t.Generated, now.Format("2006-01-02"), "", "", "", ""})

	status := t.Outstanding
	if ledger.Totals.FinalBalance < 0 {
		status = t.CreditBalance
	}
	finalDisplay := fmt.Sprintf("%s (%s)", crDr(ledger.Totals.FinalBalance), status)
	rows = append(rows, []string{t.FinalBalance, escapeCSV(finalDisplay), "", "", "", ""})

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Join(row, ","))
	}
	return b.String()
}
