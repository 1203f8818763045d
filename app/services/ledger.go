package services

import (
	"fmt"
	"sort"
	"time"

	"sitewise/app/models"
)

// LedgerEntry is one dated, signed line in a vendor's running-balance
// statement. Entries are built fresh on every request and never persisted.
type LedgerEntry struct {
	ID             string                 `json:"id"`
	Type           models.LedgerEntryType `json:"type"`
	Date           time.Time              `json:"date"`
	Particulars    string                 `json:"particulars"`
	Details        string                 `json:"details,omitempty"`
	Reference      string                 `json:"reference"`
	Debit          float64                `json:"debit"`
	Credit         float64                `json:"credit"`
	RunningBalance float64                `json:"running_balance"`
}

// LedgerTotals summarizes a built ledger. FinalBalance is positive when the
// vendor is still owed money.
type LedgerTotals struct {
	TotalDebits  float64 `json:"total_debits"`
	TotalCredits float64 `json:"total_credits"`
	FinalBalance float64 `json:"final_balance"`
}

// VendorLedger is the entry list plus totals handed to the exporters.
type VendorLedger struct {
	Vendor  *models.Vendor `json:"vendor"`
	Entries []LedgerEntry  `json:"entries"`
	Totals  LedgerTotals   `json:"totals"`
}

// idSuffix returns the last 6 characters of an id for fallback references.
func idSuffix(id string) string {
	if len(id) <= 6 {
		return id
	}
	return id[len(id)-6:]
}

// BuildVendorLedger merges a vendor's deliveries, payments, returns and
// credit notes into a single chronological statement. Debits increase the
// liability toward the vendor, credits decrease it. Construction order is
// deliveries, returns, credit notes, payments; the stable date sort keeps
// that order for same-day entries, which is what makes the running balance
// deterministic.
func BuildVendorLedger(vendor *models.Vendor, deliveries []*models.Delivery, payments []*models.Payment, returns []*models.VendorReturn, creditNotes []*models.CreditNote) VendorLedger {
	entries := make([]LedgerEntry, 0, len(deliveries)+len(payments)+len(returns)+len(creditNotes))

	for _, d := range deliveries {
		ref := d.DeliveryReference
		if ref == "" {
			ref = idSuffix(d.ID)
		}
		entries = append(entries, LedgerEntry{
			ID:          d.ID,
			Type:        models.LedgerDelivery,
			Date:        d.DeliveryDate,
			Particulars: fmt.Sprintf("Invoice: %s", ref),
			Details:     d.Notes,
			Reference:   d.DeliveryReference,
			Debit:       d.TotalAmount,
		})
	}

	for _, r := range returns {
		if r.Status != models.ReturnCompleted && r.Status != models.ReturnRefunded {
			continue
		}
		particulars := "Credit Note for Return"
		entryType := models.LedgerCreditNote
		if r.ProcessingOption == models.ProcessRefund {
			particulars = "Refund for Return"
			entryType = models.LedgerRefund
		}
		if r.Reason != "" {
			particulars += " - " + r.Reason
		}
		entries = append(entries, LedgerEntry{
			ID:          r.ID,
			Type:        entryType,
			Date:        r.EffectiveDate(),
			Particulars: particulars,
			Reference:   fmt.Sprintf("RET-%s", idSuffix(r.ID)),
			Credit:      r.TotalReturnAmount,
		})
	}

	for _, cn := range creditNotes {
		if cn.CreditAmount <= 0 {
			continue
		}
		// A return processed as a credit note already produced an entry
		// above; the note recording the same economic event is suppressed so
		// it is not counted twice.
		if returnMatchesCreditNote(returns, cn) {
			continue
		}
		ref := cn.Reference
		if ref == "" {
			ref = fmt.Sprintf("CN-%s", idSuffix(cn.ID))
		}
		particulars := fmt.Sprintf("Credit Note: %s", ref)
		if cn.Reason != "" {
			particulars += " - " + cn.Reason
		}
		entries = append(entries, LedgerEntry{
			ID:          cn.ID,
			Type:        models.LedgerCreditNote,
			Date:        cn.IssueDate,
			Particulars: particulars,
			Reference:   ref,
			Credit:      cn.CreditAmount,
		})
	}

	for _, p := range payments {
		ref := p.Reference
		if ref == "" {
			ref = "Bank Transfer"
		}
		particulars := fmt.Sprintf("Payment: %s", ref)
		if p.Notes != "" {
			particulars += " - " + p.Notes
		}
		entries = append(entries, LedgerEntry{
			ID:          p.ID,
			Type:        models.LedgerPayment,
			Date:        p.PaymentDate,
			Particulars: particulars,
			Details:     p.Notes,
			Reference:   p.Reference,
			Credit:      p.Amount,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})

	var balance, totalDebits, totalCredits float64
	for i := range entries {
		balance += entries[i].Debit - entries[i].Credit
		entries[i].RunningBalance = balance
		totalDebits += entries[i].Debit
		totalCredits += entries[i].Credit
	}

	return VendorLedger{
		Vendor:  vendor,
		Entries: entries,
		Totals: LedgerTotals{
			TotalDebits:  totalDebits,
			TotalCredits: totalCredits,
			FinalBalance: totalDebits - totalCredits,
		},
	}
}

// returnMatchesCreditNote reports whether the note records the same economic
// event as a credit_note-processed return (same reason and amount).
func returnMatchesCreditNote(returns []*models.VendorReturn, cn *models.CreditNote) bool {
	for _, r := range returns {
		if r.Status != models.ReturnCompleted && r.Status != models.ReturnRefunded {
			continue
		}
		if r.ProcessingOption == models.ProcessCreditNote &&
			r.Reason == cn.Reason &&
			r.TotalReturnAmount == cn.CreditAmount {
			return true
		}
	}
	return false
}

// FilteredLedger is a date-ranged view of a ledger. Entries before the range
// fold into the opening balance; running balances are recomputed from it.
type FilteredLedger struct {
	Entries           []LedgerEntry `json:"entries"`
	OpeningBalance    float64       `json:"opening_balance"`
	HasOpeningBalance bool          `json:"has_opening_balance"`
	Totals            LedgerTotals  `json:"totals"`
}

// FilterLedgerByDate restricts a built ledger to [from, to]. A nil from keeps
// everything from the beginning; a nil to keeps everything up to today. The
// to bound is inclusive of the whole day.
func FilterLedgerByDate(ledger VendorLedger, from, to *time.Time) FilteredLedger {
	var openingBalance float64
	hasOpening := from != nil
	filtered := make([]LedgerEntry, 0, len(ledger.Entries))

	for _, e := range ledger.Entries {
		if from != nil && e.Date.Before(*from) {
			openingBalance += e.Debit - e.Credit
			continue
		}
		if to != nil {
			endOfDay := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 0, to.Location())
			if e.Date.After(endOfDay) {
				continue
			}
		}
		filtered = append(filtered, e)
	}

	balance := openingBalance
	var totalDebits, totalCredits float64
	for i := range filtered {
		balance += filtered[i].Debit - filtered[i].Credit
		filtered[i].RunningBalance = balance
		totalDebits += filtered[i].Debit
		totalCredits += filtered[i].Credit
	}

	return FilteredLedger{
		Entries:           filtered,
		OpeningBalance:    openingBalance,
		HasOpeningBalance: hasOpening,
		Totals: LedgerTotals{
			TotalDebits:  totalDebits,
			TotalCredits: totalCredits,
			FinalBalance: openingBalance + totalDebits - totalCredits,
		},
	}
}
