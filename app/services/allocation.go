package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"sitewise/app/models"
)

// amountTolerance is one currency minor unit. Allocation amounts originate
// from user-typed decimals and running sums, so every "fully allocated"
// comparison uses this absolute tolerance instead of exact equality.
const amountTolerance = 0.01

// AllocationLine is the transient per-session view of one obligation during
// payment entry. Lines live only for the duration of one payment form and are
// discarded on submit or reset.
type AllocationLine struct {
	ObligationID      string                 `json:"obligation_id"`
	Type              models.ObligationType  `json:"type"`
	Date              time.Time              `json:"date"`
	TotalAmount       float64                `json:"total_amount"`
	PaidAmount        float64                `json:"paid_amount"`
	OutstandingAmount float64                `json:"outstanding_amount"`
	AllocatedAmount   float64                `json:"allocated_amount"`
	State             models.AllocationState `json:"state"`
}

// PersistableAllocation is the projection of a funded line handed to the
// persistence layer for atomic write-back with its payment.
type PersistableAllocation struct {
	ObligationID    string                `json:"id"`
	Type            models.ObligationType `json:"type"`
	AllocatedAmount float64               `json:"allocated_amount"`
}

// BuildAllocationLines creates the session line list for one vendor from its
// open obligations, sorted oldest first (deliveries by delivery date,
// bookings by start date). Fully paid obligations produce no line.
func BuildAllocationLines(deliveries []*models.Delivery, bookings []*models.ServiceBooking, allocations []*models.PaymentAllocation) []AllocationLine {
	lines := make([]AllocationLine, 0, len(deliveries)+len(bookings))

	for _, d := range deliveries {
		o := Obligation{ID: d.ID, Type: models.ObligationDelivery, TotalAmount: d.TotalAmount}
		outstanding := OutstandingAmount(o, allocations)
		if outstanding <= 0 {
			continue
		}
		lines = append(lines, AllocationLine{
			ObligationID:      d.ID,
			Type:              models.ObligationDelivery,
			Date:              d.DeliveryDate,
			TotalAmount:       d.TotalAmount,
			PaidAmount:        PaidAmount(o, allocations),
			OutstandingAmount: outstanding,
			AllocatedAmount:   0,
			State:             models.AllocationUnchecked,
		})
	}

	for _, b := range bookings {
		o := Obligation{ID: b.ID, Type: models.ObligationServiceBooking, TotalAmount: b.TotalAmount}
		outstanding := OutstandingAmount(o, allocations)
		if outstanding <= 0 {
			continue
		}
		lines = append(lines, AllocationLine{
			ObligationID:      b.ID,
			Type:              models.ObligationServiceBooking,
			Date:              b.StartDate,
			TotalAmount:       b.TotalAmount,
			PaidAmount:        PaidAmount(o, allocations),
			OutstandingAmount: outstanding,
			AllocatedAmount:   0,
			State:             models.AllocationUnchecked,
		})
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Date.Before(lines[j].Date)
	})
	return lines
}

// CreditNoteAmount sums the remaining balance of the selected credit notes.
func CreditNoteAmount(selected []*models.CreditNote) float64 {
	var total float64
	for _, cn := range selected {
		total += cn.Balance
	}
	return total
}

// lineState derives the tri-state from an allocated amount.
func lineState(allocated, outstanding float64) models.AllocationState {
	if allocated == 0 {
		return models.AllocationUnchecked
	}
	if math.Abs(allocated-outstanding) < amountTolerance {
		return models.AllocationChecked
	}
	return models.AllocationPartial
}

// DistributeFromAmount spreads a payment amount across the lines in their
// given order: selected credit notes are consumed first, then each line
// receives min(remaining, outstanding) until the remainder runs out. Earlier
// lines are always saturated before later ones get anything; this is a
// deliberate oldest-obligation-first policy, not a balanced split. Every call
// fully resets the lines first, so redistribution on each keystroke never
// accumulates state. A non-positive amount simply clears all lines.
func DistributeFromAmount(amount float64, lines []AllocationLine, selected []*models.CreditNote) {
	for i := range lines {
		lines[i].AllocatedAmount = 0
		lines[i].State = models.AllocationUnchecked
	}
	if amount <= 0 {
		return
	}

	remaining := amount - CreditNoteAmount(selected)
	if remaining < 0 {
		remaining = 0
	}

	for i := range lines {
		if remaining <= 0 {
			break
		}
		take := math.Min(remaining, lines[i].OutstandingAmount)
		if take > 0 {
			lines[i].AllocatedAmount = take
			lines[i].State = lineState(take, lines[i].OutstandingAmount)
			remaining -= take
		}
	}
}

// RecomputeFromSelections is the dual of DistributeFromAmount: after the user
// toggles individual lines, the payment amount is derived from the lines plus
// the selected credit notes. The caller invokes whichever direction matches
// the control the user touched, so no driving-direction flag is needed.
func RecomputeFromSelections(lines []AllocationLine, selected []*models.CreditNote) float64 {
	return TotalAllocated(lines) + CreditNoteAmount(selected)
}

// TotalAllocated sums the allocated amount across all lines.
func TotalAllocated(lines []AllocationLine) float64 {
	var total float64
	for i := range lines {
		total += lines[i].AllocatedAmount
	}
	return total
}

// TotalOutstanding sums the outstanding amount across all lines.
func TotalOutstanding(lines []AllocationLine) float64 {
	var total float64
	for i := range lines {
		total += lines[i].OutstandingAmount
	}
	return total
}

// SetLineAllocation applies a manual edit to a single line and derives its
// state from the tolerance rule.
func SetLineAllocation(lines []AllocationLine, obligationID string, amount float64) {
	for i := range lines {
		if lines[i].ObligationID == obligationID {
			lines[i].AllocatedAmount = amount
			lines[i].State = lineState(amount, lines[i].OutstandingAmount)
			return
		}
	}
}

// PayAllOutstanding checks every line at its full outstanding amount and
// returns the payment amount covering all of it plus the credit notes. It is
// a convenience shortcut, not a special path through the distributor.
func PayAllOutstanding(lines []AllocationLine, selected []*models.CreditNote) float64 {
	for i := range lines {
		lines[i].AllocatedAmount = lines[i].OutstandingAmount
		lines[i].State = models.AllocationChecked
	}
	return TotalOutstanding(lines) + CreditNoteAmount(selected)
}

// ValidateAllocations checks a payment entry session before submission. All
// violated rules are reported together as user-facing messages; the caller
// decides whether to block. Over-allocation is an error here even though
// overpayment at the obligation level is merely reported as paid.
func ValidateAllocations(amount float64, lines []AllocationLine) []string {
	var errs []string

	if amount <= 0 {
		errs = append(errs, "Payment amount must be greater than 0")
	}
	if TotalAllocated(lines) > amount {
		errs = append(errs, "Total allocated amount exceeds payment amount")
	}
	if TotalAllocated(lines) == 0 {
		errs = append(errs, "Please allocate payment to at least one delivery or service booking")
	}
	for i := range lines {
		if lines[i].AllocatedAmount > lines[i].OutstandingAmount {
			errs = append(errs, fmt.Sprintf("Allocation %d exceeds outstanding amount", i+1))
		}
	}
	return errs
}

// PersistableAllocations projects the funded lines into the records the
// persistence layer writes alongside the payment. Unfunded lines are dropped.
func PersistableAllocations(lines []AllocationLine) []PersistableAllocation {
	records := make([]PersistableAllocation, 0, len(lines))
	for i := range lines {
		if lines[i].AllocatedAmount > 0 {
			records = append(records, PersistableAllocation{
				ObligationID:    lines[i].ObligationID,
				Type:            lines[i].Type,
				AllocatedAmount: lines[i].AllocatedAmount,
			})
		}
	}
	return records
}
