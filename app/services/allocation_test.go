package services

import (
	"testing"
	"time"

	"sitewise/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLines(amounts ...float64) []AllocationLine {
	lines := make([]AllocationLine, len(amounts))
	for i, amount := range amounts {
		lines[i] = AllocationLine{
			ObligationID:      "delivery-" + string(rune('a'+i)),
			Type:              models.ObligationDelivery,
			Date:              time.Date(2024, 1, i+1, 0, 0, 0, 0, time.UTC),
			TotalAmount:       amount,
			OutstandingAmount: amount,
			State:             models.AllocationUnchecked,
		}
	}
	return lines
}

func TestDistributeFromAmount(t *testing.T) {
	t.Run("partial coverage saturates oldest first", func(t *testing.T) {
		lines := testLines(100, 150, 500)
		DistributeFromAmount(200, lines, nil)

		assert.Equal(t, models.AllocationChecked, lines[0].State)
		assert.Equal(t, 100.0, lines[0].AllocatedAmount)
		assert.Equal(t, models.AllocationPartial, lines[1].State)
		assert.Equal(t, 100.0, lines[1].AllocatedAmount)
		assert.Equal(t, models.AllocationUnchecked, lines[2].State)
		assert.Equal(t, 0.0, lines[2].AllocatedAmount)
	})

	t.Run("exact line boundary", func(t *testing.T) {
		lines := testLines(100, 150, 500)
		DistributeFromAmount(250, lines, nil)

		assert.Equal(t, models.AllocationChecked, lines[0].State)
		assert.Equal(t, 100.0, lines[0].AllocatedAmount)
		assert.Equal(t, models.AllocationChecked, lines[1].State)
		assert.Equal(t, 150.0, lines[1].AllocatedAmount)
		assert.Equal(t, models.AllocationUnchecked, lines[2].State)
	})

	t.Run("credit notes reduce the distributable amount", func(t *testing.T) {
		lines := testLines(100, 150)
		notes := []*models.CreditNote{{ID: "cn-1", Balance: 50}}
		DistributeFromAmount(200, lines, notes)

		assert.Equal(t, models.AllocationChecked, lines[0].State)
		assert.Equal(t, 100.0, lines[0].AllocatedAmount)
		assert.Equal(t, models.AllocationPartial, lines[1].State)
		assert.Equal(t, 50.0, lines[1].AllocatedAmount)
	})

	t.Run("credit notes exceeding amount leave nothing to distribute", func(t *testing.T) {
		lines := testLines(100)
		notes := []*models.CreditNote{{ID: "cn-1", Balance: 300}}
		DistributeFromAmount(200, lines, notes)
		assert.Equal(t, models.AllocationUnchecked, lines[0].State)
		assert.Equal(t, 0.0, lines[0].AllocatedAmount)
	})

	t.Run("zero or negative amount clears all lines", func(t *testing.T) {
		lines := testLines(100, 150)
		DistributeFromAmount(200, lines, nil)
		DistributeFromAmount(0, lines, nil)
		for _, line := range lines {
			assert.Equal(t, models.AllocationUnchecked, line.State)
			assert.Equal(t, 0.0, line.AllocatedAmount)
		}
		DistributeFromAmount(-50, lines, nil)
		assert.Equal(t, 0.0, TotalAllocated(lines))
	})

	t.Run("amount exceeding all outstanding allocates the total outstanding", func(t *testing.T) {
		lines := testLines(100, 150, 500)
		DistributeFromAmount(10000, lines, nil)
		assert.Equal(t, 750.0, TotalAllocated(lines))
		for _, line := range lines {
			assert.Equal(t, models.AllocationChecked, line.State)
		}
	})

	t.Run("total allocated equals min of amount and total outstanding", func(t *testing.T) {
		for _, amount := range []float64{0, 50, 100, 249.5, 250, 750, 5000} {
			lines := testLines(100, 150, 500)
			DistributeFromAmount(amount, lines, nil)
			want := amount
			if want > 750 {
				want = 750
			}
			if want < 0 {
				want = 0
			}
			assert.InDelta(t, want, TotalAllocated(lines), 1e-9, "amount %v", amount)
		}
	})

	t.Run("idempotent under repetition", func(t *testing.T) {
		lines := testLines(100, 150, 500)
		notes := []*models.CreditNote{{ID: "cn-1", Balance: 25}}
		DistributeFromAmount(300, lines, notes)
		first := make([]AllocationLine, len(lines))
		copy(first, lines)
		DistributeFromAmount(300, lines, notes)
		assert.Equal(t, first, lines)
	})

	t.Run("tolerance marks near-full allocations checked", func(t *testing.T) {
		lines := testLines(100)
		lines[0].OutstandingAmount = 100.004
		DistributeFromAmount(100, lines, nil)
		assert.Equal(t, models.AllocationChecked, lines[0].State)
	})
}

func TestRecomputeFromSelections(t *testing.T) {
	lines := testLines(100, 150)
	SetLineAllocation(lines, lines[0].ObligationID, 100)
	SetLineAllocation(lines, lines[1].ObligationID, 60)

	assert.Equal(t, models.AllocationChecked, lines[0].State)
	assert.Equal(t, models.AllocationPartial, lines[1].State)
	assert.Equal(t, 160.0, RecomputeFromSelections(lines, nil))

	notes := []*models.CreditNote{{ID: "cn-1", Balance: 40}}
	assert.Equal(t, 200.0, RecomputeFromSelections(lines, notes))
}

func TestDistributeRecomputeRoundTrip(t *testing.T) {
	// recompute(distribute(amount)) = amount whenever amount <= total outstanding
	for _, amount := range []float64{50, 100, 180, 250, 750} {
		lines := testLines(100, 150, 500)
		DistributeFromAmount(amount, lines, nil)
		assert.InDelta(t, amount, RecomputeFromSelections(lines, nil), 1e-9)
	}
}

func TestPayAllOutstanding(t *testing.T) {
	lines := testLines(100, 150, 500)
	notes := []*models.CreditNote{{ID: "cn-1", Balance: 50}}

	amount := PayAllOutstanding(lines, notes)
	assert.Equal(t, 800.0, amount)
	for _, line := range lines {
		assert.Equal(t, models.AllocationChecked, line.State)
		assert.Equal(t, line.OutstandingAmount, line.AllocatedAmount)
	}
}

func TestValidateAllocations(t *testing.T) {
	t.Run("valid session has no errors", func(t *testing.T) {
		lines := testLines(100, 150)
		DistributeFromAmount(200, lines, nil)
		assert.Empty(t, ValidateAllocations(200, lines))
	})

	t.Run("all violations are reported together", func(t *testing.T) {
		lines := testLines(100)
		errs := ValidateAllocations(0, lines)
		assert.Contains(t, errs, "Payment amount must be greater than 0")
		assert.Contains(t, errs, "Please allocate payment to at least one delivery or service booking")
	})

	t.Run("over-allocation is an error", func(t *testing.T) {
		lines := testLines(100)
		SetLineAllocation(lines, lines[0].ObligationID, 100)
		errs := ValidateAllocations(50, lines)
		assert.Contains(t, errs, "Total allocated amount exceeds payment amount")
	})

	t.Run("per-line excess is reported with its position", func(t *testing.T) {
		lines := testLines(100, 150)
		SetLineAllocation(lines, lines[1].ObligationID, 200)
		errs := ValidateAllocations(500, lines)
		assert.Contains(t, errs, "Allocation 2 exceeds outstanding amount")
	})
}

func TestPersistableAllocations(t *testing.T) {
	lines := testLines(100, 150, 500)
	DistributeFromAmount(200, lines, nil)

	records := PersistableAllocations(lines)
	require.Len(t, records, 2)
	assert.Equal(t, lines[0].ObligationID, records[0].ObligationID)
	assert.Equal(t, models.ObligationDelivery, records[0].Type)
	assert.Equal(t, 100.0, records[0].AllocatedAmount)
	assert.Equal(t, 100.0, records[1].AllocatedAmount)
}

func TestBuildAllocationLines(t *testing.T) {
	paidID := "delivery-paid"
	deliveries := []*models.Delivery{
		{ID: "delivery-new", TotalAmount: 300, DeliveryDate: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)},
		{ID: paidID, TotalAmount: 100, DeliveryDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	bookings := []*models.ServiceBooking{
		{ID: "booking-1", TotalAmount: 400, StartDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
	}
	allocations := []*models.PaymentAllocation{{
		ID:              "alloc-1",
		PaymentID:       "payment-1",
		ObligationType:  models.ObligationDelivery,
		DeliveryID:      &paidID,
		AllocatedAmount: 100,
	}}

	lines := BuildAllocationLines(deliveries, bookings, allocations)
	require.Len(t, lines, 2, "fully paid obligations produce no line")

	// sorted oldest first across both obligation kinds
	assert.Equal(t, "booking-1", lines[0].ObligationID)
	assert.Equal(t, models.ObligationServiceBooking, lines[0].Type)
	assert.Equal(t, "delivery-new", lines[1].ObligationID)
	for _, line := range lines {
		assert.Equal(t, models.AllocationUnchecked, line.State)
		assert.Equal(t, 0.0, line.AllocatedAmount)
	}
}
