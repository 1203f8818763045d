package services

import (
	"testing"
	"time"

	"sitewise/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testVendor() *models.Vendor {
	return &models.Vendor{ID: "vendor-1", Name: "Acme Suppliers", ContactPerson: "Ravi Kumar"}
}

func TestBuildVendorLedgerBasic(t *testing.T) {
	deliveries := []*models.Delivery{
		{ID: "delivery-000001", VendorID: "vendor-1", TotalAmount: 5000, DeliveryDate: day(2024, 1, 15), DeliveryReference: "INV-2024-001"},
	}
	payments := []*models.Payment{
		{ID: "payment-1", VendorID: "vendor-1", Amount: 3000, PaymentDate: day(2024, 1, 20), Reference: "PAY-001"},
	}

	ledger := BuildVendorLedger(testVendor(), deliveries, payments, nil, nil)
	require.Len(t, ledger.Entries, 2)

	assert.Equal(t, day(2024, 1, 15), ledger.Entries[0].Date)
	assert.Equal(t, 5000.0, ledger.Entries[0].Debit)
	assert.Equal(t, 5000.0, ledger.Entries[0].RunningBalance)
	assert.Equal(t, "Invoice: INV-2024-001", ledger.Entries[0].Particulars)

	assert.Equal(t, day(2024, 1, 20), ledger.Entries[1].Date)
	assert.Equal(t, 3000.0, ledger.Entries[1].Credit)
	assert.Equal(t, 2000.0, ledger.Entries[1].RunningBalance)

	assert.Equal(t, 5000.0, ledger.Totals.TotalDebits)
	assert.Equal(t, 3000.0, ledger.Totals.TotalCredits)
	assert.Equal(t, 2000.0, ledger.Totals.FinalBalance)
}

func TestBuildVendorLedgerSortsByDate(t *testing.T) {
	deliveries := []*models.Delivery{
		{ID: "d-3", TotalAmount: 1000, DeliveryDate: day(2024, 1, 15)},
		{ID: "d-1", TotalAmount: 2000, DeliveryDate: day(2024, 1, 1)},
		{ID: "d-2", TotalAmount: 1500, DeliveryDate: day(2024, 1, 10)},
	}

	ledger := BuildVendorLedger(testVendor(), deliveries, nil, nil, nil)
	require.Len(t, ledger.Entries, 3)
	assert.Equal(t, "d-1", ledger.Entries[0].ID)
	assert.Equal(t, "d-2", ledger.Entries[1].ID)
	assert.Equal(t, "d-3", ledger.Entries[2].ID)

	// entries are non-decreasing by date and the last running balance
	// matches the totals
	for i := 1; i < len(ledger.Entries); i++ {
		assert.False(t, ledger.Entries[i].Date.Before(ledger.Entries[i-1].Date))
	}
	last := ledger.Entries[len(ledger.Entries)-1]
	assert.Equal(t, ledger.Totals.TotalDebits-ledger.Totals.TotalCredits, last.RunningBalance)
}

func TestBuildVendorLedgerSameDayKeepsConstructionOrder(t *testing.T) {
	deliveries := []*models.Delivery{
		{ID: "d-1", TotalAmount: 1000, DeliveryDate: day(2024, 1, 15)},
	}
	payments := []*models.Payment{
		{ID: "p-1", Amount: 500, PaymentDate: day(2024, 1, 15)},
	}

	ledger := BuildVendorLedger(testVendor(), deliveries, payments, nil, nil)
	require.Len(t, ledger.Entries, 2)
	// delivery before payment on the same date, so the balance never dips
	assert.Equal(t, "d-1", ledger.Entries[0].ID)
	assert.Equal(t, "p-1", ledger.Entries[1].ID)
	assert.Equal(t, 500.0, ledger.Entries[1].RunningBalance)
}

func TestBuildVendorLedgerReturns(t *testing.T) {
	completion := day(2024, 1, 20)

	t.Run("completed credit note return credits the ledger", func(t *testing.T) {
		returns := []*models.VendorReturn{{
			ID:                "return-1",
			Status:            models.ReturnCompleted,
			ProcessingOption:  models.ProcessCreditNote,
			TotalReturnAmount: 500,
			Reason:            "Damaged goods",
			ReturnDate:        day(2024, 1, 18),
			CompletionDate:    &completion,
		}}

		ledger := BuildVendorLedger(testVendor(), nil, nil, returns, nil)
		require.Len(t, ledger.Entries, 1)
		assert.Equal(t, models.LedgerCreditNote, ledger.Entries[0].Type)
		assert.Equal(t, 500.0, ledger.Entries[0].Credit)
		assert.Equal(t, completion, ledger.Entries[0].Date)
		assert.Equal(t, "Credit Note for Return - Damaged goods", ledger.Entries[0].Particulars)
	})

	t.Run("refunded return credits the ledger with refund label", func(t *testing.T) {
		returns := []*models.VendorReturn{{
			ID:                "return-2",
			Status:            models.ReturnRefunded,
			ProcessingOption:  models.ProcessRefund,
			TotalReturnAmount: 800,
			ReturnDate:        day(2024, 1, 18),
		}}

		ledger := BuildVendorLedger(testVendor(), nil, nil, returns, nil)
		require.Len(t, ledger.Entries, 1)
		assert.Equal(t, models.LedgerRefund, ledger.Entries[0].Type)
		assert.Equal(t, 800.0, ledger.Entries[0].Credit)
		// no completion date recorded, falls back to the return date
		assert.Equal(t, day(2024, 1, 18), ledger.Entries[0].Date)
	})

	t.Run("pending returns produce no entry", func(t *testing.T) {
		returns := []*models.VendorReturn{{
			ID:                "return-3",
			Status:            models.ReturnInitiated,
			TotalReturnAmount: 900,
			ReturnDate:        day(2024, 1, 18),
		}}
		ledger := BuildVendorLedger(testVendor(), nil, nil, returns, nil)
		assert.Empty(t, ledger.Entries)
	})
}

func TestBuildVendorLedgerCreditNoteSuppression(t *testing.T) {
	completion := day(2024, 1, 20)
	returns := []*models.VendorReturn{{
		ID:                "return-1",
		Status:            models.ReturnCompleted,
		ProcessingOption:  models.ProcessCreditNote,
		TotalReturnAmount: 500,
		Reason:            "Damaged goods",
		ReturnDate:        day(2024, 1, 18),
		CompletionDate:    &completion,
	}}
	creditNotes := []*models.CreditNote{
		// records the same event as the return: suppressed
		{ID: "cn-1", CreditAmount: 500, Balance: 500, Reason: "Damaged goods", IssueDate: day(2024, 1, 20)},
		// different reason: kept
		{ID: "cn-2", CreditAmount: 500, Balance: 500, Reason: "Price adjustment", IssueDate: day(2024, 1, 22)},
		// zero amount: never emitted
		{ID: "cn-3", CreditAmount: 0, Balance: 0, Reason: "Void", IssueDate: day(2024, 1, 23)},
	}

	ledger := BuildVendorLedger(testVendor(), nil, nil, returns, creditNotes)
	require.Len(t, ledger.Entries, 2)
	assert.Equal(t, "return-1", ledger.Entries[0].ID)
	assert.Equal(t, "cn-2", ledger.Entries[1].ID)
	assert.Equal(t, 1000.0, ledger.Totals.TotalCredits)
}

func TestBuildVendorLedgerParticularsFallbacks(t *testing.T) {
	deliveries := []*models.Delivery{
		{ID: "delivery123456", TotalAmount: 100, DeliveryDate: day(2024, 1, 5)},
	}
	payments := []*models.Payment{
		{ID: "p-1", Amount: 50, PaymentDate: day(2024, 1, 6), Notes: "Monthly payment"},
	}

	ledger := BuildVendorLedger(testVendor(), deliveries, payments, nil, nil)
	require.Len(t, ledger.Entries, 2)
	assert.Equal(t, "Invoice: 123456", ledger.Entries[0].Particulars)
	assert.Equal(t, "Payment: Bank Transfer - Monthly payment", ledger.Entries[1].Particulars)
}

func TestFilterLedgerByDate(t *testing.T) {
	deliveries := []*models.Delivery{
		{ID: "d-1", TotalAmount: 5000, DeliveryDate: day(2024, 1, 5)},
		{ID: "d-2", TotalAmount: 3000, DeliveryDate: day(2024, 1, 15)},
		{ID: "d-3", TotalAmount: 2000, DeliveryDate: day(2024, 1, 25)},
	}
	payments := []*models.Payment{
		{ID: "p-1", Amount: 2000, PaymentDate: day(2024, 1, 10)},
		{ID: "p-2", Amount: 1500, PaymentDate: day(2024, 1, 20)},
		{ID: "p-3", Amount: 3000, PaymentDate: day(2024, 1, 30)},
	}
	ledger := BuildVendorLedger(testVendor(), deliveries, payments, nil, nil)

	t.Run("no bounds keeps everything", func(t *testing.T) {
		view := FilterLedgerByDate(ledger, nil, nil)
		assert.Len(t, view.Entries, 6)
		assert.False(t, view.HasOpeningBalance)
		assert.Equal(t, 0.0, view.OpeningBalance)
		assert.Equal(t, ledger.Totals.FinalBalance, view.Totals.FinalBalance)
	})

	t.Run("from bound folds earlier entries into the opening balance", func(t *testing.T) {
		from := day(2024, 1, 15)
		view := FilterLedgerByDate(ledger, &from, nil)

		require.True(t, view.HasOpeningBalance)
		// 5000 debit - 2000 credit before Jan 15
		assert.Equal(t, 3000.0, view.OpeningBalance)
		require.Len(t, view.Entries, 4)
		// running balances recomputed from the opening balance
		assert.Equal(t, 6000.0, view.Entries[0].RunningBalance)
		assert.Equal(t, 4500.0, view.Entries[1].RunningBalance)
	})

	t.Run("to bound is inclusive of the whole day", func(t *testing.T) {
		to := day(2024, 1, 20)
		view := FilterLedgerByDate(ledger, nil, &to)
		assert.Len(t, view.Entries, 4)
	})

	t.Run("range view final balance", func(t *testing.T) {
		from := day(2024, 1, 15)
		to := day(2024, 1, 25)
		view := FilterLedgerByDate(ledger, &from, &to)

		require.Len(t, view.Entries, 3)
		assert.Equal(t, 3000.0, view.OpeningBalance)
		assert.Equal(t, 6500.0, view.Entries[2].RunningBalance)
		assert.Equal(t, 6500.0, view.Totals.FinalBalance)
	})

	t.Run("from after all entries folds everything", func(t *testing.T) {
		from := day(2024, 2, 1)
		view := FilterLedgerByDate(ledger, &from, nil)
		assert.Empty(t, view.Entries)
		assert.Equal(t, 3500.0, view.OpeningBalance)
	})
}

func TestBuildVendorLedgerZeroDatesSortFirst(t *testing.T) {
	// malformed/missing dates arrive as zero values and simply sort first;
	// the builder does not reject them
	deliveries := []*models.Delivery{
		{ID: "d-dated", TotalAmount: 100, DeliveryDate: day(2024, 1, 5)},
		{ID: "d-zero", TotalAmount: 200},
	}
	ledger := BuildVendorLedger(testVendor(), deliveries, nil, nil, nil)
	require.Len(t, ledger.Entries, 2)
	assert.Equal(t, "d-zero", ledger.Entries[0].ID)
}
