package services

import (
	"testing"
	"time"

	"sitewise/app/models"

	"github.com/stretchr/testify/assert"
)

func allocFor(deliveryID string, amount float64) *models.PaymentAllocation {
	id := deliveryID
	return &models.PaymentAllocation{
		ID:              "alloc-" + deliveryID,
		PaymentID:       "payment-1",
		ObligationType:  models.ObligationDelivery,
		DeliveryID:      &id,
		AllocatedAmount: amount,
	}
}

func TestCalculatePaymentStatus(t *testing.T) {
	obligation := Obligation{ID: "delivery-1", Type: models.ObligationDelivery, TotalAmount: 10000}

	t.Run("no allocations is pending", func(t *testing.T) {
		assert.Equal(t, models.PaymentPending, CalculatePaymentStatus(obligation, nil))
	})

	t.Run("partial allocation", func(t *testing.T) {
		allocations := []*models.PaymentAllocation{allocFor("delivery-1", 6000)}
		assert.Equal(t, models.PaymentPartial, CalculatePaymentStatus(obligation, allocations))
		assert.Equal(t, 6000.0, PaidAmount(obligation, allocations))
		assert.Equal(t, 4000.0, OutstandingAmount(obligation, allocations))
	})

	t.Run("full allocation", func(t *testing.T) {
		allocations := []*models.PaymentAllocation{allocFor("delivery-1", 10000)}
		assert.Equal(t, models.PaymentPaid, CalculatePaymentStatus(obligation, allocations))
		assert.Equal(t, 0.0, OutstandingAmount(obligation, allocations))
	})

	t.Run("overpayment is still paid, outstanding clamped", func(t *testing.T) {
		allocations := []*models.PaymentAllocation{allocFor("delivery-1", 12000)}
		assert.Equal(t, models.PaymentPaid, CalculatePaymentStatus(obligation, allocations))
		assert.Equal(t, 12000.0, PaidAmount(obligation, allocations))
		assert.Equal(t, 0.0, OutstandingAmount(obligation, allocations))
	})

	t.Run("allocations for other obligations are ignored", func(t *testing.T) {
		allocations := []*models.PaymentAllocation{allocFor("delivery-2", 5000)}
		assert.Equal(t, models.PaymentPending, CalculatePaymentStatus(obligation, allocations))
	})

	t.Run("allocations sum across payments", func(t *testing.T) {
		allocations := []*models.PaymentAllocation{
			allocFor("delivery-1", 4000),
			allocFor("delivery-1", 6000),
		}
		assert.Equal(t, models.PaymentPaid, CalculatePaymentStatus(obligation, allocations))
	})
}

func TestOutstandingInvariant(t *testing.T) {
	// outstanding = max(0, total - paid) for any allocation mix
	obligation := Obligation{ID: "delivery-1", Type: models.ObligationDelivery, TotalAmount: 500}
	for _, paid := range []float64{0, 100, 499.99, 500, 750} {
		allocations := []*models.PaymentAllocation{allocFor("delivery-1", paid)}
		want := obligation.TotalAmount - paid
		if want < 0 {
			want = 0
		}
		assert.InDelta(t, want, OutstandingAmount(obligation, allocations), 1e-9)
	}
}

func TestEnhanceDeliveries(t *testing.T) {
	deliveries := []*models.Delivery{
		{ID: "delivery-1", VendorID: "vendor-1", TotalAmount: 10000, DeliveryDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
		{ID: "delivery-2", VendorID: "vendor-1", TotalAmount: 3000, DeliveryDate: time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)},
	}
	allocations := []*models.PaymentAllocation{allocFor("delivery-1", 6000)}

	enhanced := EnhanceDeliveries(deliveries, allocations)
	assert.Len(t, enhanced, 2)

	assert.Equal(t, models.PaymentPartial, enhanced[0].PaymentStatus)
	assert.Equal(t, 6000.0, enhanced[0].PaidAmount)
	assert.Equal(t, 4000.0, enhanced[0].Outstanding)

	assert.Equal(t, models.PaymentPending, enhanced[1].PaymentStatus)
	assert.Equal(t, 0.0, enhanced[1].PaidAmount)
	assert.Equal(t, 3000.0, enhanced[1].Outstanding)
}

func TestEnhanceDeliveriesEmptyInput(t *testing.T) {
	assert.Empty(t, EnhanceDeliveries(nil, nil))
	assert.NotNil(t, EnhanceDeliveries(nil, nil))
}

func TestEnhanceServiceBookings(t *testing.T) {
	id := "booking-1"
	bookings := []*models.ServiceBooking{
		{ID: id, VendorID: "vendor-1", TotalAmount: 8000, StartDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
	}
	allocations := []*models.PaymentAllocation{{
		ID:               "alloc-1",
		PaymentID:        "payment-1",
		ObligationType:   models.ObligationServiceBooking,
		ServiceBookingID: &id,
		AllocatedAmount:  8000,
	}}

	enhanced := EnhanceServiceBookings(bookings, allocations)
	assert.Len(t, enhanced, 1)
	assert.Equal(t, models.PaymentPaid, enhanced[0].PaymentStatus)
	assert.Equal(t, 0.0, enhanced[0].Outstanding)
}
