package services

import (
	"sitewise/app/models"
)

// Obligation is the minimal view of a delivery or service booking the
// payment engine works with. Obligations are never mutated here; paid
// amounts only ever change through new allocation records.
type Obligation struct {
	ID          string
	Type        models.ObligationType
	TotalAmount float64
}

// PaidAmount sums every allocation referencing the obligation. Negative
// allocations, if ever present, pass through arithmetically.
func PaidAmount(o Obligation, allocations []*models.PaymentAllocation) float64 {
	var paid float64
	for _, a := range allocations {
		if a.ObligationType == o.Type && a.ObligationID() == o.ID {
			paid += a.AllocatedAmount
		}
	}
	return paid
}

// OutstandingAmount returns the unpaid remainder, clamped at zero so that
// overpaid obligations report zero outstanding rather than a negative value.
func OutstandingAmount(o Obligation, allocations []*models.PaymentAllocation) float64 {
	outstanding := o.TotalAmount - PaidAmount(o, allocations)
	if outstanding < 0 {
		return 0
	}
	return outstanding
}

// CalculatePaymentStatus derives pending/partial/paid for one obligation.
// Overpayment is reported as paid, not an error; that is a historical fact,
// unlike over-allocation during payment entry which Validate rejects.
func CalculatePaymentStatus(o Obligation, allocations []*models.PaymentAllocation) models.PaymentStatus {
	paid := PaidAmount(o, allocations)
	if paid <= 0 {
		return models.PaymentPending
	}
	if paid >= o.TotalAmount {
		return models.PaymentPaid
	}
	return models.PaymentPartial
}

// EnhanceDeliveries computes payment status, paid and outstanding amounts for
// each delivery in one pass. A nil input yields an empty slice so list views
// never have to guard.
func EnhanceDeliveries(deliveries []*models.Delivery, allocations []*models.PaymentAllocation) []models.DeliveryWithPaymentStatus {
	enhanced := make([]models.DeliveryWithPaymentStatus, 0, len(deliveries))
	for _, d := range deliveries {
		o := Obligation{ID: d.ID, Type: models.ObligationDelivery, TotalAmount: d.TotalAmount}
		enhanced = append(enhanced, models.DeliveryWithPaymentStatus{
			Delivery:      *d,
			PaymentStatus: CalculatePaymentStatus(o, allocations),
			PaidAmount:    PaidAmount(o, allocations),
			Outstanding:   OutstandingAmount(o, allocations),
		})
	}
	return enhanced
}

// EnhanceServiceBookings is the booking counterpart of EnhanceDeliveries.
func EnhanceServiceBookings(bookings []*models.ServiceBooking, allocations []*models.PaymentAllocation) []models.ServiceBookingWithPaymentStatus {
	enhanced := make([]models.ServiceBookingWithPaymentStatus, 0, len(bookings))
	for _, b := range bookings {
		o := Obligation{ID: b.ID, Type: models.ObligationServiceBooking, TotalAmount: b.TotalAmount}
		enhanced = append(enhanced, models.ServiceBookingWithPaymentStatus{
			ServiceBooking: *b,
			PaymentStatus:  CalculatePaymentStatus(o, allocations),
			PaidAmount:     PaidAmount(o, allocations),
			Outstanding:    OutstandingAmount(o, allocations),
		})
	}
	return enhanced
}
