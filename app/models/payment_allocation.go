package models

import "time"

// PaymentAllocation links part of a payment to one obligation. Records are
// append-only; paid amounts are always derived by summing allocations, never
// stored on the obligation itself.
type PaymentAllocation struct {
	ID               string         `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	PaymentID        string         `json:"payment_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	ObligationType   ObligationType `json:"obligation_type" gorm:"not null;type:varchar(20)" validate:"required"`
	DeliveryID       *string        `json:"delivery_id,omitempty" gorm:"index;type:uuid"`
	ServiceBookingID *string        `json:"service_booking_id,omitempty" gorm:"index;type:uuid"`
	AllocatedAmount  float64        `json:"allocated_amount" gorm:"not null;type:decimal(12,2)" validate:"required,gt=0"`
	CreatedAt        time.Time      `json:"created_at" gorm:"autoCreateTime"`

	Payment *Payment `json:"payment,omitempty" gorm:"foreignKey:PaymentID;references:ID"`
}

// ObligationID returns the id of whichever obligation this allocation targets.
func (a *PaymentAllocation) ObligationID() string {
	switch a.ObligationType {
	case ObligationDelivery:
		if a.DeliveryID != nil {
			return *a.DeliveryID
		}
	case ObligationServiceBooking:
		if a.ServiceBookingID != nil {
			return *a.ServiceBookingID
		}
	}
	return ""
}
