package models

import "time"

// ServiceBooking represents a vendor service engagement, creating a payable obligation.
type ServiceBooking struct {
	ID               string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	SiteID           string     `json:"site_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	VendorID         string     `json:"vendor_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	ServiceName      string     `json:"service_name" gorm:"not null" validate:"required"`
	StartDate        time.Time  `json:"start_date" gorm:"not null;index;type:date" validate:"required"`
	EndDate          *time.Time `json:"end_date,omitempty" gorm:"type:date"`
	TotalAmount      float64    `json:"total_amount" gorm:"not null;type:decimal(12,2)" validate:"required,gt=0"`
	PercentCompleted float64    `json:"percent_completed" gorm:"default:0" validate:"gte=0,lte=100"`
	Notes            string     `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt        time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	Vendor *Vendor `json:"vendor,omitempty" gorm:"foreignKey:VendorID;references:ID"`
}

// ServiceBookingWithPaymentStatus is a booking enhanced with derived payment fields.
type ServiceBookingWithPaymentStatus struct {
	ServiceBooking
	PaymentStatus PaymentStatus `json:"payment_status"`
	PaidAmount    float64       `json:"paid_amount"`
	Outstanding   float64       `json:"outstanding"`
}
