package models

import "time"

// Delivery represents goods received from a vendor, creating a payable obligation.
type Delivery struct {
	ID                string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	SiteID            string     `json:"site_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	VendorID          string     `json:"vendor_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	DeliveryDate      time.Time  `json:"delivery_date" gorm:"not null;index;type:date" validate:"required"`
	DeliveryReference string     `json:"delivery_reference,omitempty"`
	TotalAmount       float64    `json:"total_amount" gorm:"not null;type:decimal(12,2)" validate:"required,gt=0"`
	Notes             string     `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt         time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt         *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	Vendor *Vendor `json:"vendor,omitempty" gorm:"foreignKey:VendorID;references:ID"`
}

// DeliveryWithPaymentStatus is a delivery enhanced with derived payment fields.
type DeliveryWithPaymentStatus struct {
	Delivery
	PaymentStatus PaymentStatus `json:"payment_status"`
	PaidAmount    float64       `json:"paid_amount"`
	Outstanding   float64       `json:"outstanding"`
}
