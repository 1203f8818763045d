package models

import "time"

// Vendor represents a supplier of materials or services for a site.
type Vendor struct {
	ID            string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	SiteID        string     `json:"site_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Name          string     `json:"name" gorm:"not null" validate:"required"`
	ContactPerson string     `json:"contact_person,omitempty"`
	Email         string     `json:"email,omitempty"`
	Phone         string     `json:"phone,omitempty" gorm:"type:varchar(20)"`
	Address       string     `json:"address,omitempty" gorm:"type:text"`
	IsActive      bool       `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty" gorm:"index"`
}

// VendorSummary carries the derived financial position of a vendor.
type VendorSummary struct {
	TotalDeliveries   float64 `json:"total_deliveries"`
	BookingProgress   float64 `json:"booking_progress"`
	TotalPaid         float64 `json:"total_paid"`
	CreditNoteBalance float64 `json:"credit_note_balance"`
	Outstanding       float64 `json:"outstanding"`
}
