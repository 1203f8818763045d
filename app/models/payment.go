package models

import "time"

// Payment represents money paid to a vendor, split across obligations by allocations.
type Payment struct {
	ID            string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	SiteID        string     `json:"site_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	VendorID      string     `json:"vendor_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	AccountID     string     `json:"account_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Amount        float64    `json:"amount" gorm:"not null;type:decimal(12,2)" validate:"required,gt=0"`
	PaymentDate   time.Time  `json:"payment_date" gorm:"not null;index;type:date" validate:"required"`
	Reference     string     `json:"reference,omitempty"`
	Notes         string     `json:"notes,omitempty" gorm:"type:text"`
	CreditNoteIDs []string   `json:"credit_notes,omitempty" gorm:"-"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	Vendor      *Vendor              `json:"vendor,omitempty" gorm:"foreignKey:VendorID;references:ID"`
	Account     *Account             `json:"account,omitempty" gorm:"foreignKey:AccountID;references:ID"`
	Allocations []*PaymentAllocation `json:"allocations,omitempty" gorm:"foreignKey:PaymentID;references:ID"`
}
