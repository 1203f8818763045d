package models

import "time"

// CreditNote represents vendor-side credit that offsets amounts otherwise
// payable by bank or cash. Balance decreases as the note is applied to payments.
type CreditNote struct {
	ID           string           `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	SiteID       string           `json:"site_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	VendorID     string           `json:"vendor_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	CreditAmount float64          `json:"credit_amount" gorm:"not null;type:decimal(12,2)" validate:"required,gt=0"`
	Balance      float64          `json:"balance" gorm:"not null;type:decimal(12,2)" validate:"gte=0"`
	Reference    string           `json:"reference,omitempty"`
	Reason       string           `json:"reason,omitempty" gorm:"type:text"`
	IssueDate    time.Time        `json:"issue_date" gorm:"not null;index;type:date" validate:"required"`
	Status       CreditNoteStatus `json:"status" gorm:"not null;default:'active';type:varchar(20)"`
	CreatedAt    time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt    *time.Time       `json:"deleted_at,omitempty" gorm:"index"`

	Vendor *Vendor `json:"vendor,omitempty" gorm:"foreignKey:VendorID;references:ID"`
}
