package models

import "time"

// VendorReturn represents goods sent back to a vendor. Once completed it is
// settled either as a credit note or as a cash refund.
type VendorReturn struct {
	ID                 string           `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	SiteID             string           `json:"site_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	VendorID           string           `json:"vendor_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Status             ReturnStatus     `json:"status" gorm:"not null;default:'initiated';type:varchar(20)"`
	ProcessingOption   ProcessingOption `json:"processing_option" gorm:"type:varchar(20)"`
	TotalReturnAmount  float64          `json:"total_return_amount" gorm:"not null;type:decimal(12,2)" validate:"required,gt=0"`
	ActualRefundAmount float64          `json:"actual_refund_amount" gorm:"type:decimal(12,2);default:0"`
	Reason             string           `json:"reason,omitempty" gorm:"type:text"`
	ReturnDate         time.Time        `json:"return_date" gorm:"not null;index;type:date" validate:"required"`
	CompletionDate     *time.Time       `json:"completion_date,omitempty" gorm:"type:date"`
	CreatedAt          time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt          *time.Time       `json:"deleted_at,omitempty" gorm:"index"`

	Vendor *Vendor `json:"vendor,omitempty" gorm:"foreignKey:VendorID;references:ID"`
}

// EffectiveDate returns the date the return takes effect in the ledger,
// preferring the completion date when one is recorded.
func (r *VendorReturn) EffectiveDate() time.Time {
	if r.CompletionDate != nil {
		return *r.CompletionDate
	}
	return r.ReturnDate
}
