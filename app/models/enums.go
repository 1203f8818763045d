package models

// PaymentStatus defines the derived payment state of an obligation.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// ObligationType discriminates the kind of record a payment allocation targets.
type ObligationType string

const (
	ObligationDelivery       ObligationType = "delivery"
	ObligationServiceBooking ObligationType = "service_booking"
)

// AllocationState defines the tri-state of one allocation line during payment entry.
type AllocationState string

const (
	AllocationUnchecked AllocationState = "unchecked"
	AllocationPartial   AllocationState = "partial"
	AllocationChecked   AllocationState = "checked"
)

// ReturnStatus defines the lifecycle of a vendor return.
type ReturnStatus string

const (
	ReturnInitiated ReturnStatus = "initiated"
	ReturnApproved  ReturnStatus = "approved"
	ReturnCompleted ReturnStatus = "completed"
	ReturnRefunded  ReturnStatus = "refunded"
	ReturnRejected  ReturnStatus = "rejected"
)

// ProcessingOption defines how a completed vendor return is settled.
type ProcessingOption string

const (
	ProcessCreditNote ProcessingOption = "credit_note"
	ProcessRefund     ProcessingOption = "refund"
)

// CreditNoteStatus defines whether a credit note still carries usable balance.
type CreditNoteStatus string

const (
	CreditNoteActive CreditNoteStatus = "active"
	CreditNoteClosed CreditNoteStatus = "closed"
)

// LedgerEntryType categorizes an entry in a vendor's running-balance ledger.
type LedgerEntryType string

const (
	LedgerDelivery   LedgerEntryType = "delivery"
	LedgerPayment    LedgerEntryType = "payment"
	LedgerCreditNote LedgerEntryType = "credit_note"
	LedgerRefund     LedgerEntryType = "refund"
)
