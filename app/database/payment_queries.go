package database

import (
	"database/sql"
	"fmt"
	"sitewise/app/models"

	"github.com/lib/pq"
)

const paymentColumns = `id, site_id, vendor_id, account_id, amount, payment_date,
	COALESCE(reference, ''), COALESCE(notes, ''), created_at, updated_at`

func scanPayment(rows *sql.Rows) (*models.Payment, error) {
	p := &models.Payment{}
	err := rows.Scan(
		&p.ID, &p.SiteID, &p.VendorID, &p.AccountID, &p.Amount, &p.PaymentDate,
		&p.Reference, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func GetPaymentsByVendor(db *sql.DB, vendorID string) ([]*models.Payment, error) {
	query := `SELECT ` + paymentColumns + `
	          FROM payments
	          WHERE vendor_id = $1 AND deleted_at IS NULL
	          ORDER BY payment_date`

	rows, err := db.Query(query, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func GetPaymentByID(db *sql.DB, paymentID string) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1 AND deleted_at IS NULL`
	p := &models.Payment{}
	err := db.QueryRow(query, paymentID).Scan(
		&p.ID, &p.SiteID, &p.VendorID, &p.AccountID, &p.Amount, &p.PaymentDate,
		&p.Reference, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	allocations, err := GetAllocationsByPayment(db, paymentID)
	if err != nil {
		return nil, err
	}
	p.Allocations = allocations
	return p, nil
}

func GetAllocationsByPayment(db *sql.DB, paymentID string) ([]*models.PaymentAllocation, error) {
	query := `SELECT id, payment_id, obligation_type, delivery_id, service_booking_id, allocated_amount, created_at
	          FROM payment_allocations
	          WHERE payment_id = $1
	          ORDER BY created_at`

	rows, err := db.Query(query, paymentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var allocations []*models.PaymentAllocation
	for rows.Next() {
		a := &models.PaymentAllocation{}
		var obligationType string
		err := rows.Scan(&a.ID, &a.PaymentID, &obligationType, &a.DeliveryID, &a.ServiceBookingID, &a.AllocatedAmount, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		a.ObligationType = models.ObligationType(obligationType)
		allocations = append(allocations, a)
	}
	return allocations, rows.Err()
}

// GetAllocationsByVendor returns every allocation against the vendor's
// obligations across all of its payments.
func GetAllocationsByVendor(db *sql.DB, vendorID string) ([]*models.PaymentAllocation, error) {
	query := `SELECT pa.id, pa.payment_id, pa.obligation_type, pa.delivery_id, pa.service_booking_id, pa.allocated_amount, pa.created_at
	          FROM payment_allocations pa
	          JOIN payments p ON p.id = pa.payment_id
	          WHERE p.vendor_id = $1 AND p.deleted_at IS NULL
	          ORDER BY pa.created_at`

	rows, err := db.Query(query, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var allocations []*models.PaymentAllocation
	for rows.Next() {
		a := &models.PaymentAllocation{}
		var obligationType string
		err := rows.Scan(&a.ID, &a.PaymentID, &obligationType, &a.DeliveryID, &a.ServiceBookingID, &a.AllocatedAmount, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		a.ObligationType = models.ObligationType(obligationType)
		allocations = append(allocations, a)
	}
	return allocations, rows.Err()
}

// GetAllocationsBySite returns every allocation recorded against the site's
// payments. Used to enhance site-wide obligation listings.
func GetAllocationsBySite(db *sql.DB, siteID string) ([]*models.PaymentAllocation, error) {
	query := `SELECT pa.id, pa.payment_id, pa.obligation_type, pa.delivery_id, pa.service_booking_id, pa.allocated_amount, pa.created_at
	          FROM payment_allocations pa
	          JOIN payments p ON p.id = pa.payment_id
	          WHERE p.site_id = $1 AND p.deleted_at IS NULL
	          ORDER BY pa.created_at`

	rows, err := db.Query(query, siteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var allocations []*models.PaymentAllocation
	for rows.Next() {
		a := &models.PaymentAllocation{}
		var obligationType string
		err := rows.Scan(&a.ID, &a.PaymentID, &obligationType, &a.DeliveryID, &a.ServiceBookingID, &a.AllocatedAmount, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		a.ObligationType = models.ObligationType(obligationType)
		allocations = append(allocations, a)
	}
	return allocations, rows.Err()
}

// CreatePaymentWithAllocations records a payment, its allocations and the
// credit notes it consumed in a single transaction. Credit note balances are
// decremented by the amount actually applied; a note never goes below zero.
func CreatePaymentWithAllocations(db *sql.DB, payment *models.Payment, allocations []*models.PaymentAllocation) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	queryPayment := `INSERT INTO payments (site_id, vendor_id, account_id, amount, payment_date, reference, notes, created_at, updated_at)
	                 VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	                 RETURNING id, created_at, updated_at`
	err = tx.QueryRow(queryPayment,
		payment.SiteID,
		payment.VendorID,
		payment.AccountID,
		payment.Amount,
		payment.PaymentDate,
		payment.Reference,
		payment.Notes,
	).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %v", err)
	}

	queryAllocation := `INSERT INTO payment_allocations (payment_id, obligation_type, delivery_id, service_booking_id, allocated_amount)
	                    VALUES ($1, $2, $3, $4, $5)
	                    RETURNING id, created_at`
	for _, a := range allocations {
		a.PaymentID = payment.ID
		err = tx.QueryRow(queryAllocation,
			payment.ID, string(a.ObligationType), a.DeliveryID, a.ServiceBookingID, a.AllocatedAmount,
		).Scan(&a.ID, &a.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert allocation: %v", err)
		}
	}
	payment.Allocations = allocations

	if len(payment.CreditNoteIDs) > 0 {
		if err := applyCreditNotes(tx, payment); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func applyCreditNotes(tx *sql.Tx, payment *models.Payment) error {
	query := `SELECT id, balance FROM credit_notes
	          WHERE id = ANY($1) AND vendor_id = $2 AND status = 'active' AND deleted_at IS NULL
	          ORDER BY issue_date
	          FOR UPDATE`

	rows, err := tx.Query(query, pq.Array(payment.CreditNoteIDs), payment.VendorID)
	if err != nil {
		return fmt.Errorf("failed to lock credit notes: %v", err)
	}

	type noteBalance struct {
		id      string
		balance float64
	}
	var notes []noteBalance
	for rows.Next() {
		var n noteBalance
		if err := rows.Scan(&n.id, &n.balance); err != nil {
			rows.Close()
			return err
		}
		notes = append(notes, n)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, n := range notes {
		applied := n.balance
		if applied <= 0 {
			continue
		}

		_, err = tx.Exec(`UPDATE credit_notes SET balance = balance - $1, updated_at = NOW() WHERE id = $2`, applied, n.id)
		if err != nil {
			return fmt.Errorf("failed to apply credit note: %v", err)
		}
		_, err = tx.Exec(`INSERT INTO payment_credit_notes (payment_id, credit_note_id, applied_amount) VALUES ($1, $2, $3)`,
			payment.ID, n.id, applied)
		if err != nil {
			return fmt.Errorf("failed to link credit note: %v", err)
		}
	}

	return nil
}
