package database

import (
	"database/sql"
	"sitewise/app/models"
)

const creditNoteColumns = `id, site_id, vendor_id, credit_amount, balance,
	COALESCE(reference, ''), COALESCE(reason, ''), issue_date, status, created_at, updated_at`

func scanCreditNote(rows *sql.Rows) (*models.CreditNote, error) {
	n := &models.CreditNote{}
	var status string
	err := rows.Scan(
		&n.ID, &n.SiteID, &n.VendorID, &n.CreditAmount, &n.Balance,
		&n.Reference, &n.Reason, &n.IssueDate, &status, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	n.Status = models.CreditNoteStatus(status)
	return n, nil
}

func GetCreditNotesByVendor(db *sql.DB, vendorID string) ([]*models.CreditNote, error) {
	query := `SELECT ` + creditNoteColumns + `
	          FROM credit_notes
	          WHERE vendor_id = $1 AND deleted_at IS NULL
	          ORDER BY issue_date`

	rows, err := db.Query(query, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*models.CreditNote
	for rows.Next() {
		n, err := scanCreditNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// GetActiveCreditNotesByVendor returns notes that still carry usable balance,
// oldest first so they are consumed in issue order.
func GetActiveCreditNotesByVendor(db *sql.DB, vendorID string) ([]*models.CreditNote, error) {
	query := `SELECT ` + creditNoteColumns + `
	          FROM credit_notes
	          WHERE vendor_id = $1 AND status = 'active' AND balance > 0 AND deleted_at IS NULL
	          ORDER BY issue_date`

	rows, err := db.Query(query, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*models.CreditNote
	for rows.Next() {
		n, err := scanCreditNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func CreateCreditNote(db *sql.DB, n *models.CreditNote) error {
	if n.Balance == 0 {
		n.Balance = n.CreditAmount
	}
	if n.Status == "" {
		n.Status = models.CreditNoteActive
	}
	query := `INSERT INTO credit_notes (site_id, vendor_id, credit_amount, balance, reference, reason, issue_date, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	          RETURNING id, created_at, updated_at`
	return db.QueryRow(query, n.SiteID, n.VendorID, n.CreditAmount, n.Balance, n.Reference, n.Reason, n.IssueDate, string(n.Status)).Scan(
		&n.ID, &n.CreatedAt, &n.UpdatedAt,
	)
}
