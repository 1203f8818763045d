package database

import (
	"database/sql"
	"fmt"
	"sitewise/app/models"
	"time"
)

const returnColumns = `id, site_id, vendor_id, status, COALESCE(processing_option, ''),
	total_return_amount, actual_refund_amount, COALESCE(reason, ''), return_date, completion_date,
	created_at, updated_at`

func scanReturn(rows *sql.Rows) (*models.VendorReturn, error) {
	r := &models.VendorReturn{}
	var status, processingOption string
	err := rows.Scan(
		&r.ID, &r.SiteID, &r.VendorID, &status, &processingOption,
		&r.TotalReturnAmount, &r.ActualRefundAmount, &r.Reason, &r.ReturnDate, &r.CompletionDate,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	r.Status = models.ReturnStatus(status)
	r.ProcessingOption = models.ProcessingOption(processingOption)
	return r, nil
}

func GetReturnsByVendor(db *sql.DB, vendorID string) ([]*models.VendorReturn, error) {
	query := `SELECT ` + returnColumns + `
	          FROM vendor_returns
	          WHERE vendor_id = $1 AND deleted_at IS NULL
	          ORDER BY return_date`

	rows, err := db.Query(query, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var returns []*models.VendorReturn
	for rows.Next() {
		r, err := scanReturn(rows)
		if err != nil {
			return nil, err
		}
		returns = append(returns, r)
	}
	return returns, rows.Err()
}

func GetReturnByID(db *sql.DB, returnID string) (*models.VendorReturn, error) {
	query := `SELECT ` + returnColumns + ` FROM vendor_returns WHERE id = $1 AND deleted_at IS NULL`
	rows, err := db.Query(query, returnID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, sql.ErrNoRows
	}
	return scanReturn(rows)
}

func CreateReturn(db *sql.DB, r *models.VendorReturn) error {
	if r.Status == "" {
		r.Status = models.ReturnInitiated
	}
	query := `INSERT INTO vendor_returns (site_id, vendor_id, status, processing_option, total_return_amount, reason, return_date, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	          RETURNING id, created_at, updated_at`
	return db.QueryRow(query, r.SiteID, r.VendorID, string(r.Status), string(r.ProcessingOption), r.TotalReturnAmount, r.Reason, r.ReturnDate).Scan(
		&r.ID, &r.CreatedAt, &r.UpdatedAt,
	)
}

func UpdateReturnStatus(db *sql.DB, returnID string, status models.ReturnStatus) error {
	query := `UPDATE vendor_returns SET status = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`
	_, err := db.Exec(query, string(status), returnID)
	return err
}

// CompleteReturn marks a return completed and settles it in a transaction.
// A credit_note return issues a credit note for the full amount; a refund
// return records the refunded amount and moves to the refunded status.
func CompleteReturn(db *sql.DB, r *models.VendorReturn, refundAmount float64) (*models.CreditNote, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now()
	status := models.ReturnCompleted
	if r.ProcessingOption == models.ProcessRefund {
		status = models.ReturnRefunded
	}

	query := `UPDATE vendor_returns
	          SET status = $1, actual_refund_amount = $2, completion_date = $3, updated_at = NOW()
	          WHERE id = $4 AND deleted_at IS NULL`
	_, err = tx.Exec(query, string(status), refundAmount, now, r.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to complete return: %v", err)
	}
	r.Status = status
	r.ActualRefundAmount = refundAmount
	r.CompletionDate = &now

	var note *models.CreditNote
	if r.ProcessingOption == models.ProcessCreditNote {
		note = &models.CreditNote{
			SiteID:       r.SiteID,
			VendorID:     r.VendorID,
			CreditAmount: r.TotalReturnAmount,
			Balance:      r.TotalReturnAmount,
			Reason:       r.Reason,
			IssueDate:    now,
			Status:       models.CreditNoteActive,
		}
		queryNote := `INSERT INTO credit_notes (site_id, vendor_id, credit_amount, balance, reference, reason, issue_date, status, created_at, updated_at)
		              VALUES ($1, $2, $3, $4, $5, $6, $7, 'active', NOW(), NOW())
		              RETURNING id, created_at, updated_at`
		err = tx.QueryRow(queryNote, note.SiteID, note.VendorID, note.CreditAmount, note.Balance, note.Reference, note.Reason, note.IssueDate).Scan(
			&note.ID, &note.CreatedAt, &note.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to issue credit note: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return note, nil
}
