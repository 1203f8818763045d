package database

import (
	"database/sql"
	"sitewise/app/models"
)

const bookingColumns = `id, site_id, vendor_id, service_name, start_date, end_date,
	total_amount, percent_completed, COALESCE(notes, ''), created_at, updated_at`

func scanBooking(rows *sql.Rows) (*models.ServiceBooking, error) {
	b := &models.ServiceBooking{}
	err := rows.Scan(
		&b.ID, &b.SiteID, &b.VendorID, &b.ServiceName, &b.StartDate, &b.EndDate,
		&b.TotalAmount, &b.PercentCompleted, &b.Notes, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func GetServiceBookingsByVendor(db *sql.DB, vendorID string) ([]*models.ServiceBooking, error) {
	query := `SELECT ` + bookingColumns + `
	          FROM service_bookings
	          WHERE vendor_id = $1 AND deleted_at IS NULL
	          ORDER BY start_date`

	rows, err := db.Query(query, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*models.ServiceBooking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func GetServiceBookingsBySite(db *sql.DB, siteID string) ([]*models.ServiceBooking, error) {
	query := `SELECT ` + bookingColumns + `
	          FROM service_bookings
	          WHERE site_id = $1 AND deleted_at IS NULL
	          ORDER BY start_date DESC`

	rows, err := db.Query(query, siteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*models.ServiceBooking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func CreateServiceBooking(db *sql.DB, b *models.ServiceBooking) error {
	query := `INSERT INTO service_bookings (site_id, vendor_id, service_name, start_date, end_date, total_amount, percent_completed, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	          RETURNING id, created_at, updated_at`
	return db.QueryRow(query, b.SiteID, b.VendorID, b.ServiceName, b.StartDate, b.EndDate, b.TotalAmount, b.PercentCompleted, b.Notes).Scan(
		&b.ID, &b.CreatedAt, &b.UpdatedAt,
	)
}

func UpdateServiceBookingProgress(db *sql.DB, bookingID string, percentCompleted float64) error {
	query := `UPDATE service_bookings SET percent_completed = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`
	_, err := db.Exec(query, percentCompleted, bookingID)
	return err
}
