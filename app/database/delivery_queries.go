package database

import (
	"database/sql"
	"sitewise/app/models"
)

const deliveryColumns = `id, site_id, vendor_id, delivery_date, COALESCE(delivery_reference, ''),
	total_amount, COALESCE(notes, ''), created_at, updated_at`

func scanDelivery(rows *sql.Rows) (*models.Delivery, error) {
	d := &models.Delivery{}
	err := rows.Scan(
		&d.ID, &d.SiteID, &d.VendorID, &d.DeliveryDate, &d.DeliveryReference,
		&d.TotalAmount, &d.Notes, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func GetDeliveriesByVendor(db *sql.DB, vendorID string) ([]*models.Delivery, error) {
	query := `SELECT ` + deliveryColumns + `
	          FROM deliveries
	          WHERE vendor_id = $1 AND deleted_at IS NULL
	          ORDER BY delivery_date`

	rows, err := db.Query(query, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deliveries []*models.Delivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, rows.Err()
}

func GetDeliveriesBySite(db *sql.DB, siteID string) ([]*models.Delivery, error) {
	query := `SELECT ` + deliveryColumns + `
	          FROM deliveries
	          WHERE site_id = $1 AND deleted_at IS NULL
	          ORDER BY delivery_date DESC`

	rows, err := db.Query(query, siteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deliveries []*models.Delivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, rows.Err()
}

func GetDeliveryByID(db *sql.DB, deliveryID string) (*models.Delivery, error) {
	d := &models.Delivery{}
	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE id = $1 AND deleted_at IS NULL`
	err := db.QueryRow(query, deliveryID).Scan(
		&d.ID, &d.SiteID, &d.VendorID, &d.DeliveryDate, &d.DeliveryReference,
		&d.TotalAmount, &d.Notes, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func CreateDelivery(db *sql.DB, d *models.Delivery) error {
	query := `INSERT INTO deliveries (site_id, vendor_id, delivery_date, delivery_reference, total_amount, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	          RETURNING id, created_at, updated_at`
	return db.QueryRow(query, d.SiteID, d.VendorID, d.DeliveryDate, d.DeliveryReference, d.TotalAmount, d.Notes).Scan(
		&d.ID, &d.CreatedAt, &d.UpdatedAt,
	)
}
