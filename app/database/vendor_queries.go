package database

import (
	"database/sql"
	"sitewise/app/models"
)

func GetVendorsBySite(db *sql.DB, siteID string) ([]*models.Vendor, error) {
	query := `SELECT id, site_id, name, COALESCE(contact_person, ''), COALESCE(email, ''),
	                 COALESCE(phone, ''), COALESCE(address, ''), is_active, created_at, updated_at
	          FROM vendors
	          WHERE site_id = $1 AND deleted_at IS NULL
	          ORDER BY name`

	rows, err := db.Query(query, siteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vendors []*models.Vendor
	for rows.Next() {
		v := &models.Vendor{}
		err := rows.Scan(
			&v.ID, &v.SiteID, &v.Name, &v.ContactPerson, &v.Email,
			&v.Phone, &v.Address, &v.IsActive, &v.CreatedAt, &v.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}

func GetVendorByID(db *sql.DB, vendorID string) (*models.Vendor, error) {
	v := &models.Vendor{}
	query := `SELECT id, site_id, name, COALESCE(contact_person, ''), COALESCE(email, ''),
	                 COALESCE(phone, ''), COALESCE(address, ''), is_active, created_at, updated_at
	          FROM vendors WHERE id = $1 AND deleted_at IS NULL`

	err := db.QueryRow(query, vendorID).Scan(
		&v.ID, &v.SiteID, &v.Name, &v.ContactPerson, &v.Email,
		&v.Phone, &v.Address, &v.IsActive, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func CreateVendor(db *sql.DB, v *models.Vendor) error {
	query := `INSERT INTO vendors (site_id, name, contact_person, email, phone, address, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, true, NOW(), NOW())
	          RETURNING id, created_at, updated_at`
	return db.QueryRow(query, v.SiteID, v.Name, v.ContactPerson, v.Email, v.Phone, v.Address).Scan(
		&v.ID, &v.CreatedAt, &v.UpdatedAt,
	)
}

func UpdateVendor(db *sql.DB, v *models.Vendor) error {
	query := `UPDATE vendors
	          SET name = $1, contact_person = $2, email = $3, phone = $4, address = $5, updated_at = NOW()
	          WHERE id = $6 AND deleted_at IS NULL`
	_, err := db.Exec(query, v.Name, v.ContactPerson, v.Email, v.Phone, v.Address, v.ID)
	return err
}

func DeleteVendor(db *sql.DB, vendorID string) error {
	query := `UPDATE vendors SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	_, err := db.Exec(query, vendorID)
	return err
}
