package database

import (
	"database/sql"
	"log"
)

// RunMigrations creates missing tables and applies schema updates.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE TABLE IF NOT EXISTS sites (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			address TEXT,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) NOT NULL UNIQUE,
			password VARCHAR(255) NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			phone VARCHAR(20),
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS roles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(50) NOT NULL UNIQUE,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS user_roles (
			user_id UUID NOT NULL REFERENCES users(id),
			role_id UUID NOT NULL REFERENCES roles(id),
			PRIMARY KEY (user_id, role_id)
		)`,
		`CREATE TABLE IF NOT EXISTS vendors (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			site_id UUID NOT NULL REFERENCES sites(id),
			name VARCHAR(255) NOT NULL,
			contact_person VARCHAR(255),
			email VARCHAR(255),
			phone VARCHAR(20),
			address TEXT,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS accounts (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			site_id UUID NOT NULL REFERENCES sites(id),
			name VARCHAR(255) NOT NULL,
			type VARCHAR(20) NOT NULL DEFAULT 'bank',
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS deliveries (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			site_id UUID NOT NULL REFERENCES sites(id),
			vendor_id UUID NOT NULL REFERENCES vendors(id),
			delivery_date DATE NOT NULL,
			delivery_reference VARCHAR(100),
			total_amount DECIMAL(12,2) NOT NULL,
			notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS service_bookings (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			site_id UUID NOT NULL REFERENCES sites(id),
			vendor_id UUID NOT NULL REFERENCES vendors(id),
			service_name VARCHAR(255) NOT NULL,
			start_date DATE NOT NULL,
			end_date DATE,
			total_amount DECIMAL(12,2) NOT NULL,
			percent_completed DECIMAL(5,2) NOT NULL DEFAULT 0,
			notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			site_id UUID NOT NULL REFERENCES sites(id),
			vendor_id UUID NOT NULL REFERENCES vendors(id),
			account_id UUID NOT NULL REFERENCES accounts(id),
			amount DECIMAL(12,2) NOT NULL,
			payment_date DATE NOT NULL,
			reference VARCHAR(100),
			notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS payment_allocations (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			payment_id UUID NOT NULL REFERENCES payments(id),
			obligation_type VARCHAR(20) NOT NULL,
			delivery_id UUID REFERENCES deliveries(id),
			service_booking_id UUID REFERENCES service_bookings(id),
			allocated_amount DECIMAL(12,2) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS credit_notes (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			site_id UUID NOT NULL REFERENCES sites(id),
			vendor_id UUID NOT NULL REFERENCES vendors(id),
			credit_amount DECIMAL(12,2) NOT NULL,
			balance DECIMAL(12,2) NOT NULL,
			reference VARCHAR(100),
			reason TEXT,
			issue_date DATE NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS payment_credit_notes (
			payment_id UUID NOT NULL REFERENCES payments(id),
			credit_note_id UUID NOT NULL REFERENCES credit_notes(id),
			applied_amount DECIMAL(12,2) NOT NULL,
			PRIMARY KEY (payment_id, credit_note_id)
		)`,
		`CREATE TABLE IF NOT EXISTS vendor_returns (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			site_id UUID NOT NULL REFERENCES sites(id),
			vendor_id UUID NOT NULL REFERENCES vendors(id),
			status VARCHAR(20) NOT NULL DEFAULT 'initiated',
			processing_option VARCHAR(20),
			total_return_amount DECIMAL(12,2) NOT NULL,
			actual_refund_amount DECIMAL(12,2) NOT NULL DEFAULT 0,
			reason TEXT,
			return_date DATE NOT NULL,
			completion_date DATE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_deliveries_vendor ON deliveries(vendor_id)`,
		`CREATE INDEX IF NOT EXISTS idx_service_bookings_vendor ON service_bookings(vendor_id)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_vendor ON payments(vendor_id)`,
		`CREATE INDEX IF NOT EXISTS idx_payment_allocations_payment ON payment_allocations(payment_id)`,
		`CREATE INDEX IF NOT EXISTS idx_payment_allocations_delivery ON payment_allocations(delivery_id)`,
		`CREATE INDEX IF NOT EXISTS idx_payment_allocations_booking ON payment_allocations(service_booking_id)`,
		`CREATE INDEX IF NOT EXISTS idx_credit_notes_vendor ON credit_notes(vendor_id)`,
		`CREATE INDEX IF NOT EXISTS idx_vendor_returns_vendor ON vendor_returns(vendor_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration failed: %v", err)
			return err
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
