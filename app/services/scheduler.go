package services

import (
	"database/sql"
	"log"
	"time"
)

// StartScheduler starts the background task scheduler
func StartScheduler(db *sql.DB) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			// Trigger at 0:15 so the day's books close before anyone is in
			if now.Hour() == 0 && now.Minute() == 15 {
				log.Println("Triggering scheduled tasks [00:15]...")

				if err := CloseConsumedCreditNotes(db); err != nil {
					log.Printf("Error closing consumed credit notes: %v", err)
				}
			}
		}
	}()
}

// CloseConsumedCreditNotes marks active credit notes whose balance has been
// fully applied to payments as closed so they stop appearing in selection
// lists. A cent of residue from tolerance rounding still counts as consumed.
func CloseConsumedCreditNotes(db *sql.DB) error {
	query := `UPDATE credit_notes SET status = 'closed', updated_at = NOW()
			  WHERE status = 'active' AND balance < 0.01 AND deleted_at IS NULL`

	result, err := db.Exec(query)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n > 0 {
		log.Printf("Closed %d fully consumed credit notes", n)
	}
	return nil
}
