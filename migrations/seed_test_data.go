package migrations

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"
)

// SeedTestData seeds test data for development and PR environments.
// This should only be called in non-production environments.
func SeedTestData(db *sql.DB) error {
	// Never run this in production
	if os.Getenv("APP_ENV") == "production" {
		log.Println("Refusing to seed test data in production environment")
		return nil
	}

	// Only seed if explicitly requested or in dev/PR environment
	if os.Getenv("RESET_DB") != "true" &&
		os.Getenv("APP_ENV") != "development" &&
		os.Getenv("PR_DEPLOYMENT") != "true" {
		log.Println("Skipping test data seeding - not explicitly requested and not in dev/PR environment")
		return nil
	}

	log.Println("Seeding test data for development/PR environment...")

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	now := time.Now()

	budgets := []struct {
		id, name         string
		price            float64
		sessions, months int
	}{
		{"budget-1", "Starter", 99, 4, 1},
		{"budget-2", "Pro", 249, 12, 3},
		{"budget-3", "Elite", 499, 20, 6},
	}
	for _, b := range budgets {
		_, err = tx.Exec(`
			INSERT OR IGNORE INTO budgets (id, name, price, currency, sessions_per_month, duration_months, active, created_at, updated_at)
			VALUES (?, ?, ?, 'USD', ?, ?, 1, ?, ?)
		`, b.id, b.name, b.price, b.sessions, b.months, now, now)
		if err != nil {
			return fmt.Errorf("failed to seed budget %s: %w", b.name, err)
		}
	}

	leads := []struct {
		id, name, phone, status, source string
	}{
		{"lead-1", "Dana Levi", "+15550100", "new", "instagram"},
		{"lead-2", "Omar Haddad", "+15550101", "contacted", "referral"},
		{"lead-3", "Nina Petrova", "+15550102", "trial", "walk-in"},
	}
	for _, l := range leads {
		_, err = tx.Exec(`
			INSERT OR IGNORE INTO leads (id, name, phone, status, source, tags, created_by, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, '[]', '1', ?, ?)
		`, l.id, l.name, l.phone, l.status, l.source, now, now)
		if err != nil {
			return fmt.Errorf("failed to seed lead %s: %w", l.name, err)
		}
	}

	customers := []struct {
		id, name, phone, budgetID string
	}{
		{"customer-1", "Ariel Cohen", "+15550110", "budget-2"},
		{"customer-2", "Beth Nguyen", "+15550111", "budget-1"},
	}
	for _, c := range customers {
		_, err = tx.Exec(`
			INSERT OR IGNORE INTO customers (id, name, phone, status, budget_id, joined_at, created_by, created_at, updated_at)
			VALUES (?, ?, ?, 'active', ?, ?, '1', ?, ?)
		`, c.id, c.name, c.phone, c.budgetID, now, now, now)
		if err != nil {
			return fmt.Errorf("failed to seed customer %s: %w", c.name, err)
		}
	}

	_, err = tx.Exec(`
		INSERT OR IGNORE INTO meetings (id, customer_id, title, start_time, end_time, status, created_by, created_at, updated_at)
		VALUES ('meeting-1', 'customer-1', 'Intro session', ?, ?, 'scheduled', '1', ?, ?)
	`, now.Add(24*time.Hour), now.Add(25*time.Hour), now, now)
	if err != nil {
		return fmt.Errorf("failed to seed meeting: %w", err)
	}

	_, err = tx.Exec(`
		INSERT OR IGNORE INTO whatsapp_templates (id, name, body, language, created_by, created_at, updated_at)
		VALUES ('template-1', 'Meeting reminder', 'Hi {{name}}, reminder: {{title}} at {{time}}. See you there!', 'en', '1', ?, ?)
	`, now, now)
	if err != nil {
		return fmt.Errorf("failed to seed template: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	log.Println("Test data seeded successfully")
	return nil
}
