package migrations

import (
	"database/sql"
	"fmt"
	"log"
)

// CreateBaseSchema creates all the base tables needed for the application.
// Users and saved_views are created at connection time in the database
// package; everything else lives here.
func CreateBaseSchema(db *sql.DB) error {
	log.Println("Creating base schema...")

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS leads (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			phone TEXT NOT NULL,
			email TEXT,
			status TEXT NOT NULL DEFAULT 'new',
			source TEXT,
			tags TEXT NOT NULL DEFAULT '[]',
			custom_fields TEXT,
			notes TEXT,
			created_by TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS budgets (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			price REAL NOT NULL,
			currency TEXT NOT NULL DEFAULT 'USD',
			sessions_per_month INTEGER NOT NULL DEFAULT 0,
			duration_months INTEGER NOT NULL DEFAULT 1,
			active BOOLEAN NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS customers (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			phone TEXT NOT NULL,
			email TEXT,
			status TEXT NOT NULL DEFAULT 'active',
			budget_id TEXT REFERENCES budgets(id),
			goals TEXT,
			joined_at DATETIME NOT NULL,
			created_by TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS meetings (
			id TEXT PRIMARY KEY,
			customer_id TEXT NOT NULL REFERENCES customers(id),
			title TEXT NOT NULL,
			start_time DATETIME NOT NULL,
			end_time DATETIME NOT NULL,
			location TEXT,
			status TEXT NOT NULL DEFAULT 'scheduled',
			notes TEXT,
			created_by TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS payments (
			id TEXT PRIMARY KEY,
			customer_id TEXT NOT NULL REFERENCES customers(id),
			amount REAL NOT NULL,
			currency TEXT NOT NULL DEFAULT 'USD',
			method TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			description TEXT,
			paid_at DATETIME NOT NULL,
			created_by TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS workout_plans (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			level TEXT NOT NULL DEFAULT 'beginner',
			days_per_week INTEGER NOT NULL DEFAULT 3,
			content TEXT NOT NULL DEFAULT '',
			created_by TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS nutrition_plans (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			calories INTEGER NOT NULL DEFAULT 0,
			protein_grams INTEGER NOT NULL DEFAULT 0,
			content TEXT NOT NULL DEFAULT '',
			created_by TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS customer_plans (
			customer_id TEXT NOT NULL REFERENCES customers(id),
			plan_id TEXT NOT NULL REFERENCES workout_plans(id),
			assigned_at DATETIME NOT NULL,
			PRIMARY KEY (customer_id, plan_id)
		);

		CREATE TABLE IF NOT EXISTS articles (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			category TEXT,
			body TEXT NOT NULL DEFAULT '',
			published BOOLEAN NOT NULL DEFAULT 0,
			created_by TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create base tables: %w", err)
	}

	return nil
}

// AddSavedViewIndexes speeds up the per-user per-resource lookups the saved
// view endpoints do on every page load
func AddSavedViewIndexes(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_saved_views_user_resource
			ON saved_views(user_id, resource_key);
		CREATE INDEX IF NOT EXISTS idx_meetings_start_time
			ON meetings(start_time);
	`)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
