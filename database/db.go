package database

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

func InitDB() error {
	var dbPath string
	if os.Getenv("FLY_APP_NAME") != "" {
		// We're running on Fly.io, use the mounted volume
		dbPath = filepath.Join("/data", "coachdesk.db")
	} else if os.Getenv("TEST_DB") == "1" {
		// We're running tests, use in-memory database
		dbPath = ":memory:"
	} else {
		// Local development
		dbPath = "./coachdesk.db"
	}

	var err error
	// Connection parameters to better handle concurrency
	dsn := dbPath + "?_journal=WAL&_timeout=10000&_busy_timeout=10000"
	DB, err = sql.Open("sqlite3", dsn)
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(5)
	DB.SetMaxIdleConns(5)
	DB.SetConnMaxLifetime(time.Minute * 5)

	_, err = DB.Exec("PRAGMA journal_mode=WAL;")
	if err != nil {
		return err
	}

	_, err = DB.Exec("PRAGMA busy_timeout=5000;")
	if err != nil {
		return err
	}

	err = DB.Ping()
	if err != nil {
		return err
	}

	// Create users table
	createUsersTable := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'coach'
	);
	`
	_, err = DB.Exec(createUsersTable)
	if err != nil {
		return err
	}

	// Create saved_views table
	createSavedViewsTable := `
	CREATE TABLE IF NOT EXISTS saved_views (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		user_id TEXT NOT NULL,
		resource_key TEXT NOT NULL,
		filter_config TEXT NOT NULL,
		is_default BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`
	_, err = DB.Exec(createSavedViewsTable)
	if err != nil {
		return err
	}

	return nil
}

// SeedDefaultUsers inserts the initial coach accounts when the users table
// is empty
func SeedDefaultUsers() error {
	var count int
	err := DB.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		return err
	}

	if count == 0 {
		defaultUsers := []struct {
			id       string
			username string
			name     string
			role     string
		}{
			{id: "1", username: "maya", name: "Maya", role: "owner"},
			{id: "2", username: "tom", name: "Tom", role: "coach"},
		}

		for _, user := range defaultUsers {
			_, err := DB.Exec("INSERT INTO users (id, username, name, role) VALUES (?, ?, ?, ?)",
				user.id, user.username, user.name, user.role)
			if err != nil {
				return err
			}
		}
	}

	return nil
}
