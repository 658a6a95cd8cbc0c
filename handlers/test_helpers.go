package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"coachdesk/backend/database"
	"coachdesk/backend/middleware"
	"coachdesk/backend/migrations"
)

// Define a constant for the test user ID that can be used across all tests
const TestUserID = "test-user-id"

// SetupTestAuth adds authentication context to the request
func SetupTestAuth(req *http.Request) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, TestUserID)
	return req.WithContext(ctx)
}

// SetupTestDB initializes an in-memory database with the full schema
func SetupTestDB() {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		panic(err)
	}
	database.DB = db

	// Users and saved views are normally created at connection time
	_, err = db.Exec(`
		CREATE TABLE users (
			id TEXT PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'coach'
		);
		CREATE TABLE saved_views (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			user_id TEXT NOT NULL,
			resource_key TEXT NOT NULL,
			filter_config TEXT NOT NULL,
			is_default BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`)
	if err != nil {
		panic(err)
	}

	if err := migrations.CreateBaseSchema(db); err != nil {
		panic(err)
	}
	if err := migrations.AddWhatsAppTables(db); err != nil {
		panic(err)
	}

	_, err = db.Exec(`
		INSERT INTO users (id, username, name, role)
		VALUES (?, ?, ?, ?)
	`, TestUserID, "testuser", "Test User", "owner")
	if err != nil {
		panic(err)
	}
}

// CleanupTestDB closes the test database connection
func CleanupTestDB() {
	if database.DB != nil {
		database.DB.Close()
	}
}

// TestRequest creates a test request with auth context already set up
func TestRequest(method, url string, body *string) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, strings.NewReader(*body))
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	return SetupTestAuth(req)
}

// NewAuthenticatedRequest creates a new HTTP request with a mock authenticated user
func NewAuthenticatedRequest(method, url string, body interface{}) *http.Request {
	var req *http.Request

	if body != nil {
		buf, _ := json.Marshal(body)
		req = httptest.NewRequest(method, url, bytes.NewBuffer(buf))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	return SetupTestAuth(req)
}
