package migrations

import (
	"database/sql"
	"fmt"
)

// AddWhatsAppTables creates the WhatsApp gateway config, template and
// message-log tables
func AddWhatsAppTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS whatsapp_config (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL UNIQUE REFERENCES users(id),
			encrypted_api_token TEXT NOT NULL DEFAULT '',
			instance_id TEXT NOT NULL DEFAULT '',
			sender_phone TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS whatsapp_templates (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			body TEXT NOT NULL,
			language TEXT NOT NULL DEFAULT 'en',
			created_by TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS whatsapp_messages (
			id TEXT PRIMARY KEY,
			template_id TEXT NOT NULL,
			phone TEXT NOT NULL,
			body TEXT NOT NULL,
			status TEXT NOT NULL,
			error TEXT,
			sent_by TEXT NOT NULL,
			sent_at DATETIME NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create WhatsApp tables: %w", err)
	}

	return nil
}
