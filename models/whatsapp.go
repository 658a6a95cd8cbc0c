package models

import (
	"database/sql"
	"fmt"
	"time"
)

// WhatsAppConfig represents a user's WhatsApp gateway configuration. The API
// token is stored encrypted and never returned in API responses.
type WhatsAppConfig struct {
	ID                int       `json:"id,omitempty"`
	UserID            string    `json:"userId"`
	EncryptedAPIToken string    `json:"-"`
	APIToken          string    `json:"apiToken,omitempty"` // input/output only
	InstanceID        string    `json:"instanceId,omitempty"`
	SenderPhone       string    `json:"senderPhone,omitempty"`
	HasCredentials    bool      `json:"hasCredentials"`
	CreatedAt         time.Time `json:"createdAt,omitempty"`
	UpdatedAt         time.Time `json:"updatedAt,omitempty"`
}

// WhatsAppTemplate is a reusable message body with {{placeholder}} variables
type WhatsAppTemplate struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Body      string    `json:"body"`
	Language  string    `json:"language"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WhatsAppMessage records one send attempt through the gateway
type WhatsAppMessage struct {
	ID         string    `json:"id"`
	TemplateID string    `json:"templateId"`
	Phone      string    `json:"phone"`
	Body       string    `json:"body"`
	Status     string    `json:"status"` // sent, failed
	Error      string    `json:"error,omitempty"`
	SentBy     string    `json:"sentBy"`
	SentAt     time.Time `json:"sentAt"`
}

// GetWhatsAppConfig retrieves a user's WhatsApp gateway configuration.
// Missing config is not an error: an empty config with HasCredentials=false
// is returned so the settings page can render.
func GetWhatsAppConfig(db *sql.DB, userID string) (*WhatsAppConfig, error) {
	var config WhatsAppConfig
	err := db.QueryRow(`
		SELECT id, user_id, encrypted_api_token, instance_id, sender_phone, created_at, updated_at
		FROM whatsapp_config
		WHERE user_id = ?
	`, userID).Scan(
		&config.ID, &config.UserID, &config.EncryptedAPIToken,
		&config.InstanceID, &config.SenderPhone, &config.CreatedAt, &config.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		config.UserID = userID
		config.HasCredentials = false
		return &config, nil
	} else if err != nil {
		return nil, fmt.Errorf("error querying WhatsApp config: %w", err)
	}

	config.HasCredentials = config.EncryptedAPIToken != ""
	return &config, nil
}
