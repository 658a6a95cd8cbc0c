package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"coachdesk/backend/database"
	"coachdesk/backend/models"
	"coachdesk/backend/security"
)

const defaultWhatsAppBaseURL = "https://gate.whapi.cloud"

// whatsAppBaseURL returns the gateway base URL, overridable for tests and
// self-hosted gateways
func whatsAppBaseURL() string {
	if url := os.Getenv("WHATSAPP_API_URL"); url != "" {
		return strings.TrimRight(url, "/")
	}
	return defaultWhatsAppBaseURL
}

// UpdateWhatsAppConfig stores a user's gateway credentials, encrypting the
// API token at rest
func UpdateWhatsAppConfig(userID, apiToken, instanceID, senderPhone string) (*models.WhatsAppConfig, error) {
	encrypted, err := security.Encrypt(apiToken)
	if err != nil {
		return nil, fmt.Errorf("error encrypting API token: %w", err)
	}

	now := time.Now()
	_, err = database.DB.Exec(`
		INSERT INTO whatsapp_config (user_id, encrypted_api_token, instance_id, sender_phone, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			encrypted_api_token = excluded.encrypted_api_token,
			instance_id = excluded.instance_id,
			sender_phone = excluded.sender_phone,
			updated_at = excluded.updated_at
	`, userID, encrypted, instanceID, senderPhone, now, now)
	if err != nil {
		return nil, fmt.Errorf("error saving WhatsApp config: %w", err)
	}

	return models.GetWhatsAppConfig(database.DB, userID)
}

// RenderTemplate substitutes {{placeholder}} variables in a template body
func RenderTemplate(body string, vars map[string]string) string {
	rendered := body
	for key, value := range vars {
		rendered = strings.ReplaceAll(rendered, "{{"+key+"}}", value)
	}
	return rendered
}

// SendTemplate renders a stored template and posts it to the WhatsApp
// gateway as a one-shot request. The outcome is recorded in the message log
// either way; errors propagate so the caller can surface a toast.
func SendTemplate(userID, templateID, phone string, vars map[string]string) (*models.WhatsAppMessage, error) {
	config, err := models.GetWhatsAppConfig(database.DB, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting WhatsApp config: %w", err)
	}
	if !config.HasCredentials {
		return nil, fmt.Errorf("WhatsApp gateway is not configured")
	}

	token, err := security.Decrypt(config.EncryptedAPIToken)
	if err != nil {
		return nil, fmt.Errorf("error decrypting API token: %w", err)
	}

	template, err := GetTemplateByID(templateID)
	if err != nil {
		return nil, err
	}

	body := RenderTemplate(template.Body, vars)

	message := &models.WhatsAppMessage{
		ID:         uuid.NewString(),
		TemplateID: templateID,
		Phone:      phone,
		Body:       body,
		Status:     "sent",
		SentBy:     userID,
		SentAt:     time.Now(),
	}

	sendErr := postMessage(token, config.InstanceID, phone, body)
	if sendErr != nil {
		message.Status = "failed"
		message.Error = sendErr.Error()
	}

	_, err = database.DB.Exec(`
		INSERT INTO whatsapp_messages (id, template_id, phone, body, status, error, sent_by, sent_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, message.ID, message.TemplateID, message.Phone, message.Body, message.Status, message.Error, message.SentBy, message.SentAt)
	if err != nil {
		log.Printf("Warning: failed to record WhatsApp message: %v", err)
	}

	if sendErr != nil {
		return message, fmt.Errorf("error sending WhatsApp message: %w", sendErr)
	}
	return message, nil
}

// postMessage performs the actual gateway call
func postMessage(token, instanceID, phone, body string) error {
	payload := map[string]string{
		"instance_id": instanceID,
		"to":          phone,
		"body":        body,
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error encoding payload: %w", err)
	}

	url := whatsAppBaseURL() + "/messages/text"
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(buf))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error making request to WhatsApp gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		log.Printf("WhatsApp gateway error: %s", string(respBody))
		return fmt.Errorf("WhatsApp gateway returned status %d", resp.StatusCode)
	}

	return nil
}

// GetTemplates retrieves all message templates
func GetTemplates() ([]models.WhatsAppTemplate, error) {
	rows, err := database.DB.Query(`
		SELECT id, name, body, language, created_by, created_at, updated_at
		FROM whatsapp_templates
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query templates: %w", err)
	}
	defer rows.Close()

	var templates []models.WhatsAppTemplate
	for rows.Next() {
		var t models.WhatsAppTemplate
		err := rows.Scan(&t.ID, &t.Name, &t.Body, &t.Language, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, t)
	}

	return templates, nil
}

// GetTemplateByID retrieves one message template
func GetTemplateByID(id string) (*models.WhatsAppTemplate, error) {
	var t models.WhatsAppTemplate
	err := database.DB.QueryRow(`
		SELECT id, name, body, language, created_by, created_at, updated_at
		FROM whatsapp_templates
		WHERE id = ?
	`, id).Scan(&t.ID, &t.Name, &t.Body, &t.Language, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("template not found: %w", err)
	}
	return &t, nil
}

// CreateTemplate stores a new message template
func CreateTemplate(userID, name, body, language string) (*models.WhatsAppTemplate, error) {
	if language == "" {
		language = "en"
	}

	t := &models.WhatsAppTemplate{
		ID:        uuid.NewString(),
		Name:      name,
		Body:      body,
		Language:  language,
		CreatedBy: userID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	_, err := database.DB.Exec(`
		INSERT INTO whatsapp_templates (id, name, body, language, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.Name, t.Body, t.Language, t.CreatedBy, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert template: %w", err)
	}

	return t, nil
}

// DeleteTemplate removes a message template
func DeleteTemplate(id string) error {
	result, err := database.DB.Exec("DELETE FROM whatsapp_templates WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("template not found")
	}

	return nil
}
