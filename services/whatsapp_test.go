package services

import (
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"coachdesk/backend/database"
	"coachdesk/backend/migrations"
	"coachdesk/backend/models"
	"coachdesk/backend/security"

	_ "github.com/mattn/go-sqlite3"
)

// setupWhatsAppTestDB sets up an in-memory database with the gateway tables
func setupWhatsAppTestDB(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Error opening test database: %v", err)
	}
	database.DB = db

	if err := migrations.AddWhatsAppTables(db); err != nil {
		t.Fatalf("Error creating WhatsApp tables: %v", err)
	}

	security.InitializeEncryption("test-encryption-key")
}

func TestRenderTemplate(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		vars     map[string]string
		expected string
	}{
		{
			name:     "Single variable",
			body:     "Hi {{name}}, see you at the gym!",
			vars:     map[string]string{"name": "Dana"},
			expected: "Hi Dana, see you at the gym!",
		},
		{
			name:     "Multiple variables",
			body:     "Hi {{name}}, your session is at {{time}}.",
			vars:     map[string]string{"name": "Dana", "time": "18:00"},
			expected: "Hi Dana, your session is at 18:00.",
		},
		{
			name:     "Repeated variable",
			body:     "{{name}} {{name}}",
			vars:     map[string]string{"name": "Dana"},
			expected: "Dana Dana",
		},
		{
			name:     "Unknown placeholder left as-is",
			body:     "Hi {{name}}, code {{code}}",
			vars:     map[string]string{"name": "Dana"},
			expected: "Hi Dana, code {{code}}",
		},
		{
			name:     "No variables",
			body:     "Plain message",
			vars:     nil,
			expected: "Plain message",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RenderTemplate(tc.body, tc.vars); got != tc.expected {
				t.Errorf("Expected '%s', got '%s'", tc.expected, got)
			}
		})
	}
}

func TestUpdateWhatsAppConfig_EncryptsToken(t *testing.T) {
	setupWhatsAppTestDB(t)
	defer database.DB.Close()

	config, err := UpdateWhatsAppConfig("user-1", "secret-token", "inst-1", "+972500000000")
	if err != nil {
		t.Fatalf("Error updating config: %v", err)
	}

	if !config.HasCredentials {
		t.Error("Expected config to report credentials present")
	}
	if config.EncryptedAPIToken == "secret-token" {
		t.Error("Expected token to be stored encrypted")
	}

	decrypted, err := security.Decrypt(config.EncryptedAPIToken)
	if err != nil {
		t.Fatalf("Error decrypting stored token: %v", err)
	}
	if decrypted != "secret-token" {
		t.Errorf("Expected decrypted token 'secret-token', got '%s'", decrypted)
	}

	// Saving again replaces the row rather than duplicating it
	if _, err := UpdateWhatsAppConfig("user-1", "rotated-token", "inst-1", "+972500000000"); err != nil {
		t.Fatalf("Error rotating token: %v", err)
	}

	var count int
	if err := database.DB.QueryRow("SELECT COUNT(*) FROM whatsapp_config WHERE user_id = 'user-1'").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("Expected 1 config row after upsert, got %d", count)
	}
}

func TestGetWhatsAppConfig_MissingIsNotAnError(t *testing.T) {
	setupWhatsAppTestDB(t)
	defer database.DB.Close()

	config, err := models.GetWhatsAppConfig(database.DB, "nobody")
	if err != nil {
		t.Fatalf("Expected no error for missing config, got %v", err)
	}
	if config.HasCredentials {
		t.Error("Expected HasCredentials=false for missing config")
	}
	if config.UserID != "nobody" {
		t.Errorf("Expected user ID carried through, got '%s'", config.UserID)
	}
}

func TestSendTemplate(t *testing.T) {
	setupWhatsAppTestDB(t)
	defer database.DB.Close()

	var gotAuth string
	var gotPayload map[string]string
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		buf, _ := io.ReadAll(r.Body)
		json.Unmarshal(buf, &gotPayload)
		w.WriteHeader(http.StatusOK)
	}))
	defer gateway.Close()

	os.Setenv("WHATSAPP_API_URL", gateway.URL)
	defer os.Unsetenv("WHATSAPP_API_URL")

	if _, err := UpdateWhatsAppConfig("user-1", "gw-token", "inst-1", "+972500000000"); err != nil {
		t.Fatal(err)
	}
	template, err := CreateTemplate("user-1", "Reminder", "Hi {{name}}, see you at {{time}}!", "en")
	if err != nil {
		t.Fatal(err)
	}

	message, err := SendTemplate("user-1", template.ID, "+972501234567", map[string]string{
		"name": "Dana",
		"time": "18:00",
	})
	if err != nil {
		t.Fatalf("Error sending template: %v", err)
	}

	if message.Status != "sent" {
		t.Errorf("Expected message status 'sent', got '%s'", message.Status)
	}
	if message.Body != "Hi Dana, see you at 18:00!" {
		t.Errorf("Expected rendered body, got '%s'", message.Body)
	}
	if gotAuth != "Bearer gw-token" {
		t.Errorf("Expected bearer auth with decrypted token, got '%s'", gotAuth)
	}
	if gotPayload["to"] != "+972501234567" {
		t.Errorf("Expected payload addressed to customer, got '%s'", gotPayload["to"])
	}

	// The attempt is recorded in the message log
	var status string
	if err := database.DB.QueryRow("SELECT status FROM whatsapp_messages WHERE id = ?", message.ID).Scan(&status); err != nil {
		t.Fatal(err)
	}
	if status != "sent" {
		t.Errorf("Expected logged status 'sent', got '%s'", status)
	}
}

func TestSendTemplate_GatewayFailureIsLogged(t *testing.T) {
	setupWhatsAppTestDB(t)
	defer database.DB.Close()

	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid token", http.StatusUnauthorized)
	}))
	defer gateway.Close()

	os.Setenv("WHATSAPP_API_URL", gateway.URL)
	defer os.Unsetenv("WHATSAPP_API_URL")

	if _, err := UpdateWhatsAppConfig("user-1", "bad-token", "inst-1", "+972500000000"); err != nil {
		t.Fatal(err)
	}
	template, err := CreateTemplate("user-1", "Reminder", "Hello", "en")
	if err != nil {
		t.Fatal(err)
	}

	message, err := SendTemplate("user-1", template.ID, "+972501234567", nil)
	if err == nil {
		t.Fatal("Expected error from failing gateway, got nil")
	}
	if message == nil {
		t.Fatal("Expected failed message record alongside the error")
	}
	if message.Status != "failed" {
		t.Errorf("Expected message status 'failed', got '%s'", message.Status)
	}

	// Failures are still recorded in the message log
	var status string
	if err := database.DB.QueryRow("SELECT status FROM whatsapp_messages WHERE id = ?", message.ID).Scan(&status); err != nil {
		t.Fatal(err)
	}
	if status != "failed" {
		t.Errorf("Expected logged status 'failed', got '%s'", status)
	}
}

func TestSendTemplate_RequiresConfiguredGateway(t *testing.T) {
	setupWhatsAppTestDB(t)
	defer database.DB.Close()

	template, err := CreateTemplate("user-1", "Reminder", "Hello", "en")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := SendTemplate("user-1", template.ID, "+972501234567", nil); err == nil {
		t.Error("Expected error when gateway is not configured, got nil")
	}
}

func TestTemplateCRUD(t *testing.T) {
	setupWhatsAppTestDB(t)
	defer database.DB.Close()

	template, err := CreateTemplate("user-1", "Welcome", "Welcome aboard, {{name}}!", "")
	if err != nil {
		t.Fatalf("Error creating template: %v", err)
	}
	if template.Language != "en" {
		t.Errorf("Expected language to default to 'en', got '%s'", template.Language)
	}

	templates, err := GetTemplates()
	if err != nil {
		t.Fatalf("Error listing templates: %v", err)
	}
	if len(templates) != 1 {
		t.Fatalf("Expected 1 template, got %d", len(templates))
	}

	fetched, err := GetTemplateByID(template.ID)
	if err != nil {
		t.Fatalf("Error fetching template: %v", err)
	}
	if fetched.Name != "Welcome" {
		t.Errorf("Expected template 'Welcome', got '%s'", fetched.Name)
	}

	if err := DeleteTemplate(template.ID); err != nil {
		t.Fatalf("Error deleting template: %v", err)
	}
	if err := DeleteTemplate(template.ID); err == nil {
		t.Error("Expected error deleting missing template, got nil")
	}
}
