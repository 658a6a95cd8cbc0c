package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"coachdesk/backend/middleware"
	"coachdesk/backend/models"
	"coachdesk/backend/services"

	"github.com/gorilla/mux"
)

// WhatsAppHandler handles WhatsApp gateway requests
type WhatsAppHandler struct {
	db *sql.DB
}

// NewWhatsAppHandler creates a new WhatsApp handler
func NewWhatsAppHandler(db *sql.DB) *WhatsAppHandler {
	return &WhatsAppHandler{db: db}
}

// GetConfig handles GET /whatsapp/config
func (h *WhatsAppHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	config, err := models.GetWhatsAppConfig(h.db, userID)
	if err != nil {
		http.Error(w, "Error retrieving WhatsApp configuration", http.StatusInternalServerError)
		return
	}

	// Never return the token; a placeholder tells the UI one is saved
	if config.HasCredentials {
		config.APIToken = "********"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(config)
}

// UpdateConfig handles PUT /whatsapp/config
func (h *WhatsAppHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	var request struct {
		APIToken    string `json:"apiToken"`
		InstanceID  string `json:"instanceId"`
		SenderPhone string `json:"senderPhone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if request.APIToken == "" {
		http.Error(w, "apiToken is required", http.StatusBadRequest)
		return
	}

	config, err := services.UpdateWhatsAppConfig(userID, request.APIToken, request.InstanceID, request.SenderPhone)
	if err != nil {
		http.Error(w, "Failed to update WhatsApp configuration: "+err.Error(), http.StatusInternalServerError)
		return
	}

	config.APIToken = "********"
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(config)
}

// GetTemplates handles GET /whatsapp/templates
func (h *WhatsAppHandler) GetTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := services.GetTemplates()
	if err != nil {
		http.Error(w, "Failed to get templates: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(templates)
}

// CreateTemplate handles POST /whatsapp/templates
func (h *WhatsAppHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	var request struct {
		Name     string `json:"name"`
		Body     string `json:"body"`
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if request.Name == "" || request.Body == "" {
		http.Error(w, "name and body are required", http.StatusBadRequest)
		return
	}

	template, err := services.CreateTemplate(userID, request.Name, request.Body, request.Language)
	if err != nil {
		http.Error(w, "Failed to create template: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(template)
}

// DeleteTemplate handles DELETE /whatsapp/templates/{id}
func (h *WhatsAppHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	if err := services.DeleteTemplate(id); err != nil {
		http.Error(w, "Failed to delete template: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// SendMessage handles POST /whatsapp/send
func (h *WhatsAppHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	var request struct {
		TemplateID string            `json:"templateId"`
		Phone      string            `json:"phone"`
		Variables  map[string]string `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if request.TemplateID == "" || request.Phone == "" {
		http.Error(w, "templateId and phone are required", http.StatusBadRequest)
		return
	}

	message, err := services.SendTemplate(userID, request.TemplateID, request.Phone, request.Variables)
	if err != nil {
		http.Error(w, "Failed to send message: "+err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(message)
}
