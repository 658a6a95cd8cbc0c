package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"coachdesk/backend/database"
	"coachdesk/backend/middleware"
	"coachdesk/backend/models"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

func GetLeads(w http.ResponseWriter, r *http.Request) {
	query := `
		SELECT id, name, phone, email, status, source, tags, custom_fields, notes, created_by, created_at, updated_at
		FROM leads
		WHERE 1=1
	`
	args := []interface{}{}

	status := r.URL.Query().Get("status")
	if status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}

	source := r.URL.Query().Get("source")
	if source != "" {
		query += " AND source = ?"
		args = append(args, source)
	}

	search := r.URL.Query().Get("q")
	if search != "" {
		query += " AND (name LIKE ? OR phone LIKE ? OR email LIKE ?)"
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern, pattern)
	}

	query += " ORDER BY created_at DESC"

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var leads []models.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		leads = append(leads, lead)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(leads)
}

type leadScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row leadScanner) (models.Lead, error) {
	var lead models.Lead
	var email, source, customFields, notes nullString
	var tagsJSON string
	err := row.Scan(
		&lead.ID, &lead.Name, &lead.Phone, &email, &lead.Status, &source,
		&tagsJSON, &customFields, &notes, &lead.CreatedBy, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return lead, err
	}
	lead.Email = email.value()
	lead.Source = source.value()
	lead.CustomFields = customFields.value()
	lead.Notes = notes.value()
	if err := json.Unmarshal([]byte(tagsJSON), &lead.Tags); err != nil {
		lead.Tags = []string{}
	}
	return lead, nil
}

func GetLead(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	row := database.DB.QueryRow(`
		SELECT id, name, phone, email, status, source, tags, custom_fields, notes, created_by, created_at, updated_at
		FROM leads
		WHERE id = ?
	`, id)

	lead, err := scanLead(row)
	if err != nil {
		http.Error(w, "Lead not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lead)
}

func AddLead(w http.ResponseWriter, r *http.Request) {
	var lead models.Lead
	err := json.NewDecoder(r.Body).Decode(&lead)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if lead.Name == "" || lead.Phone == "" {
		http.Error(w, "name and phone are required", http.StatusBadRequest)
		return
	}

	if lead.ID == "" {
		lead.ID = uuid.NewString()
	}
	if lead.Status == "" {
		lead.Status = models.LeadStatusNew
	}
	if lead.Tags == nil {
		lead.Tags = []string{}
	}
	if lead.CreatedBy == "" {
		lead.CreatedBy = middleware.GetUserIDFromContext(r)
	}
	now := time.Now()
	lead.CreatedAt = now
	lead.UpdatedAt = now

	tagsJSON, _ := json.Marshal(lead.Tags)

	_, err = database.DB.Exec(`
		INSERT INTO leads (id, name, phone, email, status, source, tags, custom_fields, notes, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, lead.ID, lead.Name, lead.Phone, lead.Email, lead.Status, lead.Source,
		string(tagsJSON), lead.CustomFields, lead.Notes, lead.CreatedBy, lead.CreatedAt, lead.UpdatedAt)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(lead)
}

func UpdateLead(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	var lead models.Lead
	err := json.NewDecoder(r.Body).Decode(&lead)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if lead.Tags == nil {
		lead.Tags = []string{}
	}
	tagsJSON, _ := json.Marshal(lead.Tags)

	_, err = database.DB.Exec(`
		UPDATE leads
		SET name = ?, phone = ?, email = ?, status = ?, source = ?, tags = ?, custom_fields = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`, lead.Name, lead.Phone, lead.Email, lead.Status, lead.Source,
		string(tagsJSON), lead.CustomFields, lead.Notes, time.Now(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func DeleteLead(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	_, err := database.DB.Exec("DELETE FROM leads WHERE id = ?", id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
