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

// GetMeetings lists meetings, optionally restricted to a calendar window
// (from/to, RFC3339) and a customer
func GetMeetings(w http.ResponseWriter, r *http.Request) {
	query := `
		SELECT id, customer_id, title, start_time, end_time, location, status, notes, created_by, created_at, updated_at
		FROM meetings
		WHERE 1=1
	`
	args := []interface{}{}

	customerID := r.URL.Query().Get("customerId")
	if customerID != "" {
		query += " AND customer_id = ?"
		args = append(args, customerID)
	}

	status := r.URL.Query().Get("status")
	if status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}

	from := r.URL.Query().Get("from")
	if from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			http.Error(w, "invalid from timestamp", http.StatusBadRequest)
			return
		}
		query += " AND start_time >= ?"
		args = append(args, t)
	}

	to := r.URL.Query().Get("to")
	if to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			http.Error(w, "invalid to timestamp", http.StatusBadRequest)
			return
		}
		query += " AND start_time <= ?"
		args = append(args, t)
	}

	query += " ORDER BY start_time"

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var meetings []models.Meeting
	for rows.Next() {
		var m models.Meeting
		var location, notes nullString
		err := rows.Scan(&m.ID, &m.CustomerID, &m.Title, &m.StartTime, &m.EndTime,
			&location, &m.Status, &notes, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		m.Location = location.value()
		m.Notes = notes.value()
		meetings = append(meetings, m)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(meetings)
}

func AddMeeting(w http.ResponseWriter, r *http.Request) {
	var m models.Meeting
	err := json.NewDecoder(r.Body).Decode(&m)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if m.CustomerID == "" || m.Title == "" {
		http.Error(w, "customerId and title are required", http.StatusBadRequest)
		return
	}
	if m.StartTime.IsZero() {
		http.Error(w, "startTime is required", http.StatusBadRequest)
		return
	}
	if m.EndTime.IsZero() {
		m.EndTime = m.StartTime.Add(time.Hour)
	}
	if !m.EndTime.After(m.StartTime) {
		http.Error(w, "endTime must be after startTime", http.StatusBadRequest)
		return
	}

	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Status == "" {
		m.Status = models.MeetingScheduled
	}
	if m.CreatedBy == "" {
		m.CreatedBy = middleware.GetUserIDFromContext(r)
	}
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	_, err = database.DB.Exec(`
		INSERT INTO meetings (id, customer_id, title, start_time, end_time, location, status, notes, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.CustomerID, m.Title, m.StartTime, m.EndTime, m.Location, m.Status, m.Notes, m.CreatedBy, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(m)
}

func UpdateMeeting(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	var m models.Meeting
	err := json.NewDecoder(r.Body).Decode(&m)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, err = database.DB.Exec(`
		UPDATE meetings
		SET customer_id = ?, title = ?, start_time = ?, end_time = ?, location = ?, status = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`, m.CustomerID, m.Title, m.StartTime, m.EndTime, m.Location, m.Status, m.Notes, time.Now(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func DeleteMeeting(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	_, err := database.DB.Exec("DELETE FROM meetings WHERE id = ?", id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
