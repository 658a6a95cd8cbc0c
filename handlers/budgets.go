package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"coachdesk/backend/database"
	"coachdesk/backend/models"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

func GetBudgets(w http.ResponseWriter, r *http.Request) {
	query := `
		SELECT id, name, price, currency, sessions_per_month, duration_months, active, created_at, updated_at
		FROM budgets
		WHERE 1=1
	`
	args := []interface{}{}

	active := r.URL.Query().Get("active")
	if active != "" {
		query += " AND active = ?"
		args = append(args, active == "true")
	}

	query += " ORDER BY price"

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		err := rows.Scan(&b.ID, &b.Name, &b.Price, &b.Currency, &b.SessionsPerMonth,
			&b.DurationMonths, &b.Active, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		budgets = append(budgets, b)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(budgets)
}

func AddBudget(w http.ResponseWriter, r *http.Request) {
	var b models.Budget
	err := json.NewDecoder(r.Body).Decode(&b)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if b.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Currency == "" {
		b.Currency = "USD"
	}
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	_, err = database.DB.Exec(`
		INSERT INTO budgets (id, name, price, currency, sessions_per_month, duration_months, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, b.ID, b.Name, b.Price, b.Currency, b.SessionsPerMonth, b.DurationMonths, b.Active, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(b)
}

func UpdateBudget(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	var b models.Budget
	err := json.NewDecoder(r.Body).Decode(&b)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, err = database.DB.Exec(`
		UPDATE budgets
		SET name = ?, price = ?, currency = ?, sessions_per_month = ?, duration_months = ?, active = ?, updated_at = ?
		WHERE id = ?
	`, b.Name, b.Price, b.Currency, b.SessionsPerMonth, b.DurationMonths, b.Active, time.Now(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func DeleteBudget(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	_, err := database.DB.Exec("DELETE FROM budgets WHERE id = ?", id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
