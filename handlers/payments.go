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

func GetPayments(w http.ResponseWriter, r *http.Request) {
	query := `
		SELECT id, customer_id, amount, currency, method, status, description, paid_at, created_by, created_at, updated_at
		FROM payments
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

	method := r.URL.Query().Get("method")
	if method != "" {
		query += " AND method = ?"
		args = append(args, method)
	}

	query += " ORDER BY paid_at DESC"

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		var description nullString
		err := rows.Scan(&p.ID, &p.CustomerID, &p.Amount, &p.Currency, &p.Method,
			&p.Status, &description, &p.PaidAt, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		p.Description = description.value()
		payments = append(payments, p)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payments)
}

func AddPayment(w http.ResponseWriter, r *http.Request) {
	var p models.Payment
	err := json.NewDecoder(r.Body).Decode(&p)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if p.CustomerID == "" {
		http.Error(w, "customerId is required", http.StatusBadRequest)
		return
	}
	if p.Amount <= 0 {
		http.Error(w, "amount must be positive", http.StatusBadRequest)
		return
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Currency == "" {
		p.Currency = "USD"
	}
	if p.Method == "" {
		p.Method = "cash"
	}
	if p.Status == "" {
		p.Status = models.PaymentPaid
	}
	if p.PaidAt.IsZero() {
		p.PaidAt = time.Now()
	}
	if p.CreatedBy == "" {
		p.CreatedBy = middleware.GetUserIDFromContext(r)
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err = database.DB.Exec(`
		INSERT INTO payments (id, customer_id, amount, currency, method, status, description, paid_at, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.CustomerID, p.Amount, p.Currency, p.Method, p.Status, p.Description, p.PaidAt, p.CreatedBy, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(p)
}

func UpdatePayment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	var p models.Payment
	err := json.NewDecoder(r.Body).Decode(&p)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, err = database.DB.Exec(`
		UPDATE payments
		SET customer_id = ?, amount = ?, currency = ?, method = ?, status = ?, description = ?, paid_at = ?, updated_at = ?
		WHERE id = ?
	`, p.CustomerID, p.Amount, p.Currency, p.Method, p.Status, p.Description, p.PaidAt, time.Now(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func DeletePayment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	_, err := database.DB.Exec("DELETE FROM payments WHERE id = ?", id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
