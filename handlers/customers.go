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

func GetCustomers(w http.ResponseWriter, r *http.Request) {
	query := `
		SELECT id, name, phone, email, status, budget_id, goals, joined_at, created_by, created_at, updated_at
		FROM customers
		WHERE 1=1
	`
	args := []interface{}{}

	status := r.URL.Query().Get("status")
	if status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}

	budgetID := r.URL.Query().Get("budgetId")
	if budgetID != "" {
		query += " AND budget_id = ?"
		args = append(args, budgetID)
	}

	search := r.URL.Query().Get("q")
	if search != "" {
		query += " AND (name LIKE ? OR phone LIKE ? OR email LIKE ?)"
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern, pattern)
	}

	query += " ORDER BY joined_at DESC"

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var c models.Customer
		var email, budget, goals nullString
		err := rows.Scan(&c.ID, &c.Name, &c.Phone, &email, &c.Status, &budget,
			&goals, &c.JoinedAt, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		c.Email = email.value()
		c.BudgetID = budget.value()
		c.Goals = goals.value()
		customers = append(customers, c)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(customers)
}

func GetCustomer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	var c models.Customer
	var email, budget, goals nullString
	err := database.DB.QueryRow(`
		SELECT id, name, phone, email, status, budget_id, goals, joined_at, created_by, created_at, updated_at
		FROM customers
		WHERE id = ?
	`, id).Scan(&c.ID, &c.Name, &c.Phone, &email, &c.Status, &budget,
		&goals, &c.JoinedAt, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		http.Error(w, "Customer not found", http.StatusNotFound)
		return
	}
	c.Email = email.value()
	c.BudgetID = budget.value()
	c.Goals = goals.value()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

func AddCustomer(w http.ResponseWriter, r *http.Request) {
	var c models.Customer
	err := json.NewDecoder(r.Body).Decode(&c)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if c.Name == "" || c.Phone == "" {
		http.Error(w, "name and phone are required", http.StatusBadRequest)
		return
	}

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = "active"
	}
	if c.JoinedAt.IsZero() {
		c.JoinedAt = time.Now()
	}
	if c.CreatedBy == "" {
		c.CreatedBy = middleware.GetUserIDFromContext(r)
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	var budgetID interface{}
	if c.BudgetID != "" {
		budgetID = c.BudgetID
	}

	_, err = database.DB.Exec(`
		INSERT INTO customers (id, name, phone, email, status, budget_id, goals, joined_at, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.Name, c.Phone, c.Email, c.Status, budgetID, c.Goals, c.JoinedAt, c.CreatedBy, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

func UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	var c models.Customer
	err := json.NewDecoder(r.Body).Decode(&c)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var budgetID interface{}
	if c.BudgetID != "" {
		budgetID = c.BudgetID
	}

	_, err = database.DB.Exec(`
		UPDATE customers
		SET name = ?, phone = ?, email = ?, status = ?, budget_id = ?, goals = ?, updated_at = ?
		WHERE id = ?
	`, c.Name, c.Phone, c.Email, c.Status, budgetID, c.Goals, time.Now(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	_, err := database.DB.Exec("DELETE FROM customers WHERE id = ?", id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// AssignPlan links a workout plan to a customer through the junction table
func AssignPlan(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	customerID := vars["id"]

	var request struct {
		PlanID string `json:"planId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if request.PlanID == "" {
		http.Error(w, "planId is required", http.StatusBadRequest)
		return
	}

	_, err := database.DB.Exec(`
		INSERT OR REPLACE INTO customer_plans (customer_id, plan_id, assigned_at)
		VALUES (?, ?, ?)
	`, customerID, request.PlanID, time.Now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// UnassignPlan removes a workout plan from a customer
func UnassignPlan(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	customerID := vars["id"]
	planID := vars["planId"]

	_, err := database.DB.Exec(`
		DELETE FROM customer_plans WHERE customer_id = ? AND plan_id = ?
	`, customerID, planID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
