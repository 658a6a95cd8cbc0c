package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"coachdesk/backend/database"
	"coachdesk/backend/models"
	"coachdesk/backend/services"

	"github.com/gorilla/mux"
	_ "github.com/mattn/go-sqlite3"
)

func seedFilterFieldData(t *testing.T) {
	_, err := database.DB.Exec(`
		INSERT INTO budgets (id, name, price, sessions_per_month, duration_months, active, created_at, updated_at)
		VALUES
			('b1', 'Starter', 350, 4, 3, 1, '2026-01-01', '2026-01-01'),
			('b2', 'Premium', 700, 12, 6, 1, '2026-01-01', '2026-01-01');
		INSERT INTO workout_plans (id, name, level, days_per_week, created_by, created_at, updated_at)
		VALUES
			('wp1', 'Full Body', 'beginner', 3, 'coach', '2026-01-01', '2026-01-01'),
			('wp2', 'Push Pull Legs', 'advanced', 6, 'coach', '2026-01-01', '2026-01-01');
		INSERT INTO customers (id, name, phone, status, budget_id, joined_at, created_by, created_at, updated_at)
		VALUES ('c1', 'Dana Cohen', '0501234567', 'active', 'b1', '2026-02-01', 'coach', '2026-02-01', '2026-02-01');
	`)
	if err != nil {
		t.Fatalf("Error seeding filter field data: %v", err)
	}
}

func TestGetFilterFieldsHandler_Customers(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()
	seedFilterFieldData(t)

	req := NewAuthenticatedRequest("GET", "/resources/"+models.ResourceCustomers+"/filter-fields", nil)
	req = mux.SetURLVars(req, map[string]string{"resource": models.ResourceCustomers})
	w := httptest.NewRecorder()

	GetFilterFields(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var fields []services.FilterField
	if err := json.NewDecoder(w.Body).Decode(&fields); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}

	byID := make(map[string]services.FilterField, len(fields))
	for _, f := range fields {
		byID[f.ID] = f
	}

	// Base entity columns appear unprefixed
	if _, ok := byID["name"]; !ok {
		t.Error("Expected base column field 'name'")
	}

	// The direct budget relationship contributes prefixed fields
	if f, ok := byID["budget.price"]; !ok {
		t.Error("Expected related field 'budget.price'")
	} else if f.Type != services.FieldNumber {
		t.Errorf("Expected 'budget.price' to infer as number, got %s", f.Type)
	}

	// The through relationship injects its exists pseudo-field
	if f, ok := byID["workout_plan.exists"]; !ok {
		t.Error("Expected pseudo-field 'workout_plan.exists'")
	} else if f.Type != services.FieldBoolean {
		t.Errorf("Expected 'workout_plan.exists' to be boolean, got %s", f.Type)
	}
	if _, ok := byID["workout_plan.level"]; !ok {
		t.Error("Expected related field 'workout_plan.level'")
	}
}

func TestGetFilterFieldsHandler_LeadsEmbedded(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	req := NewAuthenticatedRequest("GET", "/resources/"+models.ResourceLeads+"/filter-fields", nil)
	req = mux.SetURLVars(req, map[string]string{"resource": models.ResourceLeads})
	w := httptest.NewRecorder()

	GetFilterFields(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, w.Code)
	}

	var fields []services.FilterField
	if err := json.NewDecoder(w.Body).Decode(&fields); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}

	found := false
	for _, f := range fields {
		if f.ID == "custom.goal" {
			found = true
			if f.Type != services.FieldSelect {
				t.Errorf("Expected 'custom.goal' to be a select field, got %s", f.Type)
			}
			if len(f.Options) == 0 {
				t.Error("Expected 'custom.goal' to carry options")
			}
		}
	}
	if !found {
		t.Error("Expected embedded field 'custom.goal' in leads filter fields")
	}
}

func TestGetFilterFieldsHandler_UnknownResource(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	req := NewAuthenticatedRequest("GET", "/resources/nope/filter-fields", nil)
	req = mux.SetURLVars(req, map[string]string{"resource": "nope"})
	w := httptest.NewRecorder()

	GetFilterFields(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestGetTableColumnsHandler(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()
	seedFilterFieldData(t)

	req := NewAuthenticatedRequest("GET", "/resources/"+models.ResourceCustomers+"/columns", nil)
	req = mux.SetURLVars(req, map[string]string{"resource": models.ResourceCustomers})
	w := httptest.NewRecorder()

	GetTableColumns(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, w.Code)
	}

	var columns []struct {
		ID     string `json:"id"`
		Header string `json:"header"`
	}
	if err := json.NewDecoder(w.Body).Decode(&columns); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}

	hasBase, hasRelated := false, false
	for _, c := range columns {
		if c.ID == "name" {
			hasBase = true
		}
		if c.ID == "budget.name" {
			hasRelated = true
		}
	}
	if !hasBase {
		t.Error("Expected base column 'name'")
	}
	if !hasRelated {
		t.Error("Expected related column 'budget.name'")
	}
}
