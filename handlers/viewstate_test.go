package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"coachdesk/backend/models"
	"coachdesk/backend/services"

	"github.com/gorilla/mux"
)

func TestGetViewStateHandler_InitializesDefaults(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	req := NewAuthenticatedRequest("GET", "/viewstate/"+models.ResourceMeetings, nil)
	req = mux.SetURLVars(req, map[string]string{"resource": models.ResourceMeetings})
	w := httptest.NewRecorder()

	GetViewState(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, w.Code)
	}

	var state services.ViewState
	if err := json.NewDecoder(w.Body).Decode(&state); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}

	expectedCols := models.DefaultColumns(models.ResourceMeetings)
	if len(state.ColumnOrder) != len(expectedCols) {
		t.Errorf("Expected %d default columns, got %d", len(expectedCols), len(state.ColumnOrder))
	}
	if state.SortBy != "startTime" {
		t.Errorf("Expected default sort 'startTime', got '%s'", state.SortBy)
	}
	if state.Page != 1 {
		t.Errorf("Expected first page, got %d", state.Page)
	}
}

func TestUpdateViewStateHandler(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	body := map[string]interface{}{
		"searchQuery": "crossfit",
		"addFilter": map[string]interface{}{
			"id":       "f1",
			"fieldId":  "status",
			"operator": "equals",
			"values":   []string{models.LeadStatusTrial},
			"type":     "select",
		},
		"sortBy":    "name",
		"sortOrder": "asc",
	}
	req := NewAuthenticatedRequest("PATCH", "/viewstate/"+models.ResourceLeads, body)
	req = mux.SetURLVars(req, map[string]string{"resource": models.ResourceLeads})
	w := httptest.NewRecorder()

	UpdateViewState(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var state services.ViewState
	if err := json.NewDecoder(w.Body).Decode(&state); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	if state.SearchQuery != "crossfit" {
		t.Errorf("Expected search query 'crossfit', got '%s'", state.SearchQuery)
	}
	if len(state.Filters) != 1 || state.Filters[0].FieldID != "status" {
		t.Errorf("Expected one status filter, got %+v", state.Filters)
	}
	if state.SortBy != "name" || state.SortOrder != "asc" {
		t.Errorf("Expected sort name asc, got %s %s", state.SortBy, state.SortOrder)
	}
}

func TestSaveViewStateHandler(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	// Build up some live state first
	services.ViewStates.InitResource(TestUserID, models.ResourcePayments)
	services.ViewStates.SetSearchQuery(TestUserID, models.ResourcePayments, "overdue")

	body := map[string]interface{}{
		"name":      "Overdue payments",
		"isDefault": false,
	}
	req := NewAuthenticatedRequest("POST", "/viewstate/"+models.ResourcePayments+"/save", body)
	req = mux.SetURLVars(req, map[string]string{"resource": models.ResourcePayments})
	w := httptest.NewRecorder()

	SaveViewState(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status code %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}

	var view models.SavedView
	if err := json.NewDecoder(w.Body).Decode(&view); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	if view.ResourceKey != models.ResourcePayments {
		t.Errorf("Expected resource key '%s', got '%s'", models.ResourcePayments, view.ResourceKey)
	}

	var config models.FilterConfig
	if err := json.Unmarshal([]byte(view.FilterConfig), &config); err != nil {
		t.Fatalf("Error decoding stored config: %v", err)
	}
	if config.SearchQuery != "overdue" {
		t.Errorf("Expected snapshot to capture search query, got '%s'", config.SearchQuery)
	}
}

func TestApplyViewStateHandler(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	config := models.DefaultFilterConfig(models.ResourceCustomers)
	config.SearchQuery = "premium"
	config.SortBy = "name"
	config.SortOrder = "asc"
	configJSON, _ := json.Marshal(config)

	view, err := services.CreateSavedView(TestUserID, "Premium customers", models.ResourceCustomers, string(configJSON), false)
	if err != nil {
		t.Fatal(err)
	}

	req := NewAuthenticatedRequest("POST", "/viewstate/"+models.ResourceCustomers+"/apply/"+view.ID, nil)
	req = mux.SetURLVars(req, map[string]string{
		"resource": models.ResourceCustomers,
		"viewId":   view.ID,
	})
	w := httptest.NewRecorder()

	ApplyViewState(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	state := services.ViewStates.Get(TestUserID, models.ResourceCustomers)
	if state.SearchQuery != "premium" {
		t.Errorf("Expected applied search query 'premium', got '%s'", state.SearchQuery)
	}
	if state.SortBy != "name" || state.SortOrder != "asc" {
		t.Errorf("Expected applied sort name asc, got %s %s", state.SortBy, state.SortOrder)
	}
}

func TestApplyViewStateHandler_ResourceMismatch(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	configJSON, _ := json.Marshal(models.DefaultFilterConfig(models.ResourceLeads))
	view, err := services.CreateSavedView(TestUserID, "Leads view", models.ResourceLeads, string(configJSON), false)
	if err != nil {
		t.Fatal(err)
	}

	// Applying a leads view onto the customers table is rejected
	req := NewAuthenticatedRequest("POST", "/viewstate/"+models.ResourceCustomers+"/apply/"+view.ID, nil)
	req = mux.SetURLVars(req, map[string]string{
		"resource": models.ResourceCustomers,
		"viewId":   view.ID,
	})
	w := httptest.NewRecorder()

	ApplyViewState(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, w.Code)
	}
}
