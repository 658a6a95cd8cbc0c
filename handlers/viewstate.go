package handlers

import (
	"encoding/json"
	"net/http"

	"coachdesk/backend/middleware"
	"coachdesk/backend/models"
	"coachdesk/backend/services"

	"github.com/gorilla/mux"
)

// GetViewState returns the live table state for a resource, initializing
// the default column layout on first visit
func GetViewState(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	resourceKey := vars["resource"]

	services.ViewStates.InitResource(userID, resourceKey)
	state := services.ViewStates.Get(userID, resourceKey)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state)
}

// viewStateUpdate carries one or more state transitions; only the fields
// present in the request are applied
type viewStateUpdate struct {
	SearchQuery    *string               `json:"searchQuery"`
	SelectedDate   *string               `json:"selectedDate"`
	SelectedStatus *string               `json:"selectedStatus"`
	SelectedTags   []string              `json:"selectedTags"`
	AddFilter      *models.ActiveFilter  `json:"addFilter"`
	RemoveFilter   *string               `json:"removeFilter"`
	ClearFilters   bool                  `json:"clearFilters"`
	SortBy         *string               `json:"sortBy"`
	SortOrder      string                `json:"sortOrder"`
	Page           *int                  `json:"page"`
	PageSize       *int                  `json:"pageSize"`
	ColumnID       string                `json:"columnId"`
	Visible        *bool                 `json:"visible"`
	ColumnOrder    []string              `json:"columnOrder"`
	ColumnWidth    *float64              `json:"columnWidth"`
	GroupBy        []string              `json:"groupBy"`
}

// UpdateViewState applies state transitions to a resource's table state
func UpdateViewState(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	resourceKey := vars["resource"]

	var update viewStateUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	store := services.ViewStates
	store.InitResource(userID, resourceKey)

	if update.SearchQuery != nil {
		store.SetSearchQuery(userID, resourceKey, *update.SearchQuery)
	}
	if update.SelectedDate != nil || update.SelectedStatus != nil || update.SelectedTags != nil {
		store.SetScalarFilters(userID, resourceKey, update.SelectedDate, update.SelectedStatus, update.SelectedTags)
	}
	if update.AddFilter != nil {
		store.AddFilter(userID, resourceKey, *update.AddFilter)
	}
	if update.RemoveFilter != nil {
		store.RemoveFilter(userID, resourceKey, *update.RemoveFilter)
	}
	if update.ClearFilters {
		store.ClearFilters(userID, resourceKey)
	}
	if update.SortBy != nil {
		store.SetSort(userID, resourceKey, *update.SortBy, update.SortOrder)
	}
	if update.Page != nil {
		store.SetPage(userID, resourceKey, *update.Page)
	}
	if update.PageSize != nil {
		store.SetPageSize(userID, resourceKey, *update.PageSize)
	}
	if update.ColumnID != "" && update.Visible != nil {
		store.SetColumnVisibility(userID, resourceKey, update.ColumnID, *update.Visible)
	}
	if update.ColumnOrder != nil {
		store.SetColumnOrder(userID, resourceKey, update.ColumnOrder)
	}
	if update.ColumnID != "" && update.ColumnWidth != nil {
		store.SetColumnWidth(userID, resourceKey, update.ColumnID, *update.ColumnWidth)
	}
	if update.GroupBy != nil {
		store.SetGroupBy(userID, resourceKey, update.GroupBy)
	}

	state := store.Get(userID, resourceKey)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state)
}

// SaveViewState snapshots the live state into a named saved view
func SaveViewState(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	resourceKey := vars["resource"]

	var request struct {
		Name      string `json:"name"`
		IsDefault bool   `json:"isDefault"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if request.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	config := services.ViewStates.Snapshot(userID, resourceKey)
	configJSON, err := json.Marshal(config)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	view, err := services.CreateSavedView(userID, request.Name, resourceKey, string(configJSON), request.IsDefault)
	if err != nil {
		http.Error(w, "Failed to save view: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(view)
}

// ApplyViewState hydrates the live state from a saved view
func ApplyViewState(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	resourceKey := vars["resource"]
	viewID := vars["viewId"]

	view, err := services.GetSavedViewByID(viewID)
	if err != nil {
		http.Error(w, "Failed to get saved view: "+err.Error(), http.StatusNotFound)
		return
	}
	if view.UserID != userID {
		http.Error(w, "Forbidden: You do not have permission to apply this view", http.StatusForbidden)
		return
	}
	if view.ResourceKey != resourceKey {
		http.Error(w, "View belongs to a different resource", http.StatusBadRequest)
		return
	}

	var config models.FilterConfig
	if err := json.Unmarshal([]byte(view.FilterConfig), &config); err != nil {
		http.Error(w, "Saved view has an invalid filter configuration", http.StatusInternalServerError)
		return
	}

	services.ViewStates.ApplyConfig(userID, resourceKey, config)

	state := services.ViewStates.Get(userID, resourceKey)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state)
}
