package handlers

import (
	"encoding/json"
	"net/http"

	"coachdesk/backend/middleware"
	"coachdesk/backend/services"

	"github.com/gorilla/mux"
)

// GetSavedViews returns all saved views for the current user and resource
func GetSavedViews(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	resourceKey := r.URL.Query().Get("resourceKey")
	if resourceKey == "" {
		http.Error(w, "resourceKey query parameter is required", http.StatusBadRequest)
		return
	}

	views, err := services.GetSavedViews(userID, resourceKey)
	if err != nil {
		http.Error(w, "Failed to get saved views: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(views)
}

// GetDefaultSavedView returns the default view for a resource, creating it
// with the resource's default filter configuration when none exists yet.
// Provisioning failures degrade to a 204 so the page still renders with
// empty filters.
func GetDefaultSavedView(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	resourceKey := r.URL.Query().Get("resourceKey")
	if resourceKey == "" {
		http.Error(w, "resourceKey query parameter is required", http.StatusBadRequest)
		return
	}

	view := services.EnsureDefaultView(userID, resourceKey)
	if view == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

// GetSavedView returns a specific saved view
func GetSavedView(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	viewID := vars["id"]
	if viewID == "" {
		http.Error(w, "View ID is required", http.StatusBadRequest)
		return
	}

	view, err := services.GetSavedViewByID(viewID)
	if err != nil {
		http.Error(w, "Failed to get saved view: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if view.UserID != userID {
		http.Error(w, "Forbidden: You do not have permission to access this view", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

// CreateSavedView creates a new saved view
func CreateSavedView(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	var request struct {
		Name         string `json:"name"`
		ResourceKey  string `json:"resourceKey"`
		FilterConfig string `json:"filterConfig"`
		IsDefault    bool   `json:"isDefault"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if request.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	if request.ResourceKey == "" {
		http.Error(w, "resourceKey is required", http.StatusBadRequest)
		return
	}

	if request.FilterConfig == "" {
		http.Error(w, "filterConfig is required", http.StatusBadRequest)
		return
	}

	view, err := services.CreateSavedView(userID, request.Name, request.ResourceKey, request.FilterConfig, request.IsDefault)
	if err != nil {
		http.Error(w, "Failed to create saved view: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(view)
}

// UpdateSavedView updates an existing saved view
func UpdateSavedView(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	viewID := vars["id"]
	if viewID == "" {
		http.Error(w, "View ID is required", http.StatusBadRequest)
		return
	}

	view, err := services.GetSavedViewByID(viewID)
	if err != nil {
		http.Error(w, "Failed to get saved view: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if view.UserID != userID {
		http.Error(w, "Forbidden: You do not have permission to update this view", http.StatusForbidden)
		return
	}

	var request struct {
		Name         string `json:"name"`
		FilterConfig string `json:"filterConfig"`
		IsDefault    bool   `json:"isDefault"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if request.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	if request.FilterConfig == "" {
		http.Error(w, "filterConfig is required", http.StatusBadRequest)
		return
	}

	updatedView, err := services.UpdateSavedView(viewID, request.Name, request.FilterConfig, request.IsDefault)
	if err != nil {
		http.Error(w, "Failed to update saved view: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updatedView)
}

// DeleteSavedView deletes a saved view
func DeleteSavedView(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: No user ID found", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	viewID := vars["id"]
	if viewID == "" {
		http.Error(w, "View ID is required", http.StatusBadRequest)
		return
	}

	view, err := services.GetSavedViewByID(viewID)
	if err != nil {
		http.Error(w, "Failed to get saved view: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if view.UserID != userID {
		http.Error(w, "Forbidden: You do not have permission to delete this view", http.StatusForbidden)
		return
	}

	err = services.DeleteSavedView(viewID)
	if err != nil {
		http.Error(w, "Failed to delete saved view: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
