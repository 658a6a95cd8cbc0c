package services

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"coachdesk/backend/database"
	"coachdesk/backend/models"
)

// CreateSavedView creates a new saved view. When isDefault is true the
// previous default for the same (user, resource) scope is unset in the same
// transaction, so at most one default survives the call.
func CreateSavedView(userID, name, resourceKey, filterConfig string, isDefault bool) (*models.SavedView, error) {
	// Validate the filter config JSON
	var config models.FilterConfig
	if err := json.Unmarshal([]byte(filterConfig), &config); err != nil {
		return nil, fmt.Errorf("invalid filter configuration JSON: %w", err)
	}

	id, err := generateID()
	if err != nil {
		return nil, err
	}

	now := time.Now()

	tx, err := database.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if isDefault {
		_, err = tx.Exec(`
			UPDATE saved_views
			SET is_default = 0
			WHERE user_id = ? AND resource_key = ?
		`, userID, resourceKey)
		if err != nil {
			return nil, fmt.Errorf("failed to unset existing default views: %w", err)
		}
	}

	_, err = tx.Exec(`
		INSERT INTO saved_views (id, name, user_id, resource_key, filter_config, is_default, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, name, userID, resourceKey, filterConfig, isDefault, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert saved view: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit saved view: %w", err)
	}

	view := &models.SavedView{
		ID:           id,
		Name:         name,
		UserID:       userID,
		ResourceKey:  resourceKey,
		FilterConfig: filterConfig,
		IsDefault:    isDefault,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return view, nil
}

// GetSavedViews retrieves all saved views for a user and resource
func GetSavedViews(userID, resourceKey string) ([]models.SavedView, error) {
	rows, err := database.DB.Query(`
		SELECT id, name, user_id, resource_key, filter_config, is_default, created_at, updated_at
		FROM saved_views
		WHERE user_id = ? AND resource_key = ?
		ORDER BY created_at
	`, userID, resourceKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query saved views: %w", err)
	}
	defer rows.Close()

	var views []models.SavedView
	for rows.Next() {
		var view models.SavedView
		err := rows.Scan(
			&view.ID,
			&view.Name,
			&view.UserID,
			&view.ResourceKey,
			&view.FilterConfig,
			&view.IsDefault,
			&view.CreatedAt,
			&view.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan saved view: %w", err)
		}
		views = append(views, view)
	}

	return views, nil
}

// GetSavedViewByID retrieves a saved view by ID
func GetSavedViewByID(id string) (*models.SavedView, error) {
	var view models.SavedView
	err := database.DB.QueryRow(`
		SELECT id, name, user_id, resource_key, filter_config, is_default, created_at, updated_at
		FROM saved_views
		WHERE id = ?
	`, id).Scan(
		&view.ID,
		&view.Name,
		&view.UserID,
		&view.ResourceKey,
		&view.FilterConfig,
		&view.IsDefault,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("saved view not found")
		}
		return nil, fmt.Errorf("failed to query saved view: %w", err)
	}

	return &view, nil
}

// GetDefaultView retrieves the default view for a user and resource.
// Returns (nil, nil) when no default exists.
func GetDefaultView(userID, resourceKey string) (*models.SavedView, error) {
	var view models.SavedView
	err := database.DB.QueryRow(`
		SELECT id, name, user_id, resource_key, filter_config, is_default, created_at, updated_at
		FROM saved_views
		WHERE user_id = ? AND resource_key = ? AND is_default = 1
	`, userID, resourceKey).Scan(
		&view.ID,
		&view.Name,
		&view.UserID,
		&view.ResourceKey,
		&view.FilterConfig,
		&view.IsDefault,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query default view: %w", err)
	}

	return &view, nil
}

// EnsureDefaultView returns the default view for (user, resource), creating
// one with the resource's default filter configuration if none exists yet.
// Fetch and provision failures degrade to (nil) with a logged warning so the
// page still renders with empty filters. Two near-simultaneous calls from
// different sessions can both pass the existence check and create duplicate
// defaults; the query-before-insert keeps the common serial path idempotent.
func EnsureDefaultView(userID, resourceKey string) *models.SavedView {
	view, err := GetDefaultView(userID, resourceKey)
	if err != nil {
		log.Printf("Warning: failed to look up default view for %s/%s: %v", userID, resourceKey, err)
		return nil
	}
	if view != nil {
		return view
	}

	config := models.DefaultFilterConfig(resourceKey)
	configJSON, err := json.Marshal(config)
	if err != nil {
		log.Printf("Warning: failed to build default filter config for %s: %v", resourceKey, err)
		return nil
	}

	view, err = CreateSavedView(userID, "Default", resourceKey, string(configJSON), true)
	if err != nil {
		log.Printf("Warning: failed to create default view for %s/%s: %v", userID, resourceKey, err)
		return nil
	}

	return view
}

// UpdateSavedView updates an existing saved view, applying the same
// single-default rule as CreateSavedView
func UpdateSavedView(id, name, filterConfig string, isDefault bool) (*models.SavedView, error) {
	view, err := GetSavedViewByID(id)
	if err != nil {
		return nil, err
	}

	var config models.FilterConfig
	if err := json.Unmarshal([]byte(filterConfig), &config); err != nil {
		return nil, fmt.Errorf("invalid filter configuration JSON: %w", err)
	}

	now := time.Now()

	tx, err := database.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if isDefault {
		_, err = tx.Exec(`
			UPDATE saved_views
			SET is_default = 0
			WHERE user_id = ? AND resource_key = ? AND id != ?
		`, view.UserID, view.ResourceKey, id)
		if err != nil {
			return nil, fmt.Errorf("failed to unset existing default views: %w", err)
		}
	}

	_, err = tx.Exec(`
		UPDATE saved_views
		SET name = ?, filter_config = ?, is_default = ?, updated_at = ?
		WHERE id = ?
	`, name, filterConfig, isDefault, now, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update saved view: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit saved view update: %w", err)
	}

	view.Name = name
	view.FilterConfig = filterConfig
	view.IsDefault = isDefault
	view.UpdatedAt = now

	return view, nil
}

// DeleteSavedView deletes a saved view
func DeleteSavedView(id string) error {
	result, err := database.DB.Exec(`
		DELETE FROM saved_views
		WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete saved view: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("saved view not found")
	}

	return nil
}

// Helper function to generate a random ID
func generateID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
