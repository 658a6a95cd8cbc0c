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

func GetWorkoutPlans(w http.ResponseWriter, r *http.Request) {
	query := `
		SELECT id, name, description, level, days_per_week, content, created_by, created_at, updated_at
		FROM workout_plans
		WHERE 1=1
	`
	args := []interface{}{}

	level := r.URL.Query().Get("level")
	if level != "" {
		query += " AND level = ?"
		args = append(args, level)
	}

	query += " ORDER BY name"

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var plans []models.WorkoutPlan
	for rows.Next() {
		var p models.WorkoutPlan
		var description nullString
		err := rows.Scan(&p.ID, &p.Name, &description, &p.Level, &p.DaysPerWeek,
			&p.Content, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		p.Description = description.value()
		plans = append(plans, p)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(plans)
}

func AddWorkoutPlan(w http.ResponseWriter, r *http.Request) {
	var p models.WorkoutPlan
	err := json.NewDecoder(r.Body).Decode(&p)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if p.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Level == "" {
		p.Level = "beginner"
	}
	if p.DaysPerWeek == 0 {
		p.DaysPerWeek = 3
	}
	if p.CreatedBy == "" {
		p.CreatedBy = middleware.GetUserIDFromContext(r)
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err = database.DB.Exec(`
		INSERT INTO workout_plans (id, name, description, level, days_per_week, content, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Description, p.Level, p.DaysPerWeek, p.Content, p.CreatedBy, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(p)
}

func UpdateWorkoutPlan(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	var p models.WorkoutPlan
	err := json.NewDecoder(r.Body).Decode(&p)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, err = database.DB.Exec(`
		UPDATE workout_plans
		SET name = ?, description = ?, level = ?, days_per_week = ?, content = ?, updated_at = ?
		WHERE id = ?
	`, p.Name, p.Description, p.Level, p.DaysPerWeek, p.Content, time.Now(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func DeleteWorkoutPlan(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	_, err := database.DB.Exec("DELETE FROM workout_plans WHERE id = ?", id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func GetNutritionPlans(w http.ResponseWriter, r *http.Request) {
	rows, err := database.DB.Query(`
		SELECT id, name, description, calories, protein_grams, content, created_by, created_at, updated_at
		FROM nutrition_plans
		ORDER BY name
	`)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var plans []models.NutritionPlan
	for rows.Next() {
		var p models.NutritionPlan
		var description nullString
		err := rows.Scan(&p.ID, &p.Name, &description, &p.Calories, &p.ProteinGrams,
			&p.Content, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		p.Description = description.value()
		plans = append(plans, p)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(plans)
}

func AddNutritionPlan(w http.ResponseWriter, r *http.Request) {
	var p models.NutritionPlan
	err := json.NewDecoder(r.Body).Decode(&p)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if p.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedBy == "" {
		p.CreatedBy = middleware.GetUserIDFromContext(r)
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err = database.DB.Exec(`
		INSERT INTO nutrition_plans (id, name, description, calories, protein_grams, content, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Description, p.Calories, p.ProteinGrams, p.Content, p.CreatedBy, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(p)
}

func UpdateNutritionPlan(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	var p models.NutritionPlan
	err := json.NewDecoder(r.Body).Decode(&p)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, err = database.DB.Exec(`
		UPDATE nutrition_plans
		SET name = ?, description = ?, calories = ?, protein_grams = ?, content = ?, updated_at = ?
		WHERE id = ?
	`, p.Name, p.Description, p.Calories, p.ProteinGrams, p.Content, time.Now(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func DeleteNutritionPlan(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	_, err := database.DB.Exec("DELETE FROM nutrition_plans WHERE id = ?", id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
