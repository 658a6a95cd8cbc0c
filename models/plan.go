package models

import "time"

// WorkoutPlan content is coach-authored markdown; Level is beginner,
// intermediate or advanced.
type WorkoutPlan struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Level       string    `json:"level"`
	DaysPerWeek int       `json:"daysPerWeek"`
	Content     string    `json:"content"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type NutritionPlan struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Calories     int       `json:"calories"`
	ProteinGrams int       `json:"proteinGrams"`
	Content      string    `json:"content"`
	CreatedBy    string    `json:"createdBy"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
