package models

import "time"

type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Status    string    `json:"status"` // active, paused, churned
	BudgetID  string    `json:"budgetId,omitempty"`
	Goals     string    `json:"goals,omitempty"`
	JoinedAt  time.Time `json:"joinedAt"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
