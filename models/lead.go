package models

import "time"

type Lead struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email,omitempty"`
	Status       string    `json:"status"`
	Source       string    `json:"source,omitempty"` // instagram, referral, walk-in, ...
	Tags         []string  `json:"tags"`
	CustomFields string    `json:"customFields,omitempty"` // free-form JSON captured by intake forms
	Notes        string    `json:"notes,omitempty"`
	CreatedBy    string    `json:"createdBy"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
