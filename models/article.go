package models

import "time"

// Article is a knowledge-base entry. Body is markdown; the handler renders
// it to HTML on read.
type Article struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Category  string    `json:"category,omitempty"`
	Body      string    `json:"body"`
	Published bool      `json:"published"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
