package models

import "time"

type Payment struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customerId"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Method      string    `json:"method"` // cash, card, transfer
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	PaidAt      time.Time `json:"paidAt"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
