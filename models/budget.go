package models

import "time"

// Budget is a coaching package a customer subscribes to
type Budget struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Price            float64   `json:"price"`
	Currency         string    `json:"currency"`
	SessionsPerMonth int       `json:"sessionsPerMonth"`
	DurationMonths   int       `json:"durationMonths"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
