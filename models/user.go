package models

// User is a coach or staff member of the business
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"` // owner, coach, assistant
}
