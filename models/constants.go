package models

// Resource keys used by saved views and the view-state store
const (
	ResourceLeads          = "leads"
	ResourceCustomers      = "customers"
	ResourceMeetings       = "meetings"
	ResourcePayments       = "payments"
	ResourceBudgets        = "budgets"
	ResourceWorkoutPlans   = "workout_plans"
	ResourceNutritionPlans = "nutrition_plans"
	ResourceArticles       = "articles"
)

// Lead statuses
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusTrial     = "trial"
	LeadStatusConverted = "converted"
	LeadStatusLost      = "lost"
)

// Meeting statuses
const (
	MeetingScheduled = "scheduled"
	MeetingCompleted = "completed"
	MeetingCancelled = "cancelled"
	MeetingNoShow    = "no_show"
)

// Payment statuses
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
	PaymentFailed   = "failed"
)
