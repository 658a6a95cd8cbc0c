package models

// defaultColumns lists the columns each resource's table shows out of the
// box, in display order. Used both for the auto-provisioned default view and
// for first-time view-state initialization.
var defaultColumns = map[string][]string{
	ResourceLeads:          {"name", "phone", "email", "status", "source", "createdAt"},
	ResourceCustomers:      {"name", "phone", "email", "status", "budgetId", "joinedAt"},
	ResourceMeetings:       {"title", "customerId", "startTime", "endTime", "status"},
	ResourcePayments:       {"customerId", "amount", "currency", "method", "status", "paidAt"},
	ResourceBudgets:        {"name", "price", "sessionsPerMonth", "durationMonths", "active"},
	ResourceWorkoutPlans:   {"name", "level", "daysPerWeek", "createdAt"},
	ResourceNutritionPlans: {"name", "calories", "proteinGrams", "createdAt"},
	ResourceArticles:       {"title", "category", "published", "updatedAt"},
}

// defaultSort maps a resource to its initial sort column
var defaultSort = map[string]string{
	ResourceLeads:          "createdAt",
	ResourceCustomers:      "joinedAt",
	ResourceMeetings:       "startTime",
	ResourcePayments:       "paidAt",
	ResourceBudgets:        "name",
	ResourceWorkoutPlans:   "name",
	ResourceNutritionPlans: "name",
	ResourceArticles:       "updatedAt",
}

// DefaultColumns returns the out-of-the-box column order for a resource.
// Unknown resources get an empty list rather than an error.
func DefaultColumns(resourceKey string) []string {
	cols := defaultColumns[resourceKey]
	out := make([]string, len(cols))
	copy(out, cols)
	return out
}

// DefaultFilterConfig builds the filter configuration used when a default
// view is auto-provisioned for a resource: every default column visible, in
// default order, sorted descending by the resource's natural sort column.
func DefaultFilterConfig(resourceKey string) FilterConfig {
	cols := DefaultColumns(resourceKey)
	visibility := make(map[string]bool, len(cols))
	for _, c := range cols {
		visibility[c] = true
	}

	sortBy := defaultSort[resourceKey]
	if sortBy == "" && len(cols) > 0 {
		sortBy = cols[0]
	}

	return FilterConfig{
		SearchQuery:      "",
		SelectedTags:     []string{},
		ColumnVisibility: visibility,
		ColumnOrder:      cols,
		ColumnWidths:     map[string]float64{},
		SortBy:           sortBy,
		SortOrder:        "desc",
		GroupBy:          []string{},
		AdvancedFilters:  []ActiveFilter{},
	}
}
