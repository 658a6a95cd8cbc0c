package models

import "time"

// SavedView represents a persisted table preset (search, filters, sort and
// column layout) for one resource type, e.g. "leads" or "meetings"
type SavedView struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	UserID       string    `json:"userId"`
	ResourceKey  string    `json:"resourceKey"`
	FilterConfig string    `json:"filterConfig"` // JSON-encoded FilterConfig
	IsDefault    bool      `json:"isDefault"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ActiveFilter is a single advanced-filter predicate applied to a table
type ActiveFilter struct {
	ID         string   `json:"id"`
	FieldID    string   `json:"fieldId"`
	FieldLabel string   `json:"fieldLabel"`
	Operator   string   `json:"operator"` // contains, equals, greaterThan, ...
	Values     []string `json:"values"`
	Type       string   `json:"type"` // text, number, select, boolean, date
}

// FilterConfig is the serializable bundle of table state stored inside a
// SavedView's filter_config column. SelectedDate/SelectedStatus are the
// resource-specific scalar quick filters some pages expose; they stay nil
// for resources that don't use them.
type FilterConfig struct {
	SearchQuery      string             `json:"searchQuery"`
	SelectedDate     *string            `json:"selectedDate"`
	SelectedStatus   *string            `json:"selectedStatus"`
	SelectedTags     []string           `json:"selectedTags"`
	ColumnVisibility map[string]bool    `json:"columnVisibility"`
	ColumnOrder      []string           `json:"columnOrder"`
	ColumnWidths     map[string]float64 `json:"columnWidths"`
	SortBy           string             `json:"sortBy"`
	SortOrder        string             `json:"sortOrder"` // asc or desc
	GroupBy          []string           `json:"groupBy"`
	AdvancedFilters  []ActiveFilter     `json:"advancedFilters"`
}
