package services

import (
	"testing"

	"coachdesk/backend/models"
)

func TestInitResourceIdempotent(t *testing.T) {
	store := NewViewStateStore()

	store.InitResource("user-1", models.ResourceLeads)
	state := store.Get("user-1", models.ResourceLeads)

	expectedCols := models.DefaultColumns(models.ResourceLeads)
	if len(state.ColumnOrder) != len(expectedCols) {
		t.Fatalf("Expected %d default columns, got %d", len(expectedCols), len(state.ColumnOrder))
	}
	if state.SortBy != "createdAt" || state.SortOrder != "desc" {
		t.Errorf("Expected default sort createdAt desc, got %s %s", state.SortBy, state.SortOrder)
	}

	// User changes must survive a re-init (e.g. a page re-mount)
	store.SetSort("user-1", models.ResourceLeads, "name", "asc")
	store.SetColumnVisibility("user-1", models.ResourceLeads, "email", false)

	store.InitResource("user-1", models.ResourceLeads)

	state = store.Get("user-1", models.ResourceLeads)
	if state.SortBy != "name" || state.SortOrder != "asc" {
		t.Errorf("Expected user sort to survive re-init, got %s %s", state.SortBy, state.SortOrder)
	}
	if state.ColumnVisibility["email"] {
		t.Error("Expected hidden column to stay hidden after re-init")
	}
}

func TestViewStateResourceIsolation(t *testing.T) {
	store := NewViewStateStore()

	store.InitResource("user-1", models.ResourceLeads)
	store.InitResource("user-1", models.ResourceCustomers)

	store.SetSearchQuery("user-1", models.ResourceLeads, "protein")
	store.AddFilter("user-1", models.ResourceLeads, models.ActiveFilter{
		ID:       "f1",
		FieldID:  "status",
		Operator: "equals",
		Values:   []string{"new"},
	})

	// Edits on one resource never leak into another
	customers := store.Get("user-1", models.ResourceCustomers)
	if customers.SearchQuery != "" {
		t.Errorf("Expected empty search on customers, got '%s'", customers.SearchQuery)
	}
	if len(customers.Filters) != 0 {
		t.Errorf("Expected no filters on customers, got %d", len(customers.Filters))
	}

	// Same resource, different user is its own scope too
	otherUser := store.Get("user-2", models.ResourceLeads)
	if otherUser.SearchQuery != "" {
		t.Errorf("Expected empty search for other user, got '%s'", otherUser.SearchQuery)
	}
}

func TestAddFilterReplacesByID(t *testing.T) {
	store := NewViewStateStore()

	store.AddFilter("user-1", models.ResourceLeads, models.ActiveFilter{
		ID: "f1", FieldID: "status", Operator: "equals", Values: []string{"new"},
	})
	store.AddFilter("user-1", models.ResourceLeads, models.ActiveFilter{
		ID: "f1", FieldID: "status", Operator: "equals", Values: []string{"contacted"},
	})

	state := store.Get("user-1", models.ResourceLeads)
	if len(state.Filters) != 1 {
		t.Fatalf("Expected 1 filter after replacing by ID, got %d", len(state.Filters))
	}
	if state.Filters[0].Values[0] != "contacted" {
		t.Errorf("Expected replaced filter value 'contacted', got '%s'", state.Filters[0].Values[0])
	}
}

func TestRemoveAndClearFilters(t *testing.T) {
	store := NewViewStateStore()

	store.AddFilter("user-1", models.ResourceLeads, models.ActiveFilter{ID: "f1", FieldID: "status"})
	store.AddFilter("user-1", models.ResourceLeads, models.ActiveFilter{ID: "f2", FieldID: "source"})

	store.RemoveFilter("user-1", models.ResourceLeads, "f1")
	state := store.Get("user-1", models.ResourceLeads)
	if len(state.Filters) != 1 || state.Filters[0].ID != "f2" {
		t.Fatalf("Expected only filter f2 to remain, got %+v", state.Filters)
	}

	// Removing an unknown ID is a no-op
	store.RemoveFilter("user-1", models.ResourceLeads, "missing")
	if state := store.Get("user-1", models.ResourceLeads); len(state.Filters) != 1 {
		t.Errorf("Expected 1 filter after removing unknown ID, got %d", len(state.Filters))
	}

	store.ClearFilters("user-1", models.ResourceLeads)
	if state := store.Get("user-1", models.ResourceLeads); len(state.Filters) != 0 {
		t.Errorf("Expected no filters after clear, got %d", len(state.Filters))
	}
}

func TestFilterChangesResetPagination(t *testing.T) {
	store := NewViewStateStore()

	store.SetPage("user-1", models.ResourceLeads, 4)
	store.SetSearchQuery("user-1", models.ResourceLeads, "yoga")
	if state := store.Get("user-1", models.ResourceLeads); state.Page != 1 {
		t.Errorf("Expected search to reset page to 1, got %d", state.Page)
	}

	store.SetPage("user-1", models.ResourceLeads, 4)
	store.AddFilter("user-1", models.ResourceLeads, models.ActiveFilter{ID: "f1"})
	if state := store.Get("user-1", models.ResourceLeads); state.Page != 1 {
		t.Errorf("Expected filter add to reset page to 1, got %d", state.Page)
	}

	store.SetPage("user-1", models.ResourceLeads, 4)
	store.SetPageSize("user-1", models.ResourceLeads, 50)
	if state := store.Get("user-1", models.ResourceLeads); state.Page != 1 {
		t.Errorf("Expected page-size change to reset page to 1, got %d", state.Page)
	}
}

func TestSetSortValidatesDirection(t *testing.T) {
	store := NewViewStateStore()

	store.SetSort("user-1", models.ResourceLeads, "name", "sideways")
	state := store.Get("user-1", models.ResourceLeads)
	if state.SortOrder != "asc" {
		t.Errorf("Expected invalid sort order to fall back to asc, got '%s'", state.SortOrder)
	}
}

func TestSetGroupByCapsDepth(t *testing.T) {
	store := NewViewStateStore()

	store.SetGroupBy("user-1", models.ResourceCustomers, []string{"status", "budgetId", "source", "city"})
	state := store.Get("user-1", models.ResourceCustomers)
	if len(state.GroupBy) != MaxGroupByDepth {
		t.Fatalf("Expected group-by truncated to %d levels, got %d", MaxGroupByDepth, len(state.GroupBy))
	}
	if state.GroupBy[0] != "status" || state.GroupBy[1] != "budgetId" {
		t.Errorf("Expected first two grouping keys to be kept, got %v", state.GroupBy)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	store := NewViewStateStore()

	store.SetColumnOrder("user-1", models.ResourceLeads, []string{"name", "email"})
	state := store.Get("user-1", models.ResourceLeads)

	// Mutating the returned copy must not affect the stored state
	state.ColumnOrder[0] = "tampered"
	state.ColumnVisibility["name"] = false

	fresh := store.Get("user-1", models.ResourceLeads)
	if fresh.ColumnOrder[0] != "name" {
		t.Errorf("Expected stored column order untouched, got '%s'", fresh.ColumnOrder[0])
	}
	if v, ok := fresh.ColumnVisibility["name"]; ok && !v {
		t.Error("Expected stored column visibility untouched")
	}
}

func TestApplyConfigAndSnapshotRoundTrip(t *testing.T) {
	store := NewViewStateStore()

	status := "active"
	config := models.FilterConfig{
		SearchQuery:      "beginner",
		SelectedStatus:   &status,
		SelectedTags:     []string{"vip"},
		ColumnVisibility: map[string]bool{"name": true, "email": false},
		ColumnOrder:      []string{"name", "email"},
		ColumnWidths:     map[string]float64{"name": 220},
		SortBy:           "name",
		SortOrder:        "asc",
		GroupBy:          []string{"status"},
		AdvancedFilters: []models.ActiveFilter{
			{ID: "f1", FieldID: "budget.price", Operator: "greaterThan", Values: []string{"100"}, Type: "number"},
		},
	}

	store.ApplyConfig("user-1", models.ResourceCustomers, config)

	// Applying a view counts as initialization
	store.InitResource("user-1", models.ResourceCustomers)
	state := store.Get("user-1", models.ResourceCustomers)
	if state.SortBy != "name" {
		t.Errorf("Expected applied sort to survive InitResource, got '%s'", state.SortBy)
	}

	snapshot := store.Snapshot("user-1", models.ResourceCustomers)
	if snapshot.SearchQuery != config.SearchQuery {
		t.Errorf("Expected search query '%s', got '%s'", config.SearchQuery, snapshot.SearchQuery)
	}
	if snapshot.SelectedStatus == nil || *snapshot.SelectedStatus != status {
		t.Error("Expected selected status to round-trip")
	}
	if len(snapshot.AdvancedFilters) != 1 || snapshot.AdvancedFilters[0].FieldID != "budget.price" {
		t.Errorf("Expected advanced filter to round-trip, got %+v", snapshot.AdvancedFilters)
	}
	if snapshot.ColumnWidths["name"] != 220 {
		t.Errorf("Expected column width 220, got %v", snapshot.ColumnWidths["name"])
	}
	if len(snapshot.GroupBy) != 1 || snapshot.GroupBy[0] != "status" {
		t.Errorf("Expected grouping to round-trip, got %v", snapshot.GroupBy)
	}
}
