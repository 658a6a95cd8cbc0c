package services

import (
	"sync"

	"coachdesk/backend/models"
)

// ViewState holds the live table state for one (user, resource) pair:
// search text, active filters, sort, pagination, column layout and grouping.
// It is the in-memory counterpart of a SavedView's filter configuration;
// persisting it is a separate, explicit action.
type ViewState struct {
	SearchQuery      string                `json:"searchQuery"`
	SelectedDate     *string               `json:"selectedDate"`
	SelectedStatus   *string               `json:"selectedStatus"`
	SelectedTags     []string              `json:"selectedTags"`
	Filters          []models.ActiveFilter `json:"filters"`
	SortBy           string                `json:"sortBy"`
	SortOrder        string                `json:"sortOrder"`
	Page             int                   `json:"page"`
	PageSize         int                   `json:"pageSize"`
	ColumnVisibility map[string]bool       `json:"columnVisibility"`
	ColumnOrder      []string              `json:"columnOrder"`
	ColumnWidths     map[string]float64    `json:"columnWidths"`
	GroupBy          []string              `json:"groupBy"`

	initialized bool
}

// MaxGroupByDepth caps table grouping at two nested levels
const MaxGroupByDepth = 2

const defaultPageSize = 25

// ViewStateStore is a keyed container of per-resource view state. All state
// changes go through its methods; each is applied immediately under the lock
// and scoped to one (user, resource) key, so edits on one resource never
// leak into another.
type ViewStateStore struct {
	mu     sync.RWMutex
	states map[string]*ViewState
}

// ViewStates is the store instance shared by the HTTP handlers
var ViewStates = NewViewStateStore()

func NewViewStateStore() *ViewStateStore {
	return &ViewStateStore{states: make(map[string]*ViewState)}
}

func stateKey(userID, resourceKey string) string {
	return userID + "/" + resourceKey
}

// get returns the live state for a key, creating an empty one on first use.
// Callers must hold s.mu.
func (s *ViewStateStore) get(userID, resourceKey string) *ViewState {
	key := stateKey(userID, resourceKey)
	state, ok := s.states[key]
	if !ok {
		state = &ViewState{
			SelectedTags:     []string{},
			Filters:          []models.ActiveFilter{},
			Page:             1,
			PageSize:         defaultPageSize,
			ColumnVisibility: map[string]bool{},
			ColumnOrder:      []string{},
			ColumnWidths:     map[string]float64{},
			GroupBy:          []string{},
		}
		s.states[key] = state
	}
	return state
}

// InitResource sets up the default column layout and sort for a resource.
// Idempotent: once a key is initialized, later calls are no-ops so user-made
// changes are never clobbered by a page re-mount.
func (s *ViewStateStore) InitResource(userID, resourceKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.get(userID, resourceKey)
	if state.initialized {
		return
	}

	config := models.DefaultFilterConfig(resourceKey)
	state.ColumnOrder = config.ColumnOrder
	state.ColumnVisibility = config.ColumnVisibility
	state.SortBy = config.SortBy
	state.SortOrder = config.SortOrder
	state.initialized = true
}

// Get returns a copy of the current state for a key
func (s *ViewStateStore) Get(userID, resourceKey string) ViewState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[stateKey(userID, resourceKey)]
	if !ok {
		return ViewState{
			SelectedTags:     []string{},
			Filters:          []models.ActiveFilter{},
			Page:             1,
			PageSize:         defaultPageSize,
			ColumnVisibility: map[string]bool{},
			ColumnOrder:      []string{},
			ColumnWidths:     map[string]float64{},
			GroupBy:          []string{},
		}
	}
	return copyState(state)
}

func copyState(state *ViewState) ViewState {
	out := *state
	out.SelectedTags = append([]string{}, state.SelectedTags...)
	out.Filters = append([]models.ActiveFilter{}, state.Filters...)
	out.ColumnOrder = append([]string{}, state.ColumnOrder...)
	out.GroupBy = append([]string{}, state.GroupBy...)
	out.ColumnVisibility = make(map[string]bool, len(state.ColumnVisibility))
	for k, v := range state.ColumnVisibility {
		out.ColumnVisibility[k] = v
	}
	out.ColumnWidths = make(map[string]float64, len(state.ColumnWidths))
	for k, v := range state.ColumnWidths {
		out.ColumnWidths[k] = v
	}
	return out
}

// SetSearchQuery updates the free-text search and resets pagination
func (s *ViewStateStore) SetSearchQuery(userID, resourceKey, query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.get(userID, resourceKey)
	state.SearchQuery = query
	state.Page = 1
}

// AddFilter appends an advanced filter predicate. A filter with the same ID
// replaces the existing one.
func (s *ViewStateStore) AddFilter(userID, resourceKey string, filter models.ActiveFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.get(userID, resourceKey)
	for i, existing := range state.Filters {
		if existing.ID == filter.ID {
			state.Filters[i] = filter
			state.Page = 1
			return
		}
	}
	state.Filters = append(state.Filters, filter)
	state.Page = 1
}

// RemoveFilter drops the filter with the given ID; unknown IDs are ignored
func (s *ViewStateStore) RemoveFilter(userID, resourceKey, filterID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.get(userID, resourceKey)
	for i, existing := range state.Filters {
		if existing.ID == filterID {
			state.Filters = append(state.Filters[:i], state.Filters[i+1:]...)
			state.Page = 1
			return
		}
	}
}

// ClearFilters removes all advanced filters for a resource
func (s *ViewStateStore) ClearFilters(userID, resourceKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.get(userID, resourceKey)
	state.Filters = []models.ActiveFilter{}
	state.Page = 1
}

// SetSort sets the sort column and direction
func (s *ViewStateStore) SetSort(userID, resourceKey, sortBy, sortOrder string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "asc"
	}

	state := s.get(userID, resourceKey)
	state.SortBy = sortBy
	state.SortOrder = sortOrder
}

// SetPage moves pagination to the given 1-based page
func (s *ViewStateStore) SetPage(userID, resourceKey string, page int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if page < 1 {
		page = 1
	}
	state := s.get(userID, resourceKey)
	state.Page = page
}

// SetPageSize changes the page size and resets to the first page
func (s *ViewStateStore) SetPageSize(userID, resourceKey string, pageSize int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	state := s.get(userID, resourceKey)
	state.PageSize = pageSize
	state.Page = 1
}

// SetColumnVisibility toggles a single column on or off
func (s *ViewStateStore) SetColumnVisibility(userID, resourceKey, columnID string, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.get(userID, resourceKey)
	state.ColumnVisibility[columnID] = visible
}

// SetColumnOrder replaces the column display order
func (s *ViewStateStore) SetColumnOrder(userID, resourceKey string, order []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.get(userID, resourceKey)
	state.ColumnOrder = append([]string{}, order...)
}

// SetColumnWidth records a column's width in pixels
func (s *ViewStateStore) SetColumnWidth(userID, resourceKey, columnID string, width float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.get(userID, resourceKey)
	state.ColumnWidths[columnID] = width
}

// SetGroupBy sets the grouping keys, truncated to MaxGroupByDepth levels
func (s *ViewStateStore) SetGroupBy(userID, resourceKey string, groupBy []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(groupBy) > MaxGroupByDepth {
		groupBy = groupBy[:MaxGroupByDepth]
	}
	state := s.get(userID, resourceKey)
	state.GroupBy = append([]string{}, groupBy...)
}

// SetScalarFilters updates the resource-specific quick filters
func (s *ViewStateStore) SetScalarFilters(userID, resourceKey string, date, status *string, tags []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.get(userID, resourceKey)
	state.SelectedDate = date
	state.SelectedStatus = status
	if tags != nil {
		state.SelectedTags = append([]string{}, tags...)
	}
	state.Page = 1
}

// ApplyConfig hydrates a resource's state from a saved view's filter
// configuration. The key is marked initialized so a later InitResource call
// doesn't overwrite the applied view.
func (s *ViewStateStore) ApplyConfig(userID, resourceKey string, config models.FilterConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.get(userID, resourceKey)
	state.SearchQuery = config.SearchQuery
	state.SelectedDate = config.SelectedDate
	state.SelectedStatus = config.SelectedStatus
	state.SelectedTags = append([]string{}, config.SelectedTags...)
	state.Filters = append([]models.ActiveFilter{}, config.AdvancedFilters...)
	state.SortBy = config.SortBy
	state.SortOrder = config.SortOrder
	state.ColumnOrder = append([]string{}, config.ColumnOrder...)
	state.GroupBy = append([]string{}, config.GroupBy...)
	state.ColumnVisibility = make(map[string]bool, len(config.ColumnVisibility))
	for k, v := range config.ColumnVisibility {
		state.ColumnVisibility[k] = v
	}
	state.ColumnWidths = make(map[string]float64, len(config.ColumnWidths))
	for k, v := range config.ColumnWidths {
		state.ColumnWidths[k] = v
	}
	state.Page = 1
	state.initialized = true
}

// Snapshot captures the current state as a filter configuration suitable
// for persisting into a SavedView
func (s *ViewStateStore) Snapshot(userID, resourceKey string) models.FilterConfig {
	state := s.Get(userID, resourceKey)

	return models.FilterConfig{
		SearchQuery:      state.SearchQuery,
		SelectedDate:     state.SelectedDate,
		SelectedStatus:   state.SelectedStatus,
		SelectedTags:     state.SelectedTags,
		ColumnVisibility: state.ColumnVisibility,
		ColumnOrder:      state.ColumnOrder,
		ColumnWidths:     state.ColumnWidths,
		SortBy:           state.SortBy,
		SortOrder:        state.SortOrder,
		GroupBy:          state.GroupBy,
		AdvancedFilters:  state.Filters,
	}
}
