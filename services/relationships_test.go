package services

import (
	"testing"

	"coachdesk/backend/models"
)

func TestInferFieldSchema(t *testing.T) {
	testCases := []struct {
		name     string
		column   string
		samples  []map[string]interface{}
		expected FieldKind
	}{
		{
			name:   "Integer column",
			column: "price",
			samples: []map[string]interface{}{
				{"price": int64(100)},
				{"price": int64(250)},
			},
			expected: FieldNumber,
		},
		{
			name:   "Numeric strings",
			column: "sessions",
			samples: []map[string]interface{}{
				{"sessions": "8"},
				{"sessions": "12"},
			},
			expected: FieldNumber,
		},
		{
			name:   "Boolean column",
			column: "active",
			samples: []map[string]interface{}{
				{"active": true},
				{"active": false},
			},
			expected: FieldBoolean,
		},
		{
			name:   "Date strings",
			column: "joined_at",
			samples: []map[string]interface{}{
				{"joined_at": "2026-01-15"},
				{"joined_at": "2026-03-02"},
			},
			expected: FieldDate,
		},
		{
			name:   "Low cardinality repeated strings",
			column: "level",
			samples: []map[string]interface{}{
				{"level": "beginner"},
				{"level": "advanced"},
				{"level": "beginner"},
				{"level": "beginner"},
			},
			expected: FieldSelect,
		},
		{
			name:   "High cardinality strings",
			column: "name",
			samples: []map[string]interface{}{
				{"name": "Starter"},
				{"name": "Premium"},
				{"name": "Elite"},
			},
			expected: FieldText,
		},
		{
			name:     "No samples defaults to text",
			column:   "notes",
			samples:  []map[string]interface{}{},
			expected: FieldText,
		},
		{
			name:   "Nil values are skipped",
			column: "price",
			samples: []map[string]interface{}{
				{"price": nil},
				{"price": int64(50)},
			},
			expected: FieldNumber,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			schema := InferFieldSchema(tc.column, tc.samples)
			if schema.Kind != tc.expected {
				t.Errorf("Expected kind %s, got %s", tc.expected, schema.Kind)
			}
			if schema.Name != tc.column {
				t.Errorf("Expected name '%s', got '%s'", tc.column, schema.Name)
			}
			if len(schema.Operators) == 0 {
				t.Error("Expected at least one operator")
			}
		})
	}
}

func TestDeriveFilterFields_Direct(t *testing.T) {
	rel := Relationship{
		Entity:      "budget",
		Kind:        RelationDirect,
		TargetTable: "budgets",
		LocalKey:    "budget_id",
		ForeignKey:  "id",
	}
	columns := []string{"name", "price"}
	samples := []map[string]interface{}{
		{"name": "Starter", "price": int64(100)},
		{"name": "Premium", "price": int64(250)},
	}

	fields := DeriveFilterFields(rel, columns, samples)

	// One field per related column, ids namespaced by the entity prefix
	if len(fields) != len(columns) {
		t.Fatalf("Expected %d fields, got %d", len(columns), len(fields))
	}
	if fields[0].ID != "budget.name" {
		t.Errorf("Expected prefixed field id 'budget.name', got '%s'", fields[0].ID)
	}
	if fields[1].ID != "budget.price" || fields[1].Type != FieldNumber {
		t.Errorf("Expected 'budget.price' as number field, got %+v", fields[1])
	}
}

func TestDeriveFilterFields_ThroughInjectsExists(t *testing.T) {
	rel := Relationship{
		Entity:        "workout_plan",
		Kind:          RelationThrough,
		TargetTable:   "workout_plans",
		JunctionTable: "customer_plans",
		LocalKey:      "customer_id",
		ForeignKey:    "plan_id",
	}
	columns := []string{"name", "level"}
	samples := []map[string]interface{}{
		{"name": "Push Pull Legs", "level": "advanced"},
		{"name": "Full Body", "level": "beginner"},
		{"name": "Upper Lower", "level": "beginner"},
	}

	fields := DeriveFilterFields(rel, columns, samples)

	// N columns produce N+1 fields with the exists pseudo-field first
	if len(fields) != len(columns)+1 {
		t.Fatalf("Expected %d fields, got %d", len(columns)+1, len(fields))
	}
	if fields[0].ID != "workout_plan.exists" {
		t.Errorf("Expected exists pseudo-field first, got '%s'", fields[0].ID)
	}
	if fields[0].Type != FieldBoolean {
		t.Errorf("Expected exists field to be boolean, got %s", fields[0].Type)
	}
	if fields[1].ID != "workout_plan.name" {
		t.Errorf("Expected 'workout_plan.name' after exists, got '%s'", fields[1].ID)
	}
}

func TestDeriveFilterFields_EmbeddedUsesStaticFields(t *testing.T) {
	rels := RelationshipsFor(models.ResourceLeads)
	if len(rels) == 0 {
		t.Fatal("Expected leads to declare an embedded relationship")
	}
	rel := rels[0]
	if rel.Kind != RelationEmbedded {
		t.Fatalf("Expected embedded relationship, got %s", rel.Kind)
	}

	fields := DeriveFilterFields(rel, nil, nil)
	if len(fields) != len(rel.StaticFields) {
		t.Fatalf("Expected %d static fields, got %d", len(rel.StaticFields), len(fields))
	}
	for _, f := range fields {
		if f.ID[:len(rel.Entity)+1] != rel.Entity+"." {
			t.Errorf("Expected field id prefixed with '%s.', got '%s'", rel.Entity, f.ID)
		}
	}
}

func TestDeriveFilterFields_SelectOptions(t *testing.T) {
	rel := Relationship{Entity: "budget", Kind: RelationDirect}
	samples := []map[string]interface{}{
		{"tier": "basic"},
		{"tier": "premium"},
		{"tier": "basic"},
	}

	fields := DeriveFilterFields(rel, []string{"tier"}, samples)
	if len(fields) != 1 {
		t.Fatalf("Expected 1 field, got %d", len(fields))
	}
	if fields[0].Type != FieldSelect {
		t.Fatalf("Expected select field, got %s", fields[0].Type)
	}
	if len(fields[0].Options) != 2 {
		t.Errorf("Expected 2 distinct options, got %v", fields[0].Options)
	}
}

func TestDeriveColumns_AbsentRecordPlaceholder(t *testing.T) {
	rel := Relationship{
		Entity:      "budget",
		Kind:        RelationDirect,
		TargetTable: "budgets",
	}

	cols := DeriveColumns(rel, []string{"name", "price"})
	if len(cols) != 2 {
		t.Fatalf("Expected 2 columns, got %d", len(cols))
	}
	if cols[0].ID != "budget.name" {
		t.Errorf("Expected column id 'budget.name', got '%s'", cols[0].ID)
	}

	// Present record renders its value
	record := map[string]interface{}{"name": "Starter", "price": int64(100)}
	if got := cols[0].Accessor(record); got != "Starter" {
		t.Errorf("Expected accessor value 'Starter', got '%s'", got)
	}
	if got := cols[1].Accessor(record); got != "100" {
		t.Errorf("Expected accessor value '100', got '%s'", got)
	}

	// Absent record renders the placeholder rather than erroring
	if got := cols[0].Accessor(nil); got != "-" {
		t.Errorf("Expected placeholder '-' for absent record, got '%s'", got)
	}
	if got := cols[1].Accessor(map[string]interface{}{"name": "Starter"}); got != "-" {
		t.Errorf("Expected placeholder '-' for missing column value, got '%s'", got)
	}
}

func TestRelationshipsFor(t *testing.T) {
	customers := RelationshipsFor(models.ResourceCustomers)
	if len(customers) != 2 {
		t.Fatalf("Expected 2 customer relationships, got %d", len(customers))
	}
	if customers[0].Kind != RelationDirect || customers[1].Kind != RelationThrough {
		t.Errorf("Expected direct then through relationship, got %s and %s", customers[0].Kind, customers[1].Kind)
	}

	// Resources without declared relationships return nothing
	if rels := RelationshipsFor(models.ResourceBudgets); len(rels) != 0 {
		t.Errorf("Expected no relationships for budgets, got %d", len(rels))
	}
}
