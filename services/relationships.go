package services

import (
	"fmt"
	"strconv"
	"time"

	"coachdesk/backend/models"
)

// RelationshipKind says how a base entity's records reach the related ones
type RelationshipKind string

const (
	// RelationDirect joins through a foreign key column on the base entity
	RelationDirect RelationshipKind = "direct"
	// RelationThrough joins via a junction table, so a row may have zero or
	// many related records
	RelationThrough RelationshipKind = "through"
	// RelationEmbedded reads a JSON blob stored on the base entity itself;
	// there is no tabular column source, so fields are authored statically
	RelationEmbedded RelationshipKind = "embedded"
)

// FieldKind classifies a filterable field for the UI
type FieldKind string

const (
	FieldText    FieldKind = "text"
	FieldNumber  FieldKind = "number"
	FieldSelect  FieldKind = "select"
	FieldBoolean FieldKind = "boolean"
	FieldDate    FieldKind = "date"
)

// FieldSchema is the result of the inference pass over one column: its kind
// and the operators that make sense for it
type FieldSchema struct {
	Name      string    `json:"name"`
	Kind      FieldKind `json:"kind"`
	Operators []string  `json:"operators"`
}

// FilterField is the UI metadata for one filterable field
type FilterField struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Type      FieldKind `json:"type"`
	Operators []string  `json:"operators"`
	Options   []string  `json:"options,omitempty"`
}

// TableColumn describes one generated table column for a related entity.
// Accessor pulls the display value out of the joined related record and
// falls back to a placeholder when the record is absent.
type TableColumn struct {
	ID       string                              `json:"id"`
	Header   string                              `json:"header"`
	Accessor func(map[string]interface{}) string `json:"-"`
}

// Placeholder rendered when a row has no related record
const absentPlaceholder = "-"

// Relationship declares how a base entity joins a related one and which
// field-id prefix namespaces the generated fields
type Relationship struct {
	Entity        string // prefix for generated field ids, e.g. "budget"
	Kind          RelationshipKind
	TargetTable   string
	LocalKey      string
	ForeignKey    string
	JunctionTable string // Through only
	// Embedded relationships have no column source to inspect, so their
	// fields are authored here
	StaticFields []FilterField
}

// entityRelationships declares, per resource, which related entities
// contribute filter fields and columns to its table
var entityRelationships = map[string][]Relationship{
	models.ResourceCustomers: {
		{
			Entity:      "budget",
			Kind:        RelationDirect,
			TargetTable: "budgets",
			LocalKey:    "budget_id",
			ForeignKey:  "id",
		},
		{
			Entity:        "workout_plan",
			Kind:          RelationThrough,
			TargetTable:   "workout_plans",
			JunctionTable: "customer_plans",
			LocalKey:      "customer_id",
			ForeignKey:    "plan_id",
		},
	},
	models.ResourceLeads: {
		{
			Entity: "custom",
			Kind:   RelationEmbedded,
			StaticFields: []FilterField{
				{ID: "referrer", Label: "Referrer", Type: FieldText, Operators: operatorsFor(FieldText)},
				{ID: "goal", Label: "Goal", Type: FieldSelect, Operators: operatorsFor(FieldSelect), Options: []string{"weight_loss", "muscle_gain", "endurance"}},
				{ID: "preferred_time", Label: "Preferred time", Type: FieldText, Operators: operatorsFor(FieldText)},
			},
		},
	},
}

// RelationshipsFor returns the declared relationships of a resource
func RelationshipsFor(resourceKey string) []Relationship {
	return entityRelationships[resourceKey]
}

// operatorsFor maps a field kind to the operators the filter UI offers
func operatorsFor(kind FieldKind) []string {
	switch kind {
	case FieldNumber, FieldDate:
		return []string{"equals", "notEquals", "greaterThan", "lessThan"}
	case FieldSelect:
		return []string{"equals", "notEquals", "in"}
	case FieldBoolean:
		return []string{"equals"}
	default:
		return []string{"contains", "equals", "notEquals", "startsWith"}
	}
}

// InferFieldSchema decides a column's field kind from its sampled values.
// Nil values are skipped; a column with no usable samples defaults to text.
// Strings that all parse as numbers or dates are promoted accordingly, and
// low-cardinality repeated strings become select fields.
func InferFieldSchema(column string, samples []map[string]interface{}) FieldSchema {
	var values []interface{}
	for _, row := range samples {
		if v, ok := row[column]; ok && v != nil {
			values = append(values, v)
		}
	}

	kind := inferKind(values)
	return FieldSchema{
		Name:      column,
		Kind:      kind,
		Operators: operatorsFor(kind),
	}
}

func inferKind(values []interface{}) FieldKind {
	if len(values) == 0 {
		return FieldText
	}

	allNumbers := true
	allBools := true
	allDates := true
	distinct := make(map[string]struct{})

	for _, v := range values {
		switch val := v.(type) {
		case bool:
			allNumbers = false
			allDates = false
		case int, int32, int64, float32, float64:
			allBools = false
			allDates = false
		case time.Time:
			allNumbers = false
			allBools = false
		case string:
			if _, err := strconv.ParseFloat(val, 64); err != nil {
				allNumbers = false
			}
			if !isDateString(val) {
				allDates = false
			}
			allBools = false
			distinct[val] = struct{}{}
		default:
			return FieldText
		}
	}

	switch {
	case allBools:
		return FieldBoolean
	case allNumbers:
		return FieldNumber
	case allDates:
		return FieldDate
	case len(distinct) > 0 && len(distinct) <= 5 && len(values) > len(distinct):
		// Repeated low-cardinality strings read as an enum
		return FieldSelect
	default:
		return FieldText
	}
}

func isDateString(s string) bool {
	layouts := []string{time.RFC3339, "2006-01-02", "2006-01-02 15:04:05"}
	for _, layout := range layouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// DeriveFilterFields produces the filter-field list one relationship
// contributes to its base entity's table. Field ids are prefixed
// "<entity>.<column>" so they never collide with the base entity's own
// fields. Through relationships inject an "exists" pseudo-field first so
// users can filter on presence of the related record independent of its
// attributes.
func DeriveFilterFields(rel Relationship, columns []string, samples []map[string]interface{}) []FilterField {
	prefix := rel.Entity + "."

	if rel.Kind == RelationEmbedded {
		fields := make([]FilterField, 0, len(rel.StaticFields))
		for _, f := range rel.StaticFields {
			f.ID = prefix + f.ID
			fields = append(fields, f)
		}
		return fields
	}

	var fields []FilterField
	if rel.Kind == RelationThrough {
		fields = append(fields, FilterField{
			ID:        prefix + "exists",
			Label:     fmt.Sprintf("Has %s", rel.Entity),
			Type:      FieldBoolean,
			Operators: operatorsFor(FieldBoolean),
		})
	}

	for _, column := range columns {
		schema := InferFieldSchema(column, samples)
		field := FilterField{
			ID:        prefix + column,
			Label:     fmt.Sprintf("%s %s", rel.Entity, column),
			Type:      schema.Kind,
			Operators: schema.Operators,
		}
		if schema.Kind == FieldSelect {
			field.Options = distinctStrings(column, samples)
		}
		fields = append(fields, field)
	}

	return fields
}

func distinctStrings(column string, samples []map[string]interface{}) []string {
	seen := make(map[string]struct{})
	var options []string
	for _, row := range samples {
		s, ok := row[column].(string)
		if !ok {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		options = append(options, s)
	}
	return options
}

// DeriveColumns produces the table columns a relationship contributes. Each
// accessor takes the joined related record (nil when absent) and returns a
// display string, falling back to the placeholder.
func DeriveColumns(rel Relationship, columns []string) []TableColumn {
	prefix := rel.Entity + "."

	out := make([]TableColumn, 0, len(columns))
	for _, column := range columns {
		column := column
		out = append(out, TableColumn{
			ID:     prefix + column,
			Header: fmt.Sprintf("%s %s", rel.Entity, column),
			Accessor: func(related map[string]interface{}) string {
				if related == nil {
					return absentPlaceholder
				}
				v, ok := related[column]
				if !ok || v == nil {
					return absentPlaceholder
				}
				return fmt.Sprintf("%v", v)
			},
		})
	}
	return out
}
