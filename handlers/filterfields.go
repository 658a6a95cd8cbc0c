package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"coachdesk/backend/database"
	"coachdesk/backend/services"

	"github.com/gorilla/mux"
)

const filterSampleSize = 50

// GetFilterFields returns the filter-field list for a resource's table: the
// base entity's own columns plus the fields each declared relationship
// contributes. Related-entity lookups are best effort; a failing lookup
// drops that relationship's fields with a logged warning instead of failing
// the whole request.
func GetFilterFields(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	resourceKey := vars["resource"]

	columns, err := database.GetTableColumns(database.DB, resourceKey)
	if err != nil || len(columns) == 0 {
		http.Error(w, "Unknown resource", http.StatusNotFound)
		return
	}

	samples, err := database.SampleRows(database.DB, resourceKey, filterSampleSize)
	if err != nil {
		log.Printf("Warning: failed to sample %s rows: %v", resourceKey, err)
		samples = nil
	}

	var fields []services.FilterField
	for _, column := range columns {
		schema := services.InferFieldSchema(column, samples)
		fields = append(fields, services.FilterField{
			ID:        column,
			Label:     column,
			Type:      schema.Kind,
			Operators: schema.Operators,
		})
	}

	for _, rel := range services.RelationshipsFor(resourceKey) {
		var relColumns []string
		var relSamples []map[string]interface{}

		if rel.Kind != services.RelationEmbedded {
			relColumns, err = database.GetTableColumns(database.DB, rel.TargetTable)
			if err != nil {
				log.Printf("Warning: failed to read %s columns: %v", rel.TargetTable, err)
				continue
			}
			relSamples, err = database.SampleRows(database.DB, rel.TargetTable, filterSampleSize)
			if err != nil {
				log.Printf("Warning: failed to sample %s rows: %v", rel.TargetTable, err)
				relSamples = nil
			}
		}

		fields = append(fields, services.DeriveFilterFields(rel, relColumns, relSamples)...)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(fields)
}

// GetTableColumns returns the generated column metadata for a resource,
// including the columns its relationships contribute
func GetTableColumns(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	resourceKey := vars["resource"]

	columns, err := database.GetTableColumns(database.DB, resourceKey)
	if err != nil || len(columns) == 0 {
		http.Error(w, "Unknown resource", http.StatusNotFound)
		return
	}

	type columnInfo struct {
		ID     string `json:"id"`
		Header string `json:"header"`
	}

	var out []columnInfo
	for _, column := range columns {
		out = append(out, columnInfo{ID: column, Header: column})
	}

	for _, rel := range services.RelationshipsFor(resourceKey) {
		if rel.Kind == services.RelationEmbedded {
			for _, f := range rel.StaticFields {
				out = append(out, columnInfo{ID: rel.Entity + "." + f.ID, Header: f.Label})
			}
			continue
		}

		relColumns, err := database.GetTableColumns(database.DB, rel.TargetTable)
		if err != nil {
			log.Printf("Warning: failed to read %s columns: %v", rel.TargetTable, err)
			continue
		}
		for _, col := range services.DeriveColumns(rel, relColumns) {
			out = append(out, columnInfo{ID: col.ID, Header: col.Header})
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}
