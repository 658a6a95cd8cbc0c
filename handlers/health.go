package handlers

import (
	"encoding/json"
	"net/http"

	"coachdesk/backend/database"
)

// HealthCheck reports service and database liveness
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}

	if database.DB == nil || database.DB.Ping() != nil {
		status["status"] = "degraded"
		status["database"] = "unreachable"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}
