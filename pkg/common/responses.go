package common

import (
	"encoding/json"
	"net/http"
)

// HealthResponse is the body of the health and readiness probes
type HealthResponse struct {
	Status            string `json:"status"`
	Courses           int    `json:"courses"`
	CanonicalRows     int    `json:"canonical_rows"`
	SimilarityEnabled bool   `json:"similarity_enabled"`
}

// RespondJSON sends data as the whole JSON body
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondText sends a plain text body
func RespondText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
