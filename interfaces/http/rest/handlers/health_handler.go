package handlers

import (
	"net/http"

	"coursegraph/pkg/common"
)

// DataStatus reports what was loaded at startup
type DataStatus interface {
	CourseCount() int
	CanonicalCount() int
	SimilarityEnabled() bool
}

// HealthHandler serves the root banner and the probes
type HealthHandler struct {
	status DataStatus
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(status DataStatus) *HealthHandler {
	return &HealthHandler{status: status}
}

// Root handles GET /
func (h *HealthHandler) Root(w http.ResponseWriter, _ *http.Request) {
	common.RespondText(w, http.StatusOK, "API Running")
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	common.RespondJSON(w, http.StatusOK, h.snapshot("healthy"))
}

// Ready handles GET /ready. The service is not ready without a course dataset;
// missing embeddings only disable similarity.
func (h *HealthHandler) Ready(w http.ResponseWriter, _ *http.Request) {
	if h.status.CourseCount() == 0 {
		common.RespondJSON(w, http.StatusServiceUnavailable, h.snapshot("not_ready"))
		return
	}
	common.RespondJSON(w, http.StatusOK, h.snapshot("ready"))
}

func (h *HealthHandler) snapshot(state string) common.HealthResponse {
	return common.HealthResponse{
		Status:            state,
		Courses:           h.status.CourseCount(),
		CanonicalRows:     h.status.CanonicalCount(),
		SimilarityEnabled: h.status.SimilarityEnabled(),
	}
}
