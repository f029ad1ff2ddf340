package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"coursegraph/application/queries"
	querybus "coursegraph/application/queries/bus"
	"coursegraph/pkg/common"
	pkgerrors "coursegraph/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SearchDefaults fills in omitted search parameters
type SearchDefaults struct {
	Campus   string
	Depth    int
	MaxDepth int
}

// CourseHandler handles course search and campus graph requests
type CourseHandler struct {
	queryBus *querybus.QueryBus
	errors   *pkgerrors.ErrorHandler
	defaults SearchDefaults
	logger   *zap.Logger
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(queryBus *querybus.QueryBus, errorHandler *pkgerrors.ErrorHandler, defaults SearchDefaults, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{
		queryBus: queryBus,
		errors:   errorHandler,
		defaults: defaults,
		logger:   logger,
	}
}

// Search handles GET /api/search?campus=&course_id=&depth=&full=
func (h *CourseHandler) Search(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	campus := params.Get("campus")
	if strings.TrimSpace(campus) == "" {
		campus = h.defaults.Campus
	}

	// An unparsable depth falls back to the default rather than failing
	depth, err := strconv.Atoi(strings.TrimSpace(params.Get("depth")))
	if err != nil {
		depth = h.defaults.Depth
	}

	full := strings.EqualFold(strings.TrimSpace(params.Get("full")), "true")

	query := queries.NewSearchCourseQuery(campus, params.Get("course_id"), depth, full, h.defaults.MaxDepth)

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	res, ok := result.(*queries.SearchCourseResult)
	if !ok {
		h.logger.Error("Unexpected search result", zap.String("type", fmt.Sprintf("%T", result)))
		h.errors.Handle(w, r, pkgerrors.NewInternalError("unexpected search result"))
		return
	}
	common.RespondJSON(w, http.StatusOK, res)
}

// GraphStats handles GET /api/campuses/{campus}/graph/stats
func (h *CourseHandler) GraphStats(w http.ResponseWriter, r *http.Request) {
	query := queries.NewGetCampusGraphStatsQuery(chi.URLParam(r, "campus"))

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}
