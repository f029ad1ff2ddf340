package handlers

import (
	"context"

	"coursegraph/application/ports"
	"coursegraph/application/queries"
	"coursegraph/domain/core/valueobjects"
	pkgerrors "coursegraph/pkg/errors"
	"coursegraph/pkg/utils"

	"go.uber.org/zap"
)

// GetCampusGraphStatsHandler reports the size of a campus prerequisite graph
type GetCampusGraphStatsHandler struct {
	catalog ports.CourseCatalog
	graphs  ports.GraphCache
	logger  *zap.Logger
}

// NewGetCampusGraphStatsHandler creates a new stats handler
func NewGetCampusGraphStatsHandler(catalog ports.CourseCatalog, graphs ports.GraphCache, logger *zap.Logger) *GetCampusGraphStatsHandler {
	return &GetCampusGraphStatsHandler{
		catalog: catalog,
		graphs:  graphs,
		logger:  logger,
	}
}

// Handle executes the stats query
func (h *GetCampusGraphStatsHandler) Handle(ctx context.Context, query queries.GetCampusGraphStatsQuery) (*queries.GetCampusGraphStatsResult, error) {
	campus := valueobjects.NormalizeCampus(query.Campus)

	courses := h.catalog.CampusCourses(campus)
	if len(courses) == 0 {
		return nil, pkgerrors.NewNotFoundError("campus " + campus.String())
	}

	graph := h.graphs.Get(ctx, campus)
	stats := graph.Stats()

	h.logger.Debug("Campus graph stats",
		zap.String("campus", campus.String()),
		zap.Int("nodes", stats.NodeCount),
		zap.Int("edges", stats.EdgeCount),
	)

	return &queries.GetCampusGraphStatsResult{
		Campus:  campus.String(),
		Courses: len(courses),
		Stats:   stats,
		BuiltAt: utils.FormatTimestamp(graph.BuiltAt()),
	}, nil
}
