package handlers

import (
	"context"

	"coursegraph/application/ports"
	"coursegraph/application/queries"
	"coursegraph/domain/core/valueobjects"
	"coursegraph/domain/services"
	pkgerrors "coursegraph/pkg/errors"

	"go.uber.org/zap"
)

const noPrerequisites = "None"

// Tracer wraps a unit of work in a trace subsegment
type Tracer interface {
	TraceFunction(ctx context.Context, name string, fn func(context.Context) error) error
}

// SearchCourseHandler answers course searches by merging the prerequisite
// graph view with canonical matching and similarity results
type SearchCourseHandler struct {
	catalog    ports.CourseCatalog
	graphs     ports.GraphCache
	canonical  ports.CanonicalIndex
	similarity ports.SimilarityFinder
	extractor  *services.SubgraphExtractor
	presenter  *services.Presenter
	tracer     Tracer
	logger     *zap.Logger
}

// NewSearchCourseHandler creates a new search handler.
// similarity may be nil when no embeddings are loaded.
func NewSearchCourseHandler(
	catalog ports.CourseCatalog,
	graphs ports.GraphCache,
	canonical ports.CanonicalIndex,
	similarity ports.SimilarityFinder,
	extractor *services.SubgraphExtractor,
	presenter *services.Presenter,
	tracer Tracer,
	logger *zap.Logger,
) *SearchCourseHandler {
	return &SearchCourseHandler{
		catalog:    catalog,
		graphs:     graphs,
		canonical:  canonical,
		similarity: similarity,
		extractor:  extractor,
		presenter:  presenter,
		tracer:     tracer,
		logger:     logger,
	}
}

// Handle executes the search query
func (h *SearchCourseHandler) Handle(ctx context.Context, query queries.SearchCourseQuery) (*queries.SearchCourseResult, error) {
	campus := valueobjects.NormalizeCampus(query.Campus)
	courseID := valueobjects.NormalizeCourseID(query.CourseID)

	course, ok := h.catalog.Lookup(campus, courseID)
	if !ok {
		return nil, pkgerrors.NewCourseNotFoundError(courseID.String(), campus.String())
	}

	prereqList := noPrerequisites
	if course.HasPrereqText() {
		prereqList = course.PrereqText()
	}

	result := &queries.SearchCourseResult{
		PrereqList:  prereqList,
		Similarity:  map[string][]services.SimilarityHit{},
		ParseStatus: course.ParseStatus(),
	}

	err := h.tracer.TraceFunction(ctx, "prerequisite_graph", func(ctx context.Context) error {
		result.Graph = h.graphView(ctx, campus, courseID.String(), query.Depth, query.Full)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = h.tracer.TraceFunction(ctx, "similarity_search", func(ctx context.Context) error {
		h.attachEquivalents(result, campus, courseID, prereqList)
		return nil
	})
	if err != nil {
		return nil, err
	}

	h.logger.Debug("Course search completed",
		zap.String("campus", campus.String()),
		zap.String("course_id", courseID.String()),
		zap.Int("depth", query.Depth),
		zap.Bool("full", query.Full),
		zap.Bool("has_graph", result.Graph != nil),
		zap.Bool("has_canonical", result.Canonical != nil),
	)

	return result, nil
}

func (h *SearchCourseHandler) graphView(ctx context.Context, campus valueobjects.Campus, root string, depth int, full bool) *services.GraphPayload {
	graph := h.graphs.Get(ctx, campus)
	if !graph.Has(root) {
		return nil
	}

	sub := h.extractor.Extract(graph, root, depth, full)
	title := services.GraphTitle(root, depth, full)
	return h.presenter.Render(sub, root, title, h.catalog.KnownSubjects())
}

// attachEquivalents fills canonical and similarity only when both an embedding
// row and a canonical mapping exist for the course.
func (h *SearchCourseHandler) attachEquivalents(result *queries.SearchCourseResult, campus valueobjects.Campus, courseID valueobjects.CourseID, prereqList string) {
	if h.similarity == nil {
		return
	}

	canonID, ok := h.canonical.Match(campus, courseID)
	if !ok {
		return
	}
	record, ok := h.canonical.Record(canonID)
	if !ok {
		return
	}
	row, ok := h.canonical.Row(canonID)
	if !ok {
		return
	}

	hits := h.similarity.Search(campus, row)
	if hits == nil {
		h.logger.Warn("Canonical row has no embedding",
			zap.Int64("canonical_id", int64(canonID)),
			zap.Int("row", row),
		)
		return
	}

	result.Canonical = &queries.CanonicalDTO{
		CanonicalID:   int64(canonID),
		Codes:         record.CodeStrings(),
		Subjects:      record.Subjects,
		Title:         record.Title,
		Description:   record.Description,
		Prerequisites: prereqList,
	}
	result.Similarity = hits
}
