package queries

import (
	"fmt"

	"coursegraph/domain/core/valueobjects"
	"coursegraph/domain/prereq"
	"coursegraph/domain/services"
	pkgerrors "coursegraph/pkg/errors"
	"coursegraph/pkg/utils"
)

// SearchCourseQuery asks for a course's prerequisite tree and its cross-campus equivalents
type SearchCourseQuery struct {
	Campus   string `json:"campus" validate:"required,max=16"`
	CourseID string `json:"course_id" validate:"required,max=32"`
	Depth    int    `json:"depth" validate:"min=0"`
	Full     bool   `json:"full"`

	// MaxDepth caps Depth when positive
	MaxDepth int `json:"-"`
}

// NewSearchCourseQuery builds a query with normalized campus and course id
func NewSearchCourseQuery(campus, courseID string, depth int, full bool, maxDepth int) SearchCourseQuery {
	return SearchCourseQuery{
		Campus:   valueobjects.NormalizeCampus(campus).String(),
		CourseID: valueobjects.NormalizeCourseID(courseID).String(),
		Depth:    depth,
		Full:     full,
		MaxDepth: maxDepth,
	}
}

// Validate validates the query
func (q SearchCourseQuery) Validate() error {
	if err := utils.ValidateStruct(q); err != nil {
		return err
	}
	if q.MaxDepth > 0 && q.Depth > q.MaxDepth {
		return pkgerrors.NewValidationError(fmt.Sprintf("depth must be at most %d", q.MaxDepth))
	}
	return nil
}

// SearchCourseResult is the merged answer of the graph and similarity pipelines
type SearchCourseResult struct {
	PrereqList  string                              `json:"prereq_list"`
	Graph       *services.GraphPayload              `json:"graph"`
	Canonical   *CanonicalDTO                       `json:"canonical"`
	Similarity  map[string][]services.SimilarityHit `json:"similarity"`
	ParseStatus prereq.Status                       `json:"parse_status"`
}

// CanonicalDTO is the canonical record of the searched course
type CanonicalDTO struct {
	CanonicalID   int64    `json:"canonical_id"`
	Codes         []string `json:"codes"`
	Subjects      string   `json:"subjects"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Prerequisites string   `json:"prerequisites"`
}
