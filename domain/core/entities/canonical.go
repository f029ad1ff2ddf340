package entities

import (
	"strings"

	"coursegraph/domain/core/valueobjects"

	"github.com/samber/lo"
)

// CanonicalID identifies a cross-campus equivalence cluster
type CanonicalID int64

// CanonicalCourse is one row of the canonical table.
// Row is both the table position and the embedding row index.
type CanonicalCourse struct {
	ID          CanonicalID
	Campus      valueobjects.Campus
	Codes       []valueobjects.CourseID
	RawCodes    []string
	Subjects    string
	Title       string
	Description string
	Row         int
}

// NewCanonicalCourse builds a record from a pipe-delimited member code list
func NewCanonicalCourse(id CanonicalID, campus, codes, subjects, title, description string, row int) *CanonicalCourse {
	return &CanonicalCourse{
		ID:          id,
		Campus:      valueobjects.NormalizeCampus(campus),
		Codes:       SplitCourseCodes(codes),
		RawCodes:    splitRawCodes(codes),
		Subjects:    strings.TrimSpace(subjects),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Row:         row,
	}
}

// CodeStrings returns the member codes as plain strings
func (c *CanonicalCourse) CodeStrings() []string {
	return lo.Map(c.Codes, func(id valueobjects.CourseID, _ int) string {
		return id.String()
	})
}

// SplitCourseCodes splits "ABC 123|XYZ 456" into normalized ids, dropping blank entries.
func SplitCourseCodes(raw string) []valueobjects.CourseID {
	return lo.FilterMap(strings.Split(raw, "|"), func(code string, _ int) (valueobjects.CourseID, bool) {
		id := valueobjects.NormalizeCourseID(code)
		return id, !id.IsZero()
	})
}

func splitRawCodes(raw string) []string {
	return lo.FilterMap(strings.Split(raw, "|"), func(code string, _ int) (string, bool) {
		code = strings.TrimSpace(code)
		return code, code != ""
	})
}
