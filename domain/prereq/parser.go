// Package prereq turns free-text prerequisite statements into requirement expressions.
package prereq

import (
	"regexp"
	"strings"

	"coursegraph/domain/core/entities"
	"coursegraph/domain/core/valueobjects"

	"github.com/samber/lo"
)

// Status describes how much of a statement the parser understood
type Status = entities.ParseStatus

const (
	StatusEmpty    = entities.ParseStatusEmpty
	StatusPartial  = entities.ParseStatusPartial
	StatusComplete = entities.ParseStatusComplete
)

var (
	gradeQualifier = regexp.MustCompile(`\s+[A-D][+-]?\s+OR\s+BETTER`)
	courseToken    = regexp.MustCompile(`\b[A-Z&]{2,5}\s*\d+[A-Z]*\b`)
)

// Result is the outcome of parsing one statement
type Result struct {
	Expression     entities.RequirementExpression
	Status         Status
	Clauses        int
	SkippedClauses int
}

// Parse converts prerequisite text into an AND-of-OR requirement expression.
// Unrecognized clauses are dropped and reflected in the returned Status.
func Parse(raw string) Result {
	text := strings.TrimSpace(strings.ReplaceAll(strings.ToUpper(raw), "\u00a0", " "))
	if text == "" {
		return Result{Status: StatusEmpty}
	}

	text = gradeQualifier.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "(", " ( ")
	text = strings.ReplaceAll(text, ")", " ) ")

	var result Result
	for _, clause := range strings.Split(text, ";") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		result.Clauses++

		ids := extractCourses(clause)
		if len(ids) == 0 {
			result.SkippedClauses++
			continue
		}

		if isDisjunction(clause) {
			result.Expression = append(result.Expression, entities.RequirementGroup(lo.Uniq(ids)))
			continue
		}
		for _, id := range ids {
			result.Expression = append(result.Expression, entities.RequirementGroup{id})
		}
	}

	switch {
	case result.Expression.IsEmpty():
		result.Status = StatusEmpty
	case result.SkippedClauses > 0:
		result.Status = StatusPartial
	default:
		result.Status = StatusComplete
	}
	return result
}

// ParseExpression is Parse without the diagnostics
func ParseExpression(raw string) entities.RequirementExpression {
	return Parse(raw).Expression
}

func extractCourses(clause string) []valueobjects.CourseID {
	return lo.FilterMap(courseToken.FindAllString(clause, -1), func(token string, _ int) (valueobjects.CourseID, bool) {
		id := valueobjects.NormalizeCourseID(token)
		return id, !id.IsZero()
	})
}

// Nested AND-inside-OR clauses are flattened into one group.
func isDisjunction(clause string) bool {
	return strings.Contains(clause, " OR ") ||
		strings.Contains(clause, "ONE OF") ||
		strings.ContainsAny(clause, "()")
}
