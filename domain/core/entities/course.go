package entities

import (
	"strings"

	"coursegraph/domain/core/valueobjects"
	pkgerrors "coursegraph/pkg/errors"
)

// RequirementGroup is a set of acceptable courses combined by OR.
// A single-member group is a mandatory prerequisite.
type RequirementGroup []valueobjects.CourseID

// IsDisjunction reports whether the group offers more than one option
func (g RequirementGroup) IsDisjunction() bool {
	return len(g) > 1
}

// Strings returns the member ids as plain strings
func (g RequirementGroup) Strings() []string {
	out := make([]string, len(g))
	for i, id := range g {
		out[i] = id.String()
	}
	return out
}

// RequirementExpression is an ordered list of groups combined by AND
type RequirementExpression []RequirementGroup

// IsEmpty reports whether the expression has no groups
func (e RequirementExpression) IsEmpty() bool {
	return len(e) == 0
}

// ParseStatus describes how much of a prerequisite statement was understood
type ParseStatus string

const (
	// ParseStatusEmpty means no requirement groups were produced
	ParseStatusEmpty ParseStatus = "empty"
	// ParseStatusPartial means some non-blank clauses yielded no course tokens
	ParseStatusPartial ParseStatus = "partial"
	// ParseStatusComplete means every non-blank clause yielded at least one group
	ParseStatusComplete ParseStatus = "complete"
)

// Course is an immutable catalog entry for one campus
type Course struct {
	campus       valueobjects.Campus
	id           valueobjects.CourseID
	subject      string
	number       string
	title        string
	prereqText   string
	description  string
	requirements RequirementExpression
	parseStatus  ParseStatus
}

// NewCourse creates a course, deriving its id from subject and number.
// The parse status defaults to empty or complete from requirements.
func NewCourse(
	campus string,
	subject string,
	number string,
	title string,
	prereqText string,
	description string,
	requirements RequirementExpression,
) (*Course, error) {
	c := valueobjects.NormalizeCampus(campus)
	if c.IsZero() {
		return nil, pkgerrors.NewValidationError("campus cannot be empty")
	}

	id := valueobjects.NormalizeCourseID(subject + number)
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("course id cannot be empty")
	}

	status := ParseStatusComplete
	if requirements.IsEmpty() {
		status = ParseStatusEmpty
	}

	return &Course{
		campus:       c,
		id:           id,
		subject:      strings.TrimSpace(subject),
		number:       strings.TrimSpace(number),
		title:        strings.TrimSpace(title),
		prereqText:   prereqText,
		description:  strings.TrimSpace(description),
		requirements: requirements,
		parseStatus:  status,
	}, nil
}

// Campus returns the owning campus
func (c *Course) Campus() valueobjects.Campus {
	return c.campus
}

// ID returns the normalized course id
func (c *Course) ID() valueobjects.CourseID {
	return c.id
}

// Subject returns the subject code as loaded
func (c *Course) Subject() string {
	return c.subject
}

// Number returns the course number as loaded
func (c *Course) Number() string {
	return c.number
}

// Title returns the course title
func (c *Course) Title() string {
	return c.title
}

// PrereqText returns the raw prerequisite statement, verbatim
func (c *Course) PrereqText() string {
	return c.prereqText
}

// HasPrereqText reports whether any prerequisite text was recorded
func (c *Course) HasPrereqText() bool {
	return strings.TrimSpace(c.prereqText) != ""
}

// Description returns the catalog description
func (c *Course) Description() string {
	return c.description
}

// Requirements returns the parsed requirement expression
func (c *Course) Requirements() RequirementExpression {
	return c.requirements
}

// ParseStatus reports how fully the prerequisite text was parsed at load time
func (c *Course) ParseStatus() ParseStatus {
	return c.parseStatus
}

// WithParseStatus returns a copy of the course carrying status
func (c *Course) WithParseStatus(status ParseStatus) *Course {
	cp := *c
	cp.parseStatus = status
	return &cp
}
