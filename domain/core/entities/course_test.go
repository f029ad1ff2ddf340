package entities

import (
	"testing"

	"coursegraph/domain/core/valueobjects"
	pkgerrors "coursegraph/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCourse_DerivesNormalizedID(t *testing.T) {
	course, err := NewCourse(" ucd ", "ECS", " 36A", "Programming", "ECS 32A", "desc", nil)

	require.NoError(t, err)
	assert.Equal(t, valueobjects.Campus("UCD"), course.Campus())
	assert.Equal(t, valueobjects.CourseID("ECS36A"), course.ID())
	assert.Equal(t, "36A", course.Number())
	assert.Equal(t, "ECS 32A", course.PrereqText())
	assert.True(t, course.HasPrereqText())
	assert.True(t, course.Requirements().IsEmpty())
}

func TestNewCourse_Validation(t *testing.T) {
	_, err := NewCourse("", "ECS", "36A", "", "", "", nil)
	assert.True(t, pkgerrors.IsValidation(err))

	_, err = NewCourse("UCD", "", " ", "", "", "", nil)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestRequirementGroup(t *testing.T) {
	single := RequirementGroup{"CSE12"}
	either := RequirementGroup{"CSE30", "CSE31"}

	assert.False(t, single.IsDisjunction())
	assert.True(t, either.IsDisjunction())
	assert.Equal(t, []string{"CSE30", "CSE31"}, either.Strings())
}

func TestSplitCourseCodes(t *testing.T) {
	codes := SplitCourseCodes("ECS 36A| cse-12 ||MATH 21B")

	assert.Equal(t, []valueobjects.CourseID{"ECS36A", "CSE12", "MATH21B"}, codes)
}

func TestNewCanonicalCourse(t *testing.T) {
	c := NewCanonicalCourse(7, "ucla", "COM SCI 31|COM SCI 31L", "COM SCI", " Intro ", "", 3)

	assert.Equal(t, CanonicalID(7), c.ID)
	assert.Equal(t, valueobjects.Campus("UCLA"), c.Campus)
	assert.Equal(t, []string{"COMSCI31", "COMSCI31L"}, c.CodeStrings())
	assert.Equal(t, []string{"COM SCI 31", "COM SCI 31L"}, c.RawCodes)
	assert.Equal(t, "Intro", c.Title)
	assert.Equal(t, 3, c.Row)
}

func TestCourse_ParseStatus(t *testing.T) {
	bare, err := NewCourse("UCD", "ECS", "36A", "", "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, ParseStatusEmpty, bare.ParseStatus())

	course, err := NewCourse("UCD", "ECS", "36B", "", "ECS 36A; consent", "", RequirementExpression{{"ECS36A"}})
	require.NoError(t, err)
	assert.Equal(t, ParseStatusComplete, course.ParseStatus())

	partial := course.WithParseStatus(ParseStatusPartial)
	assert.Equal(t, ParseStatusPartial, partial.ParseStatus())
	assert.Equal(t, ParseStatusComplete, course.ParseStatus())
	assert.Equal(t, course.ID(), partial.ID())
}
