package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCourseID(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected CourseID
	}{
		{name: "lowercase with hyphen", input: "cse-12", expected: "CSE12"},
		{name: "space separated", input: "CSE 12", expected: "CSE12"},
		{name: "already normalized", input: "CSE12", expected: "CSE12"},
		{name: "trailing letter", input: "cse 8a", expected: "CSE8A"},
		{name: "ampersand subject", input: "E&ES 101", expected: "EES101"},
		{name: "slashes and dots", input: " mat/21.b ", expected: "MAT21B"},
		{name: "empty", input: "", expected: ""},
		{name: "only separators", input: " - / ", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeCourseID(tc.input))
		})
	}
}

func TestNormalizeCourseID_Idempotent(t *testing.T) {
	inputs := []string{"cse-12", "CSE 12", "Math 21B", "e&es 101", "stat 141c"}

	for _, in := range inputs {
		once := NormalizeCourseID(in)
		twice := NormalizeCourseID(once.String())
		assert.Equal(t, once, twice, "normalizing %q twice changed the result", in)
	}
}

func TestCourseID_SubjectPrefix(t *testing.T) {
	assert.Equal(t, "CSE", CourseID("CSE12").SubjectPrefix())
	assert.Equal(t, "MAT", CourseID("MAT21B").SubjectPrefix())
	assert.Equal(t, "", CourseID("101").SubjectPrefix())
	assert.Equal(t, "ECS", CourseID("ECS").SubjectPrefix())
}

func TestNormalizeCampus(t *testing.T) {
	assert.Equal(t, Campus("UCD"), NormalizeCampus(" ucd "))
	assert.True(t, NormalizeCampus("   ").IsZero())
}
