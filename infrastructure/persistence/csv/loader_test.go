package csv

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"coursegraph/domain/core/entities"
	"coursegraph/domain/core/valueobjects"
	pkgerrors "coursegraph/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const datasetCSV = `Campus,Subject_Code,Course_Code,Title,Prerequisite(s),Course Description
 ucd ,ECS,036B,Software Development,ECS 036A C- or better; MAT 021A or MAT 017A,"Data structures, testing."
UCD,ECS,036A,Intro Programming,,Basics.
UCD,,,Orphan row,,
UCLA,COM SCI,32,Intro II,COM SCI 31,Objects.
`

const canonicalCSV = `Canonical_ID,Course_Codes,Subject,Title,Course Description,Campus
1,ECS 036A,ECS,Intro Programming,Basics.,UCD
2.0,COM SCI 31|COM SCI 31L,COM SCI,Intro I,Start.,UCLA
3,CSE 12,CSE,Data Structures,Trees.,UCSC
`

func TestCourseLoader_Read(t *testing.T) {
	loader := NewCourseLoader("combined.csv", zap.NewNop())

	courses, err := loader.Read(context.Background(), strings.NewReader(datasetCSV))

	require.NoError(t, err)
	require.Len(t, courses, 3)

	first := courses[0]
	assert.Equal(t, valueobjects.Campus("UCD"), first.Campus())
	assert.Equal(t, valueobjects.CourseID("ECS036B"), first.ID())
	assert.Equal(t, "Data structures, testing.", first.Description())
	assert.Equal(t, entities.RequirementExpression{
		{"ECS036A"},
		{"MAT021A", "MAT017A"},
	}, first.Requirements())

	assert.True(t, courses[1].Requirements().IsEmpty())
	assert.Equal(t, valueobjects.CourseID("COMSCI32"), courses[2].ID())
}

func TestCourseLoader_RecordsParseStatus(t *testing.T) {
	input := datasetCSV + "UCSC,CSE,101,Algorithms,CSE 12; consent of instructor,Sorting.\n"

	courses, err := NewCourseLoader("combined.csv", zap.NewNop()).Read(context.Background(), strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, courses, 4)
	assert.Equal(t, entities.ParseStatusComplete, courses[0].ParseStatus())
	assert.Equal(t, entities.ParseStatusEmpty, courses[1].ParseStatus())
	assert.Equal(t, entities.ParseStatusPartial, courses[3].ParseStatus())
	assert.Equal(t, entities.RequirementExpression{{"CSE12"}}, courses[3].Requirements())
}

func TestCourseLoader_LoadCourses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "combined.csv")
	require.NoError(t, os.WriteFile(path, []byte(datasetCSV), 0o600))

	courses, err := NewCourseLoader(path, zap.NewNop()).LoadCourses(context.Background())

	require.NoError(t, err)
	assert.Len(t, courses, 3)
}

func TestCourseLoader_MissingFile(t *testing.T) {
	loader := NewCourseLoader(filepath.Join(t.TempDir(), "nope.csv"), zap.NewNop())

	_, err := loader.LoadCourses(context.Background())

	assert.True(t, pkgerrors.IsDataLoad(err))
}

func TestCourseLoader_EmptyFile(t *testing.T) {
	courses, err := NewCourseLoader("empty.csv", zap.NewNop()).Read(context.Background(), strings.NewReader(""))

	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestCanonicalLoader_Read(t *testing.T) {
	loader := NewCanonicalLoader("canonical.csv", zap.NewNop())

	table, err := loader.Read(context.Background(), strings.NewReader(canonicalCSV))

	require.NoError(t, err)
	require.Len(t, table, 3)

	ucla := table[1]
	assert.Equal(t, entities.CanonicalID(2), ucla.ID)
	assert.Equal(t, valueobjects.Campus("UCLA"), ucla.Campus)
	assert.Equal(t, []valueobjects.CourseID{"COMSCI31", "COMSCI31L"}, ucla.Codes)
	assert.Equal(t, []string{"COM SCI 31", "COM SCI 31L"}, ucla.RawCodes)
	assert.Equal(t, 1, ucla.Row)
	assert.Equal(t, 2, table[2].Row)
}

func TestCanonicalLoader_SkipsBadIDs(t *testing.T) {
	input := `Canonical_ID,Course_Codes,Subject,Title,Course Description,Campus
1,ECS 036A,ECS,Intro Programming,Basics.,UCD
,X 1,X,Blank,D,UCD
NaN,X 2,X,Missing,D,UCD
abc,X 3,X,Garbage,D,UCD
5,CSE 12,CSE,Data Structures,Trees.,UCSC
`

	table, err := NewCanonicalLoader("canonical.csv", zap.NewNop()).Read(context.Background(), strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, entities.CanonicalID(1), table[0].ID)
	assert.Equal(t, 0, table[0].Row)
	assert.Equal(t, entities.CanonicalID(5), table[1].ID)
	assert.Equal(t, 4, table[1].Row)
}

func TestParseCanonicalID(t *testing.T) {
	tests := []struct {
		in   string
		want entities.CanonicalID
	}{
		{"7", 7},
		{" 12 ", 12},
		{"3.0", 3},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCanonicalID(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "NaN", "inf", "abc"} {
		_, err := ParseCanonicalID(bad)
		assert.ErrorContains(t, err, "invalid canonical id", "input %q", bad)
	}
}
