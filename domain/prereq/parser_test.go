package prereq

import (
	"testing"

	"coursegraph/domain/core/entities"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   entities.RequirementExpression
		status Status
	}{
		{
			name:   "empty text",
			input:  "   ",
			want:   nil,
			status: StatusEmpty,
		},
		{
			name:   "and of or",
			input:  "CSE 12; CSE 30 or CSE 31",
			want:   entities.RequirementExpression{{"CSE12"}, {"CSE30", "CSE31"}},
			status: StatusComplete,
		},
		{
			name:   "tokens without a disjunction marker are each mandatory",
			input:  "MATH 21A and MATH 21B",
			want:   entities.RequirementExpression{{"MATH21A"}, {"MATH21B"}},
			status: StatusComplete,
		},
		{
			name:   "grade qualifier does not create a disjunction",
			input:  "ECS 36A C- or better",
			want:   entities.RequirementExpression{{"ECS36A"}},
			status: StatusComplete,
		},
		{
			name:   "one of marker",
			input:  "One of: PHYS 9A, PHYS 7A, PHYS 9HA",
			want:   entities.RequirementExpression{{"PHYS9A", "PHYS7A", "PHYS9HA"}},
			status: StatusComplete,
		},
		{
			name:   "parentheses form a group",
			input:  "(STA 13,STA 32)",
			want:   entities.RequirementExpression{{"STA13", "STA32"}},
			status: StatusComplete,
		},
		{
			name:   "duplicates within a group are removed",
			input:  "CSE 8A or CSE 8A or CSE 11",
			want:   entities.RequirementExpression{{"CSE8A", "CSE11"}},
			status: StatusComplete,
		},
		{
			name:   "clause without tokens is skipped",
			input:  "CSE 12; consent of instructor",
			want:   entities.RequirementExpression{{"CSE12"}},
			status: StatusPartial,
		},
		{
			name:   "nothing recognizable",
			input:  "Upper division standing",
			want:   nil,
			status: StatusEmpty,
		},
		{
			name:   "non-breaking space and ampersand subject",
			input:  "e&es\u00a0101",
			want:   entities.RequirementExpression{{"EES101"}},
			status: StatusComplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Parse(tt.input)

			assert.Equal(t, tt.want, result.Expression)
			assert.Equal(t, tt.status, result.Status)
		})
	}
}

func TestParse_ClauseCounts(t *testing.T) {
	result := Parse("CSE 12;; junior standing; MATH 20A or MATH 10A")

	assert.Equal(t, 3, result.Clauses)
	assert.Equal(t, 1, result.SkippedClauses)
	assert.Len(t, result.Expression, 2)
}

func TestParse_NestedClauseIsFlattened(t *testing.T) {
	// AND nested inside OR collapses into a single group
	expr := ParseExpression("(CSE 12 and CSE 15L) or CSE 30")

	assert.Equal(t, entities.RequirementExpression{{"CSE12", "CSE15L", "CSE30"}}, expr)
}
