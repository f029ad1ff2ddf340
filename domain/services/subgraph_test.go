package services

import (
	"testing"

	"coursegraph/domain/core/aggregates"
	"coursegraph/domain/core/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// catalogGraph builds:
//
//	CSE8A -> CSE8B -> OR(CSE8B|CSE11) -> CSE12 -> CSE100 <- MATH20A
func catalogGraph(t *testing.T) *aggregates.CampusGraph {
	t.Helper()
	newCourse := func(subject, number string, expr entities.RequirementExpression) *entities.Course {
		c, err := entities.NewCourse("UCSD", subject, number, subject+" "+number, "", "", expr)
		require.NoError(t, err)
		return c
	}
	return aggregates.BuildCampusGraph("UCSD", []*entities.Course{
		newCourse("CSE", "8A", nil),
		newCourse("CSE", "8B", entities.RequirementExpression{{"CSE8A"}}),
		newCourse("CSE", "12", entities.RequirementExpression{{"CSE8B", "CSE11"}}),
		newCourse("CSE", "100", entities.RequirementExpression{{"CSE12"}, {"MATH20A"}}),
	})
}

const cse12Logic = "OR_CSE12_CSE11_CSE8B"

func nodeIDs(g *aggregates.CampusGraph) []string {
	ids := make([]string, 0, g.Len())
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID)
	}
	return ids
}

func TestBoundedAncestors(t *testing.T) {
	g := catalogGraph(t)
	extractor := NewSubgraphExtractor()

	tests := []struct {
		name   string
		target string
		depth  int
		want   []string
	}{
		{name: "depth zero keeps only target", target: "CSE100", depth: 0, want: []string{"CSE100"}},
		{name: "direct prerequisites", target: "CSE100", depth: 1, want: []string{"CSE100", "CSE12", "MATH20A"}},
		{
			name:   "logic node crossed without spending depth",
			target: "CSE12",
			depth:  1,
			want:   []string{"CSE11", "CSE12", "CSE8B", cse12Logic},
		},
		{
			name:   "two hops",
			target: "CSE100",
			depth:  2,
			want:   []string{"CSE100", "CSE11", "CSE12", "CSE8B", "MATH20A", cse12Logic},
		},
		{name: "missing target", target: "CSE999", depth: 3, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := extractor.BoundedAncestors(g, tt.target, tt.depth)
			assert.Equal(t, tt.want, nodeIDs(sub))
		})
	}
}

func TestBoundedAncestors_MonotoneInDepth(t *testing.T) {
	g := catalogGraph(t)
	extractor := NewSubgraphExtractor()

	prev := nodeIDs(extractor.BoundedAncestors(g, "CSE100", 0))
	for depth := 1; depth <= 5; depth++ {
		cur := nodeIDs(extractor.BoundedAncestors(g, "CSE100", depth))
		assert.Subset(t, cur, prev, "depth %d", depth)
		prev = cur
	}
	assert.Len(t, prev, 7)
}

func TestFullAncestors(t *testing.T) {
	g := catalogGraph(t)
	extractor := NewSubgraphExtractor()

	full := extractor.FullAncestors(g, "CSE12")
	assert.Equal(t, []string{"CSE11", "CSE12", "CSE8A", "CSE8B", cse12Logic}, nodeIDs(full))
	assert.Len(t, full.Edges(), 4)

	assert.Equal(t, g.Len(), extractor.Extract(g, "CSE100", 0, true).Len())
	assert.Equal(t, 1, extractor.Extract(g, "CSE100", 0, false).Len())
	assert.Zero(t, extractor.FullAncestors(g, "NOPE1").Len())
}

func TestExtract_DoesNotMutateSource(t *testing.T) {
	g := catalogGraph(t)
	before := g.Edges()

	NewSubgraphExtractor().BoundedAncestors(g, "CSE100", 2)

	assert.Equal(t, before, g.Edges())
	assert.Equal(t, 7, g.Len())
}
