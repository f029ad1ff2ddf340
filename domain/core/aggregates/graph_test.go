package aggregates

import (
	"testing"

	"coursegraph/domain/core/entities"
	"coursegraph/domain/core/valueobjects"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func course(t *testing.T, subject, number string, expr entities.RequirementExpression) *entities.Course {
	t.Helper()
	c, err := entities.NewCourse("UCSD", subject, number, subject+" "+number, "", "", expr)
	require.NoError(t, err)
	return c
}

func TestBuildCampusGraph_MandatoryAndDisjunction(t *testing.T) {
	// CSE 12 requires CSE 8A or CSE 8B; CSE 100 requires CSE 12
	courses := []*entities.Course{
		course(t, "CSE", "12", entities.RequirementExpression{{"CSE8A", "CSE8B"}}),
		course(t, "CSE", "100", entities.RequirementExpression{{"CSE12"}}),
	}

	g := BuildCampusGraph("UCSD", courses)

	logicID := "OR_CSE12_CSE8A_CSE8B"
	require.True(t, g.Has(logicID))
	assert.True(t, g.IsLogic(logicID))
	assert.Equal(t, []string{logicID}, g.Predecessors("CSE12"))
	assert.Equal(t, []string{"CSE8A", "CSE8B"}, g.Predecessors(logicID))
	assert.Equal(t, []string{"CSE12"}, g.Predecessors("CSE100"))
	assert.Equal(t, []string{"CSE100"}, g.Successors("CSE12"))

	n, ok := g.Node("CSE8A")
	require.True(t, ok)
	assert.Equal(t, NodeKindExternal, n.Kind)

	stats := g.Stats()
	assert.Equal(t, 5, stats.NodeCount)
	assert.Equal(t, 4, stats.EdgeCount)
	assert.Equal(t, 2, stats.CourseCount)
	assert.Equal(t, 1, stats.LogicCount)
	assert.Equal(t, 2, stats.ExternalCount)
}

func TestBuildCampusGraph_NoSelfEdges(t *testing.T) {
	courses := []*entities.Course{
		course(t, "MATH", "21A", entities.RequirementExpression{{"MATH21A"}, {"MATH21A", "MATH17A"}}),
	}

	g := BuildCampusGraph("UCSD", courses)

	for _, e := range g.Edges() {
		assert.NotEqual(t, e.Source, e.Target)
	}
	logicID := LogicNodeID("MATH21A", []valueobjects.CourseID{"MATH17A"})
	assert.Equal(t, "OR_MATH21A_MATH17A", logicID)
	assert.Equal(t, []string{"MATH17A"}, g.Predecessors(logicID))
}

func TestBuildCampusGraph_DisjunctionOfOnlyTargetIsSkipped(t *testing.T) {
	courses := []*entities.Course{
		course(t, "PHYS", "9A", entities.RequirementExpression{{"PHYS9A", "PHYS9A"}}),
	}

	g := BuildCampusGraph("UCSD", courses)

	assert.Equal(t, 1, g.Len())
	assert.Empty(t, g.Edges())
}

func TestBuildCampusGraph_SharedLogicNode(t *testing.T) {
	// the same disjunction listed twice, in different member order, maps onto one node
	courses := []*entities.Course{
		course(t, "CSE", "30", entities.RequirementExpression{{"CSE15L", "CSE12"}, {"CSE12", "CSE15L"}}),
	}

	g := BuildCampusGraph("UCSD", courses)

	assert.Equal(t, 1, g.Stats().LogicCount)
	assert.Equal(t, []string{"OR_CSE30_CSE12_CSE15L"}, g.Predecessors("CSE30"))
}

func TestBuildCampusGraph_ExternalUpgradedToCourse(t *testing.T) {
	courses := []*entities.Course{
		course(t, "CSE", "100", entities.RequirementExpression{{"CSE12"}}),
		course(t, "CSE", "12", nil),
	}

	g := BuildCampusGraph("UCSD", courses)

	n, ok := g.Node("CSE12")
	require.True(t, ok)
	assert.Equal(t, NodeKindCourse, n.Kind)
	assert.Equal(t, "CSE 12", n.Title)
	assert.Equal(t, 0, g.Stats().ExternalCount)
}

func TestCampusGraph_Induced(t *testing.T) {
	courses := []*entities.Course{
		course(t, "CSE", "12", entities.RequirementExpression{{"CSE8A", "CSE8B"}}),
		course(t, "CSE", "100", entities.RequirementExpression{{"CSE12"}, {"MATH20A"}}),
	}
	g := BuildCampusGraph("UCSD", courses)

	sub := g.Induced([]string{"CSE100", "CSE12", "MATH20A", "MISSING"})

	assert.Equal(t, 3, sub.Len())
	assert.Equal(t, []Edge{
		{Source: "CSE12", Target: "CSE100"},
		{Source: "MATH20A", Target: "CSE100"},
	}, sub.Edges())
	assert.Empty(t, sub.Predecessors("CSE12"))
	assert.Equal(t, 6, g.Len())
}
