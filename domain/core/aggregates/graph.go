package aggregates

import (
	"sort"
	"strings"
	"time"

	"coursegraph/domain/core/entities"
	"coursegraph/domain/core/valueobjects"

	"github.com/samber/lo"
)

// NodeKind discriminates the node variants of a campus graph
type NodeKind string

const (
	NodeKindCourse   NodeKind = "course"
	NodeKindLogic    NodeKind = "logic"
	NodeKindExternal NodeKind = "external"
)

// LogicPrefix starts every disjunction node id
const LogicPrefix = "OR_"

// Node is a vertex of a campus graph.
// Title is only set for course nodes, Members only for logic nodes.
type Node struct {
	ID      string
	Kind    NodeKind
	Title   string
	Members []valueobjects.CourseID
}

// IsLogic reports whether the node is a synthetic disjunction
func (n Node) IsLogic() bool {
	return n.Kind == NodeKindLogic
}

// Edge points from a prerequisite to the node that requires it
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// GraphStats summarizes a campus graph
type GraphStats struct {
	NodeCount     int `json:"node_count"`
	EdgeCount     int `json:"edge_count"`
	CourseCount   int `json:"course_count"`
	LogicCount    int `json:"logic_count"`
	ExternalCount int `json:"external_count"`
}

// CampusGraph is the prerequisite graph of one campus.
// It is never mutated once built; readers may share it freely.
type CampusGraph struct {
	campus  valueobjects.Campus
	nodes   map[string]*Node
	preds   map[string]map[string]struct{}
	succs   map[string]map[string]struct{}
	edges   int
	builtAt time.Time
}

func newCampusGraph(campus valueobjects.Campus) *CampusGraph {
	return &CampusGraph{
		campus:  campus,
		nodes:   make(map[string]*Node),
		preds:   make(map[string]map[string]struct{}),
		succs:   make(map[string]map[string]struct{}),
		builtAt: time.Now(),
	}
}

// LogicNodeID derives the id of the disjunction node for target over members
func LogicNodeID(target valueobjects.CourseID, members []valueobjects.CourseID) string {
	ids := lo.Map(lo.Uniq(members), func(id valueobjects.CourseID, _ int) string {
		return id.String()
	})
	sort.Strings(ids)
	return LogicPrefix + target.String() + "_" + strings.Join(ids, "_")
}

// BuildCampusGraph builds the prerequisite graph for the given courses of one campus
func BuildCampusGraph(campus valueobjects.Campus, courses []*entities.Course) *CampusGraph {
	g := newCampusGraph(campus)

	for _, course := range courses {
		target := course.ID()
		g.addCourse(target, course.Title())

		for _, group := range course.Requirements() {
			if len(group) == 0 {
				continue
			}
			if !group.IsDisjunction() {
				src := group[0]
				if src == target {
					continue
				}
				g.ensureExternal(src)
				g.addEdge(src.String(), target.String())
				continue
			}

			members := lo.Filter(lo.Uniq(group), func(id valueobjects.CourseID, _ int) bool {
				return id != target
			})
			if len(members) == 0 {
				continue
			}

			logicID := LogicNodeID(target, members)
			if _, exists := g.nodes[logicID]; !exists {
				g.nodes[logicID] = &Node{ID: logicID, Kind: NodeKindLogic, Members: members}
			}
			g.addEdge(logicID, target.String())
			for _, src := range members {
				g.ensureExternal(src)
				g.addEdge(src.String(), logicID)
			}
		}
	}

	return g
}

func (g *CampusGraph) addCourse(id valueobjects.CourseID, title string) {
	if existing, ok := g.nodes[id.String()]; ok {
		if existing.Kind == NodeKindExternal {
			existing.Kind = NodeKindCourse
			existing.Title = title
		}
		return
	}
	g.nodes[id.String()] = &Node{ID: id.String(), Kind: NodeKindCourse, Title: title}
}

func (g *CampusGraph) ensureExternal(id valueobjects.CourseID) {
	if _, ok := g.nodes[id.String()]; ok {
		return
	}
	g.nodes[id.String()] = &Node{ID: id.String(), Kind: NodeKindExternal}
}

func (g *CampusGraph) addEdge(source, target string) {
	if source == target {
		return
	}
	if _, ok := g.succs[source][target]; ok {
		return
	}
	if g.succs[source] == nil {
		g.succs[source] = make(map[string]struct{})
	}
	if g.preds[target] == nil {
		g.preds[target] = make(map[string]struct{})
	}
	g.succs[source][target] = struct{}{}
	g.preds[target][source] = struct{}{}
	g.edges++
}

// Campus returns the owning campus
func (g *CampusGraph) Campus() valueobjects.Campus {
	return g.campus
}

// BuiltAt returns when the graph was constructed
func (g *CampusGraph) BuiltAt() time.Time {
	return g.builtAt
}

// Len returns the number of nodes
func (g *CampusGraph) Len() int {
	return len(g.nodes)
}

// Has reports whether id is a node of the graph
func (g *CampusGraph) Has(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Node returns a copy of the node with the given id
func (g *CampusGraph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	out := *n
	out.Members = append([]valueobjects.CourseID(nil), n.Members...)
	return out, true
}

// IsLogic reports whether id names a disjunction node of the graph
func (g *CampusGraph) IsLogic(id string) bool {
	n, ok := g.nodes[id]
	return ok && n.Kind == NodeKindLogic
}

// Predecessors returns the sorted ids of the direct prerequisites of id
func (g *CampusGraph) Predecessors(id string) []string {
	return sortedKeys(g.preds[id])
}

// Successors returns the sorted ids of the nodes that directly require id
func (g *CampusGraph) Successors(id string) []string {
	return sortedKeys(g.succs[id])
}

// Nodes returns every node sorted by id
func (g *CampusGraph) Nodes() []Node {
	out := make([]Node, 0, len(g.nodes))
	for _, id := range sortedKeys(g.nodes) {
		n, _ := g.Node(id)
		out = append(out, n)
	}
	return out
}

// Edges returns every edge sorted by source then target
func (g *CampusGraph) Edges() []Edge {
	out := make([]Edge, 0, g.edges)
	for _, source := range sortedKeys(g.succs) {
		for _, target := range sortedKeys(g.succs[source]) {
			out = append(out, Edge{Source: source, Target: target})
		}
	}
	return out
}

// Stats counts nodes by kind and edges
func (g *CampusGraph) Stats() GraphStats {
	stats := GraphStats{NodeCount: len(g.nodes), EdgeCount: g.edges}
	for _, n := range g.nodes {
		switch n.Kind {
		case NodeKindCourse:
			stats.CourseCount++
		case NodeKindLogic:
			stats.LogicCount++
		default:
			stats.ExternalCount++
		}
	}
	return stats
}

// Induced returns the subgraph over ids, keeping every edge between two kept nodes.
// Ids that are not in the graph are ignored.
func (g *CampusGraph) Induced(ids []string) *CampusGraph {
	sub := newCampusGraph(g.campus)
	sub.builtAt = g.builtAt

	for _, id := range ids {
		if n, ok := g.nodes[id]; ok {
			sub.nodes[id] = n
		}
	}
	for id := range sub.nodes {
		for target := range g.succs[id] {
			if _, ok := sub.nodes[target]; ok {
				sub.addEdge(id, target)
			}
		}
	}
	return sub
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
