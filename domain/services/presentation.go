package services

import (
	"fmt"

	"coursegraph/domain/config"
	"coursegraph/domain/core/aggregates"
	"coursegraph/domain/core/valueobjects"
)

// DisplayClass tells a renderer how to emphasize a node
type DisplayClass string

const (
	ClassTarget   DisplayClass = "target"
	ClassDirect   DisplayClass = "direct"
	ClassOrOption DisplayClass = "or_option"
	ClassLogic    DisplayClass = "logic"
	ClassCourse   DisplayClass = "course"
	ClassLegacy   DisplayClass = "legacy"
	ClassExternal DisplayClass = "external"
)

// NodeView is a positioned node ready for rendering
type NodeView struct {
	ID    string       `json:"id"`
	Kind  string       `json:"kind"`
	Class DisplayClass `json:"class"`
	Label string       `json:"label"`
	Title string       `json:"title,omitempty"`
	X     float64      `json:"x"`
	Y     float64      `json:"y"`
}

// GraphPayload is the visual description of a prerequisite subgraph
type GraphPayload struct {
	Title          string            `json:"title"`
	Nodes          []NodeView        `json:"nodes"`
	Edges          []aggregates.Edge `json:"edges"`
	FallbackLayout bool              `json:"fallback_layout"`
}

// GraphTitle names a subgraph view
func GraphTitle(root string, depth int, full bool) string {
	if full {
		return fmt.Sprintf("Tree: %s (Full)", root)
	}
	return fmt.Sprintf("Tree: %s (Depth %d)", root, depth)
}

// Presenter turns subgraphs into positioned, classified payloads
type Presenter struct {
	layout     *LayoutEngine
	logicLabel string
}

// NewPresenter creates a new presenter
func NewPresenter(layout *LayoutEngine, cfg *config.DomainConfig) *Presenter {
	return &Presenter{
		layout:     layout,
		logicLabel: cfg.LogicLabel,
	}
}

// Render lays out sub around root. knownSubjects holds normalized subject codes
// of the whole dataset and is used to recognize discontinued courses.
// It returns nil for an empty subgraph.
func (p *Presenter) Render(sub *aggregates.CampusGraph, root, title string, knownSubjects map[string]struct{}) *GraphPayload {
	if sub.Len() == 0 {
		return nil
	}

	layout := p.layout.Compute(sub, root)

	direct := make(map[string]struct{})
	options := make(map[string]struct{})
	for _, pred := range sub.Predecessors(root) {
		if !sub.IsLogic(pred) {
			direct[pred] = struct{}{}
			continue
		}
		for _, opt := range sub.Predecessors(pred) {
			options[opt] = struct{}{}
		}
	}

	payload := &GraphPayload{
		Title:          title,
		Nodes:          make([]NodeView, 0, sub.Len()),
		Edges:          make([]aggregates.Edge, 0),
		FallbackLayout: layout.Fallback,
	}

	for _, node := range sub.Nodes() {
		pt, ok := layout.Position(node.ID)
		if !ok {
			continue
		}
		view := NodeView{
			ID:    node.ID,
			Kind:  string(node.Kind),
			Class: classify(node, root, direct, options, knownSubjects),
			Label: node.ID,
			Title: node.Title,
			X:     pt.X,
			Y:     pt.Y,
		}
		if node.IsLogic() {
			view.Label = p.logicLabel
		}
		payload.Nodes = append(payload.Nodes, view)
	}

	for _, edge := range sub.Edges() {
		_, okSource := layout.Position(edge.Source)
		_, okTarget := layout.Position(edge.Target)
		if okSource && okTarget {
			payload.Edges = append(payload.Edges, edge)
		}
	}

	return payload
}

func classify(node aggregates.Node, root string, direct, options, knownSubjects map[string]struct{}) DisplayClass {
	if node.ID == root {
		return ClassTarget
	}
	if _, ok := direct[node.ID]; ok {
		return ClassDirect
	}
	if _, ok := options[node.ID]; ok {
		return ClassOrOption
	}
	switch node.Kind {
	case aggregates.NodeKindLogic:
		return ClassLogic
	case aggregates.NodeKindCourse:
		return ClassCourse
	}
	if _, ok := knownSubjects[valueobjects.CourseID(node.ID).SubjectPrefix()]; ok {
		return ClassLegacy
	}
	return ClassExternal
}
