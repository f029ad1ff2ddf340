// Package services holds the pure graph and similarity algorithms behind course search.
package services

import (
	"sort"

	"coursegraph/domain/core/aggregates"
)

// SubgraphExtractor selects the ancestor neighbourhood of a course
type SubgraphExtractor struct{}

// NewSubgraphExtractor creates a new extractor
func NewSubgraphExtractor() *SubgraphExtractor {
	return &SubgraphExtractor{}
}

// Extract picks full or bounded mode
func (e *SubgraphExtractor) Extract(g *aggregates.CampusGraph, target string, depth int, full bool) *aggregates.CampusGraph {
	if full {
		return e.FullAncestors(g, target)
	}
	return e.BoundedAncestors(g, target, depth)
}

// FullAncestors returns the subgraph induced by target and every transitive prerequisite
func (e *SubgraphExtractor) FullAncestors(g *aggregates.CampusGraph, target string) *aggregates.CampusGraph {
	if !g.Has(target) {
		return g.Induced(nil)
	}

	keep := map[string]struct{}{target: {}}
	queue := []string{target}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, p := range g.Predecessors(node) {
			if _, seen := keep[p]; seen {
				continue
			}
			keep[p] = struct{}{}
			queue = append(queue, p)
		}
	}
	return g.Induced(keysOf(keep))
}

// BoundedAncestors expands at most depth course hops backwards from target.
// A logic predecessor is crossed without spending depth: its members join the
// next frontier together with ordinary predecessors.
func (e *SubgraphExtractor) BoundedAncestors(g *aggregates.CampusGraph, target string, depth int) *aggregates.CampusGraph {
	if !g.Has(target) {
		return g.Induced(nil)
	}

	keep := map[string]struct{}{target: {}}
	frontier := []string{target}

	for step := 0; step < depth && len(frontier) > 0; step++ {
		next := make(map[string]struct{})
		for _, node := range frontier {
			for _, p := range g.Predecessors(node) {
				keep[p] = struct{}{}
				if !g.IsLogic(p) {
					next[p] = struct{}{}
					continue
				}
				for _, gp := range g.Predecessors(p) {
					keep[gp] = struct{}{}
					next[gp] = struct{}{}
				}
			}
		}
		frontier = keysOf(next)
	}

	return g.Induced(keysOf(keep))
}

func keysOf(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
