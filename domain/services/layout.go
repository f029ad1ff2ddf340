package services

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"coursegraph/domain/config"
	"coursegraph/domain/core/aggregates"

	"go.uber.org/zap"
)

// Point is a 2-D coordinate
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Layout holds computed node positions.
// Nodes the layout could not reach have no position.
type Layout struct {
	Positions map[string]Point
	Fallback  bool
}

// Position returns the coordinate of id, if placed
func (l Layout) Position(id string) (Point, bool) {
	p, ok := l.Positions[id]
	return p, ok
}

// LayoutEngine places subgraph nodes in prerequisite tiers below the root
type LayoutEngine struct {
	hStep  float64
	vStep  float64
	seed   int64
	iters  int
	logger *zap.Logger
}

// NewLayoutEngine creates a layout engine from domain settings
func NewLayoutEngine(cfg *config.DomainConfig, logger *zap.Logger) *LayoutEngine {
	return &LayoutEngine{
		hStep:  cfg.HorizontalStep,
		vStep:  cfg.VerticalStep,
		seed:   cfg.FallbackSeed,
		iters:  cfg.FallbackIters,
		logger: logger,
	}
}

// Compute lays out g around root. It falls back to a seeded spring layout when
// root is absent or the tiered layout fails, and never panics.
func (e *LayoutEngine) Compute(g *aggregates.CampusGraph, root string) (layout Layout) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("Tiered layout failed, using spring layout",
				zap.String("root", root),
				zap.String("panic", fmt.Sprint(r)),
			)
			layout = e.springLayout(g)
		}
	}()

	if !g.Has(root) {
		return e.springLayout(g)
	}
	return e.tieredLayout(g, root)
}

type tierEntry struct {
	id      string
	seed    float64
	isLogic bool
}

func (e *LayoutEngine) tieredLayout(g *aggregates.CampusGraph, root string) Layout {
	levels := prerequisiteLevels(g, root)
	pos := map[string]Point{root: {X: 0, Y: 0}}

	for level := 1; level < len(levels); level++ {
		tier := make([]tierEntry, 0, len(levels[level]))
		for _, id := range levels[level] {
			tier = append(tier, tierEntry{
				id:      id,
				seed:    meanPlacedX(g.Successors(id), pos),
				isLogic: g.IsLogic(id),
			})
		}

		sort.Slice(tier, func(i, j int) bool {
			if tier[i].seed != tier[j].seed {
				return tier[i].seed < tier[j].seed
			}
			if tier[i].isLogic != tier[j].isLogic {
				return !tier[i].isLogic
			}
			return tier[i].id < tier[j].id
		})

		width := float64(len(tier))
		for i, entry := range tier {
			pos[entry.id] = Point{
				X: (float64(i) - (width-1)/2) * e.hStep,
				Y: -float64(level) * e.vStep,
			}
		}
	}

	return Layout{Positions: pos}
}

// prerequisiteLevels groups nodes by shortest predecessor-direction distance from root
func prerequisiteLevels(g *aggregates.CampusGraph, root string) [][]string {
	dist := map[string]int{root: 0}
	levels := [][]string{{root}}
	queue := []string{root}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, p := range g.Predecessors(node) {
			if _, seen := dist[p]; seen {
				continue
			}
			d := dist[node] + 1
			dist[p] = d
			if d == len(levels) {
				levels = append(levels, nil)
			}
			levels[d] = append(levels[d], p)
			queue = append(queue, p)
		}
	}
	return levels
}

func meanPlacedX(ids []string, pos map[string]Point) float64 {
	var sum float64
	var n int
	for _, id := range ids {
		if p, ok := pos[id]; ok {
			sum += p.X
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// springLayout is a Fruchterman-Reingold layout with a fixed seed and
// iteration count, rescaled into [-1, 1].
func (e *LayoutEngine) springLayout(g *aggregates.CampusGraph) Layout {
	nodes := g.Nodes()
	out := Layout{Positions: make(map[string]Point, len(nodes)), Fallback: true}

	switch len(nodes) {
	case 0:
		return out
	case 1:
		out.Positions[nodes[0].ID] = Point{}
		return out
	}

	n := len(nodes)
	index := make(map[string]int, n)
	pos := make([]Point, n)
	rng := rand.New(rand.NewSource(e.seed))
	for i, node := range nodes {
		index[node.ID] = i
		pos[i] = Point{X: rng.Float64(), Y: rng.Float64()}
	}
	edges := g.Edges()

	k := math.Sqrt(1 / float64(n))
	temp := 0.1
	cool := temp / float64(e.iters+1)

	for iter := 0; iter < e.iters; iter++ {
		disp := make([]Point, n)

		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				dx, dy := pos[i].X-pos[j].X, pos[i].Y-pos[j].Y
				dist := math.Max(math.Hypot(dx, dy), 0.01)
				force := k * k / dist
				disp[i].X += dx / dist * force
				disp[i].Y += dy / dist * force
			}
		}

		for _, edge := range edges {
			s, t := index[edge.Source], index[edge.Target]
			dx, dy := pos[s].X-pos[t].X, pos[s].Y-pos[t].Y
			dist := math.Max(math.Hypot(dx, dy), 0.01)
			force := dist * dist / k
			disp[s].X -= dx / dist * force
			disp[s].Y -= dy / dist * force
			disp[t].X += dx / dist * force
			disp[t].Y += dy / dist * force
		}

		for i := range pos {
			length := math.Max(math.Hypot(disp[i].X, disp[i].Y), 0.01)
			step := math.Min(length, temp)
			pos[i].X += disp[i].X / length * step
			pos[i].Y += disp[i].Y / length * step
		}
		temp -= cool
	}

	rescale(pos)
	for i, node := range nodes {
		out.Positions[node.ID] = pos[i]
	}
	return out
}

func rescale(pos []Point) {
	var cx, cy float64
	for _, p := range pos {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(len(pos))
	cy /= float64(len(pos))

	var maxAbs float64
	for i := range pos {
		pos[i].X -= cx
		pos[i].Y -= cy
		maxAbs = math.Max(maxAbs, math.Max(math.Abs(pos[i].X), math.Abs(pos[i].Y)))
	}
	if maxAbs == 0 {
		return
	}
	for i := range pos {
		pos[i].X /= maxAbs
		pos[i].Y /= maxAbs
	}
}
