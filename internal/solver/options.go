package solver

import (
	"math"

	"github.com/akorchak/pathfinder/internal/graph"
)

// Heuristic estimates the remaining cost from a node to a goal. It must be
// admissible (never overestimate) for the solver to stay optimal; with a nil
// heuristic the search is plain Dijkstra.
type Heuristic func(from, to *graph.Node) float64

// Options configures a solve.
type Options struct {
	Heuristic Heuristic
}

// Option is a functional option for Solve.
type Option func(*Options)

// WithHeuristic enables best-first (A*) ordering using h.
func WithHeuristic(h Heuristic) Option {
	return func(o *Options) { o.Heuristic = h }
}

// EuclideanHeuristic estimates remaining cost as the straight-line distance
// between node positions. Nodes without positions contribute zero, which
// keeps the estimate admissible. Only meaningful when edge weights are
// distances in the same coordinate space.
func EuclideanHeuristic(from, to *graph.Node) float64 {
	if from == nil || to == nil || from.Pos == nil || to.Pos == nil {
		return 0
	}
	dx := from.Pos[0] - to.Pos[0]
	dy := from.Pos[1] - to.Pos[1]
	return math.Sqrt(dx*dx + dy*dy)
}
