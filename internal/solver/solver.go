// Package solver computes minimum-cost paths over graph snapshots.
//
// The core is a Dijkstra-family search with lazy decrease-key: improved
// distances push fresh heap entries and stale ones are skipped when popped.
// Multi-target queries reuse the same loop with a goal-set termination test,
// stopping as soon as the nearest target is expanded. An optional admissible
// heuristic turns the ordering into A*; nodes are re-expanded when a strictly
// cheaper route arrives, so the heuristic need not be consistent. Without a
// heuristic the search is plain Dijkstra. The solver only reads the snapshot,
// never mutates it.
package solver

import (
	"container/heap"
	"context"
	"fmt"

	"github.com/akorchak/pathfinder/internal/graph"
	"github.com/akorchak/pathfinder/internal/query"
)

// Solve computes the best path from q.Source to the nearest of q.Targets on
// snap. The query must be normalized. Cancellation is checked at every
// frontier expansion, so a timed-out solve stops promptly and leaves no
// shared state behind.
func Solve(ctx context.Context, snap *graph.Snapshot, q *query.Query, opts ...Option) (*query.Result, error) {
	var cfg Options
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(q.Targets) == 0 {
		return nil, ErrNoTargets
	}
	if !snap.HasNode(q.Source) {
		return nil, fmt.Errorf("%w: source %q", ErrNodeNotFound, q.Source)
	}

	goals := make(map[graph.NodeID]struct{}, len(q.Targets))
	for _, t := range q.Targets {
		if snap.HasNode(t) {
			goals[t] = struct{}{}
		}
	}
	if len(goals) == 0 {
		return nil, fmt.Errorf("%w: no target present in graph", ErrNodeNotFound)
	}

	// Source already in the goal set: zero-cost single-node path.
	if _, ok := goals[q.Source]; ok {
		return &query.Result{
			Path:         []graph.NodeID{q.Source},
			Cost:         0,
			Hops:         0,
			Target:       q.Source,
			GraphVersion: snap.Version(),
		}, nil
	}

	excludedNodes := make(map[graph.NodeID]struct{}, len(q.Constraints.ExcludeNodes))
	for _, id := range q.Constraints.ExcludeNodes {
		excludedNodes[id] = struct{}{}
	}
	excludedTypes := make(map[string]struct{}, len(q.Constraints.ExcludeEdgeTypes))
	for _, t := range q.Constraints.ExcludeEdgeTypes {
		excludedTypes[t] = struct{}{}
	}

	estimate := func(id graph.NodeID) float64 {
		if cfg.Heuristic == nil {
			return 0
		}
		from := snap.Node(id)
		best := -1.0
		for g := range goals {
			h := cfg.Heuristic(from, snap.Node(g))
			if best < 0 || h < best {
				best = h
			}
		}
		if best < 0 {
			return 0
		}
		return best
	}

	// Best cost at which each node has been expanded so far. Entries are
	// skipped only when not strictly cheaper: an admissible heuristic is not
	// necessarily consistent, so a cheaper route to an already-expanded node
	// can still arrive and must be re-expanded. With a nil heuristic no such
	// route exists and this degenerates to the usual settled-set skip.
	expanded := make(map[graph.NodeID]float64)
	pq := frontier{}
	heap.Init(&pq)
	heap.Push(&pq, &frontierItem{
		node:     q.Source,
		cost:     0,
		priority: estimate(q.Source),
		path:     []graph.NodeID{q.Source},
	})

	for pq.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("solve aborted: %w", err)
		}

		item := heap.Pop(&pq).(*frontierItem)
		if prev, done := expanded[item.node]; done && item.cost >= prev {
			continue // stale entry from lazy decrease-key
		}
		expanded[item.node] = item.cost

		if _, ok := goals[item.node]; ok {
			return &query.Result{
				Path:         item.path,
				Cost:         item.cost,
				Hops:         len(item.path) - 1,
				Target:       item.node,
				GraphVersion: snap.Version(),
			}, nil
		}

		for _, adj := range snap.Neighbors(item.node) {
			if _, skip := excludedNodes[adj.To]; skip {
				continue
			}
			if _, skip := excludedTypes[adj.Edge.Type]; skip {
				continue
			}
			w := adj.Edge.Weight
			if q.Weighting == query.WeightHops {
				w = 1
			}
			cost := item.cost + w
			if prev, done := expanded[adj.To]; done && cost >= prev {
				continue
			}
			hops := len(item.path) // path length after appending adj.To, minus one
			if q.Constraints.MaxHops > 0 && hops > q.Constraints.MaxHops {
				continue
			}
			if q.Constraints.MaxCost > 0 && cost > q.Constraints.MaxCost {
				continue
			}
			path := make([]graph.NodeID, len(item.path)+1)
			copy(path, item.path)
			path[len(item.path)] = adj.To
			heap.Push(&pq, &frontierItem{
				node:     adj.To,
				cost:     cost,
				priority: cost + estimate(adj.To),
				path:     path,
			})
		}
	}

	return nil, ErrNoPathFound
}
