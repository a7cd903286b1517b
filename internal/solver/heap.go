package solver

import "github.com/akorchak/pathfinder/internal/graph"

// frontierItem is one candidate path on the search frontier. Items carry
// their full node sequence so the heap order over equal-cost paths is total:
// (priority, hops, lexicographic node sequence). The first settlement of a
// node is therefore the canonical minimum, which makes results reproducible.
type frontierItem struct {
	node     graph.NodeID
	cost     float64 // accumulated cost from the source
	priority float64 // cost plus heuristic estimate (equal to cost for Dijkstra)
	path     []graph.NodeID
}

type frontier []*frontierItem

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].priority != f[j].priority {
		return f[i].priority < f[j].priority
	}
	if len(f[i].path) != len(f[j].path) {
		return len(f[i].path) < len(f[j].path)
	}
	return lessPath(f[i].path, f[j].path)
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(*frontierItem)) }

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return item
}

func lessPath(a, b []graph.NodeID) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
