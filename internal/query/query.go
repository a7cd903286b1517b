// Package query defines the canonical input and output model for path
// queries: the query itself, its constraint set, the normalized signature
// used for caching and deduplication, and the result.
package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/akorchak/pathfinder/internal/graph"
)

// Weighting selects what the solver minimizes.
type Weighting string

const (
	// WeightCost minimizes the summed edge weight (default).
	WeightCost Weighting = "cost"
	// WeightHops minimizes the number of edges traversed.
	WeightHops Weighting = "hops"
)

// Constraints restricts the traversal. Zero values mean unbounded.
// References to nodes or edge types that do not exist in the graph are
// harmless: they simply exclude nothing.
type Constraints struct {
	ExcludeNodes     []graph.NodeID `json:"exclude_nodes,omitempty"`
	ExcludeEdgeTypes []string       `json:"exclude_edge_types,omitempty"`
	MaxHops          int            `json:"max_hops,omitempty"`
	MaxCost          float64        `json:"max_cost,omitempty"`
}

// Query asks for the best path from Source to the nearest of Targets.
// Requester identifies the caller for rate limiting only; it is not part
// of the signature.
type Query struct {
	Source      graph.NodeID   `json:"source"`
	Targets     []graph.NodeID `json:"targets"`
	Constraints Constraints    `json:"constraints"`
	Weighting   Weighting      `json:"weighting,omitempty"`
	Requester   string         `json:"requester,omitempty"`
}

// Result is a successful path. Target names which of the query's targets
// was reached. GraphVersion records the snapshot the path was computed on.
type Result struct {
	Path         []graph.NodeID `json:"path"`
	Cost         float64        `json:"cost"`
	Hops         int            `json:"hops"`
	Target       graph.NodeID   `json:"target"`
	GraphVersion uint64         `json:"graph_version"`
}

// Normalize sorts and dedupes targets and exclusions and defaults the
// weighting mode, so that semantically identical queries share a signature.
func (q *Query) Normalize() {
	q.Targets = dedupeNodes(q.Targets)
	q.Constraints.ExcludeNodes = dedupeNodes(q.Constraints.ExcludeNodes)
	q.Constraints.ExcludeEdgeTypes = dedupeStrings(q.Constraints.ExcludeEdgeTypes)
	if q.Weighting == "" {
		q.Weighting = WeightCost
	}
}

// Signature returns the canonical key for this query over all fields that
// affect the result. Callers must Normalize first. The requester is
// deliberately excluded: identical queries share cache entries and in-flight
// computations across requesters. Node IDs and edge types are opaque and may
// contain any byte, so every component is quoted to keep the separators
// unambiguous.
func (q *Query) Signature() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%q|", string(q.Source))
	writeNodes(&b, q.Targets)
	b.WriteByte('|')
	writeNodes(&b, q.Constraints.ExcludeNodes)
	b.WriteByte('|')
	for i, t := range q.Constraints.ExcludeEdgeTypes {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%q", t)
	}
	fmt.Fprintf(&b, "|h%d|c%g|%s", q.Constraints.MaxHops, q.Constraints.MaxCost, q.Weighting)
	return b.String()
}

func writeNodes(b *strings.Builder, ids []graph.NodeID) {
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(b, "%q", string(id))
	}
}

func dedupeNodes(ids []graph.NodeID) []graph.NodeID {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[graph.NodeID]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func dedupeStrings(ss []string) []string {
	if len(ss) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(ss))
	out := ss[:0]
	for _, s := range ss {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
