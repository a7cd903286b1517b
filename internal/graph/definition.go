package graph

import (
	"fmt"
	"sort"
	"strings"
)

// Definition is the YAML-decodable graph description accepted by Store.Load.
type Definition struct {
	Nodes []NodeDef `yaml:"nodes"`
	Edges []EdgeDef `yaml:"edges"`
}

// NodeDef declares a node. Pos is optional and only needed when a geometric
// heuristic is configured.
type NodeDef struct {
	ID   string      `yaml:"id"`
	Name string      `yaml:"name,omitempty"`
	Tag  string      `yaml:"tag,omitempty"`
	Pos  *[2]float64 `yaml:"pos,omitempty"`
}

// EdgeDef declares an edge. Bidirectional edges are traversable both ways.
type EdgeDef struct {
	From          string  `yaml:"from"`
	To            string  `yaml:"to"`
	Weight        float64 `yaml:"weight"`
	Type          string  `yaml:"type,omitempty"`
	Bidirectional bool    `yaml:"bidirectional,omitempty"`
}

// LoadError reports every problem found in a definition, not just the first.
// A failed load never replaces the active snapshot.
type LoadError struct {
	Problems []string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("graph definition errors:\n  - %s", strings.Join(e.Problems, "\n  - "))
}

// buildSnapshot validates def and constructs an immutable snapshot with the
// given version. Validation checks:
//   - Duplicate node IDs
//   - Empty node IDs / empty edge endpoints
//   - Edges referencing undeclared nodes
//   - Negative edge weights
func buildSnapshot(def *Definition, version uint64) (*Snapshot, error) {
	var problems []string

	nodes := make(map[NodeID]*Node, len(def.Nodes))
	for i, nd := range def.Nodes {
		if nd.ID == "" {
			problems = append(problems, fmt.Sprintf("nodes[%d]: id is required", i))
			continue
		}
		id := NodeID(nd.ID)
		if _, dup := nodes[id]; dup {
			problems = append(problems, fmt.Sprintf("duplicate node id %q", nd.ID))
			continue
		}
		nodes[id] = &Node{ID: id, Name: nd.Name, Tag: nd.Tag, Pos: nd.Pos}
	}

	adj := make(map[NodeID][]Adjacency, len(nodes))
	for i, ed := range def.Edges {
		if ed.From == "" || ed.To == "" {
			problems = append(problems, fmt.Sprintf("edges[%d]: from and to are required", i))
			continue
		}
		before := len(problems)
		from, to := NodeID(ed.From), NodeID(ed.To)
		if _, ok := nodes[from]; !ok {
			problems = append(problems, fmt.Sprintf("edges[%d]: unknown node %q", i, ed.From))
		}
		if _, ok := nodes[to]; !ok {
			problems = append(problems, fmt.Sprintf("edges[%d]: unknown node %q", i, ed.To))
		}
		if ed.Weight < 0 {
			problems = append(problems, fmt.Sprintf("edges[%d]: negative weight %v on %s→%s", i, ed.Weight, ed.From, ed.To))
		}
		if len(problems) > before {
			continue
		}
		e := &Edge{From: from, To: to, Weight: ed.Weight, Type: ed.Type, Bidirectional: ed.Bidirectional}
		adj[from] = append(adj[from], Adjacency{Edge: e, To: to})
		if ed.Bidirectional {
			adj[to] = append(adj[to], Adjacency{Edge: e, To: from})
		}
	}

	if len(problems) > 0 {
		return nil, &LoadError{Problems: problems}
	}

	// Deterministic neighbor order: the solver's tie-break rules only hold if
	// expansion order is stable across loads of the same definition.
	for id := range adj {
		list := adj[id]
		sort.SliceStable(list, func(a, b int) bool {
			if list[a].To != list[b].To {
				return list[a].To < list[b].To
			}
			if list[a].Edge.Type != list[b].Edge.Type {
				return list[a].Edge.Type < list[b].Edge.Type
			}
			return list[a].Edge.Weight < list[b].Edge.Weight
		})
	}

	return &Snapshot{
		version:   version,
		nodes:     nodes,
		adj:       adj,
		edgeCount: len(def.Edges),
	}, nil
}
