// Package graph holds the immutable, versioned graph snapshots that path
// queries run against. A Snapshot is never mutated after it is built;
// reloads build a fresh Snapshot and publish it with an atomic swap, so
// in-flight queries keep reading the version they started with.
package graph

// NodeID identifies a node in the graph.
type NodeID string

// Node carries the identity and optional attributes of a graph node.
type Node struct {
	ID   NodeID
	Name string // display name, may be empty
	Tag  string // category tag, may be empty
	Pos  *[2]float64
}

// Edge connects From to To with a non-negative weight. Type is an arbitrary
// label used for constraint filtering. Bidirectional edges are traversable
// in both directions; multiple edges between the same pair are allowed.
type Edge struct {
	From          NodeID
	To            NodeID
	Weight        float64
	Type          string
	Bidirectional bool
}

// Adjacency is one traversable hop out of a node. For a bidirectional edge
// the same *Edge appears in both endpoints' adjacency lists.
type Adjacency struct {
	Edge *Edge
	To   NodeID
}

// Snapshot is a fully-built graph state tagged with a version.
// All fields are read-only after construction.
type Snapshot struct {
	version   uint64
	nodes     map[NodeID]*Node
	adj       map[NodeID][]Adjacency
	edgeCount int
}

// Version returns the snapshot's monotonically increasing version tag.
func (s *Snapshot) Version() uint64 { return s.version }

// HasNode reports whether id exists in this snapshot.
func (s *Snapshot) HasNode(id NodeID) bool {
	_, ok := s.nodes[id]
	return ok
}

// Node returns the node for id, or nil if absent.
func (s *Snapshot) Node(id NodeID) *Node { return s.nodes[id] }

// Neighbors returns the ordered outgoing adjacencies of id.
// The result is nil for absent nodes and must not be modified.
func (s *Snapshot) Neighbors(id NodeID) []Adjacency { return s.adj[id] }

// NodeCount returns the number of nodes in the snapshot.
func (s *Snapshot) NodeCount() int { return len(s.nodes) }

// EdgeCount returns the number of edges in the definition this snapshot
// was built from (a bidirectional edge counts once).
func (s *Snapshot) EdgeCount() int { return s.edgeCount }
