package graph

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validDefinition() *Definition {
	return &Definition{
		Nodes: []NodeDef{
			{ID: "A"}, {ID: "B"}, {ID: "C"},
		},
		Edges: []EdgeDef{
			{From: "A", To: "B", Weight: 1, Type: "road"},
			{From: "B", To: "C", Weight: 1, Type: "road"},
			{From: "A", To: "C", Weight: 5, Type: "express"},
		},
	}
}

func TestStore_LoadValid(t *testing.T) {
	s := NewStore()
	snap, err := s.Load(validDefinition())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.Version() != 1 {
		t.Fatalf("expected version 1, got %d", snap.Version())
	}
	if snap.NodeCount() != 3 || snap.EdgeCount() != 3 {
		t.Fatalf("unexpected counts: %d nodes, %d edges", snap.NodeCount(), snap.EdgeCount())
	}
	if s.Current() != snap {
		t.Fatal("Current should return the loaded snapshot")
	}
}

func TestStore_LoadRejectsDuplicateNodeIDs(t *testing.T) {
	def := validDefinition()
	def.Nodes = append(def.Nodes, NodeDef{ID: "A"})
	if _, err := NewStore().Load(def); err == nil {
		t.Fatal("expected LoadError for duplicate node id")
	} else if !strings.Contains(err.Error(), `duplicate node id "A"`) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStore_LoadRejectsDanglingEdges(t *testing.T) {
	def := validDefinition()
	def.Edges = append(def.Edges, EdgeDef{From: "A", To: "ghost", Weight: 1})
	_, err := NewStore().Load(def)
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LoadError, got %v", err)
	}
	if !strings.Contains(le.Error(), `unknown node "ghost"`) {
		t.Fatalf("unexpected error: %v", le)
	}
}

func TestStore_LoadRejectsNegativeWeights(t *testing.T) {
	def := validDefinition()
	def.Edges[0].Weight = -2
	if _, err := NewStore().Load(def); err == nil {
		t.Fatal("expected LoadError for negative weight")
	} else if !strings.Contains(err.Error(), "negative weight") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStore_LoadCollectsAllProblems(t *testing.T) {
	def := &Definition{
		Nodes: []NodeDef{{ID: "A"}, {ID: "A"}},
		Edges: []EdgeDef{
			{From: "A", To: "missing", Weight: 1},
			{From: "A", To: "A", Weight: -1},
		},
	}
	_, err := NewStore().Load(def)
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LoadError, got %v", err)
	}
	if len(le.Problems) != 3 {
		t.Fatalf("expected 3 problems, got %d: %v", len(le.Problems), le.Problems)
	}
}

func TestStore_FailedReloadKeepsPreviousSnapshot(t *testing.T) {
	s := NewStore()
	snap, err := s.Load(validDefinition())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	bad := validDefinition()
	bad.Edges[0].Weight = -1
	if _, err := s.Load(bad); err == nil {
		t.Fatal("expected reload to fail")
	}
	if s.Current() != snap {
		t.Fatal("failed reload must keep the previous snapshot active")
	}
	if s.Current().Version() != 1 {
		t.Fatalf("failed reload must not consume a version, got %d", s.Current().Version())
	}

	// A subsequent good reload bumps the version.
	snap2, err := s.Load(validDefinition())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if snap2.Version() != 2 {
		t.Fatalf("expected version 2, got %d", snap2.Version())
	}
	// The old snapshot is untouched for readers that captured it.
	if snap.Version() != 1 || snap.NodeCount() != 3 {
		t.Fatal("old snapshot must remain intact after swap")
	}
}

func TestSnapshot_NeighborsDeterministicOrder(t *testing.T) {
	def := &Definition{
		Nodes: []NodeDef{{ID: "A"}, {ID: "B"}, {ID: "C"}},
		Edges: []EdgeDef{
			{From: "A", To: "C", Weight: 3, Type: "b"},
			{From: "A", To: "B", Weight: 1, Type: "z"},
			{From: "A", To: "C", Weight: 1, Type: "a"},
		},
	}
	snap, err := NewStore().Load(def)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	neighbors := snap.Neighbors("A")
	if len(neighbors) != 3 {
		t.Fatalf("expected 3 adjacencies, got %d", len(neighbors))
	}
	// Ordered by (to, type, weight).
	want := []struct {
		to NodeID
		ty string
	}{{"B", "z"}, {"C", "a"}, {"C", "b"}}
	for i, w := range want {
		if neighbors[i].To != w.to || neighbors[i].Edge.Type != w.ty {
			t.Fatalf("neighbors[%d] = (%s,%s), want (%s,%s)",
				i, neighbors[i].To, neighbors[i].Edge.Type, w.to, w.ty)
		}
	}
}

func TestSnapshot_BidirectionalEdges(t *testing.T) {
	def := &Definition{
		Nodes: []NodeDef{{ID: "A"}, {ID: "B"}},
		Edges: []EdgeDef{{From: "A", To: "B", Weight: 2, Bidirectional: true}},
	}
	snap, err := NewStore().Load(def)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := snap.Neighbors("B"); len(got) != 1 || got[0].To != "A" {
		t.Fatalf("expected reverse adjacency B→A, got %v", got)
	}
	if snap.EdgeCount() != 1 {
		t.Fatalf("bidirectional edge should count once, got %d", snap.EdgeCount())
	}
}

func TestSnapshot_AbsentNode(t *testing.T) {
	snap, err := NewStore().Load(validDefinition())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.HasNode("ghost") {
		t.Fatal("ghost should not exist")
	}
	if snap.Neighbors("ghost") != nil {
		t.Fatal("absent node must have nil neighbors")
	}
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.yaml")
	data := `
nodes:
  - id: A
  - id: B
edges:
  - from: A
    to: B
    weight: 1.5
    type: road
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	def, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(def.Nodes) != 2 || len(def.Edges) != 1 {
		t.Fatalf("unexpected definition: %+v", def)
	}
	if def.Edges[0].Weight != 1.5 {
		t.Fatalf("expected weight 1.5, got %v", def.Edges[0].Weight)
	}
}

func TestLoader_LoadMissingFile(t *testing.T) {
	if _, err := NewLoader("/nonexistent/graph.yaml").Load(); err == nil {
		t.Fatal("expected error for missing file")
	}
}
