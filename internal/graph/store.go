package graph

import (
	"sync"
	"sync/atomic"
)

// Store publishes graph snapshots. Reload is atomic: a new snapshot is fully
// built and validated before the pointer swap, so concurrent readers either
// see the old graph or the new one, never a partial state. Old snapshots stay
// valid for queries that captured them before the swap.
type Store struct {
	mu      sync.Mutex // serializes loads; reads never take it
	current atomic.Pointer[Snapshot]
	version uint64
}

// NewStore returns an empty Store. Current() returns nil until the first
// successful Load.
func NewStore() *Store {
	return &Store{}
}

// Load validates def, builds a snapshot with the next version, and publishes
// it. On failure the previously published snapshot remains active and the
// version counter is not consumed.
func (s *Store) Load(def *Definition) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := buildSnapshot(def, s.version+1)
	if err != nil {
		return nil, err
	}
	s.version++
	s.current.Store(snap)
	return snap, nil
}

// Current returns the latest published snapshot, or nil if nothing has been
// loaded yet.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}
