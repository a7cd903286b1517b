package cache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akorchak/pathfinder/internal/graph"
	"github.com/akorchak/pathfinder/internal/query"
)

func result(cost float64) *query.Result {
	return &query.Result{Path: []graph.NodeID{"A", "B"}, Cost: cost, Hops: 1, Target: "B"}
}

func TestCache_GetAfterPut(t *testing.T) {
	c := New(10)
	c.Put("sig", 1, result(2))

	got, ok := c.Get("sig", 1)
	require.True(t, ok)
	assert.Equal(t, 2.0, got.Cost)

	_, ok = c.Get("other", 1)
	assert.False(t, ok)
}

func TestCache_VersionBumpIsMiss(t *testing.T) {
	c := New(10)
	c.Put("sig", 1, result(2))

	_, ok := c.Get("sig", 2)
	assert.False(t, ok, "entry from an older graph version must be a miss")
	assert.Equal(t, 0, c.Len(), "stale entry must be dropped lazily on access")

	// Re-populate under the new version.
	c.Put("sig", 2, result(3))
	got, ok := c.Get("sig", 2)
	require.True(t, ok)
	assert.Equal(t, 3.0, got.Cost)
}

func TestCache_LRUEviction(t *testing.T) {
	c := New(3)
	for i := 0; i < 3; i++ {
		c.Put(fmt.Sprintf("sig-%d", i), 1, result(float64(i)))
	}
	// Touch sig-0 so sig-1 becomes the eviction candidate.
	_, ok := c.Get("sig-0", 1)
	require.True(t, ok)

	c.Put("sig-3", 1, result(3))
	assert.Equal(t, 3, c.Len())

	_, ok = c.Get("sig-1", 1)
	assert.False(t, ok, "least recently used entry should have been evicted")
	for _, sig := range []string{"sig-0", "sig-2", "sig-3"} {
		_, ok := c.Get(sig, 1)
		assert.True(t, ok, "%s should survive", sig)
	}
}

func TestCache_PutRefreshesExisting(t *testing.T) {
	c := New(2)
	c.Put("sig", 1, result(1))
	c.Put("sig", 1, result(9))
	assert.Equal(t, 1, c.Len())
	got, ok := c.Get("sig", 1)
	require.True(t, ok)
	assert.Equal(t, 9.0, got.Cost)
}

func TestCache_Purge(t *testing.T) {
	c := New(10)
	c.Put("a", 1, result(1))
	c.Put("b", 1, result(2))
	c.Purge()
	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("a", 1)
	assert.False(t, ok)
}

func TestCache_Stats(t *testing.T) {
	c := New(10)
	c.Put("sig", 1, result(1))
	c.Get("sig", 1)
	c.Get("sig", 1)
	c.Get("missing", 1)
	hits, misses := c.Stats()
	assert.Equal(t, uint64(2), hits)
	assert.Equal(t, uint64(1), misses)
}

func TestCache_DefaultCapacity(t *testing.T) {
	c := New(0)
	for i := 0; i < DefaultCapacity+10; i++ {
		c.Put(fmt.Sprintf("sig-%d", i), 1, result(0))
	}
	assert.Equal(t, DefaultCapacity, c.Len())
}
