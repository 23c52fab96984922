package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heavypackets/varisat/lit"
)

func TestStoreAddFindDuplicate(t *testing.T) {
	s := NewStore()
	var nextID uint64
	alloc := func() uint64 { id := nextID; nextID++; return id }

	lits := litsOf(1, 2, 3, 4, 5) // spills into the buffer (>InlineLits)

	id1, added1 := s.Store(lits, alloc)
	require.True(t, added1)

	id2, added2 := s.Store(lits, alloc)
	require.False(t, added2)
	assert.Equal(t, id1, id2)
}

func TestStoreBalancedDeleteReclaimsBuffer(t *testing.T) {
	s := NewStore()
	var nextID uint64
	alloc := func() uint64 { id := nextID; nextID++; return id }

	clauses := [][]lit.Lit{
		litsOf(1, 2, 3, 4),
		litsOf(-1, 2, 3, 5),
		litsOf(1, -2, 3, 6),
	}

	for _, cl := range clauses {
		_, added := s.Store(cl, alloc)
		require.True(t, added)
	}

	for _, cl := range clauses {
		id, removed, found := s.Delete(cl)
		require.True(t, found)
		require.True(t, removed)
		_ = id
	}

	// Every clause was 4 literals (spilled), so deleting all of them
	// should eventually drive the buffer down to zero live bytes once
	// compaction has run (quantified property #1 / idempotence #5).
	assert.Equal(t, 0, s.NumBuckets())
	assert.Equal(t, 0, s.BufferLen())
	assert.Equal(t, 0, s.GarbageSize())
}

func TestStoreDeleteNotFound(t *testing.T) {
	s := NewStore()
	_, _, found := s.Delete(litsOf(1, 2, 3))
	assert.False(t, found)
}

func TestStoreGCIdempotent(t *testing.T) {
	s := NewStore()
	var nextID uint64
	alloc := func() uint64 { id := nextID; nextID++; return id }

	s.Store(litsOf(1, 2, 3, 4), alloc)
	s.Store(litsOf(-1, 2, 3, 5), alloc)
	s.Store(litsOf(1, -2, 3, 6), alloc)
	require.Equal(t, 12, s.BufferLen())

	// Deleting two of the three 4-literal clauses pushes
	// garbage_size*2 (16) past buffer.len() (12), so the second delete
	// triggers a compaction that leaves only the surviving clause's
	// literals live.
	_, _, found := s.Delete(litsOf(1, 2, 3, 4))
	require.True(t, found)
	_, _, found = s.Delete(litsOf(-1, 2, 3, 5))
	require.True(t, found)

	require.Equal(t, 0, s.GarbageSize())
	require.Equal(t, 4, s.BufferLen())

	// Running GC again with nothing new to reclaim must be a no-op.
	s.collectGarbageIfNeeded()
	assert.Equal(t, 0, s.GarbageSize())
	assert.Equal(t, 4, s.BufferLen())
}
