package packed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heavypackets/varisat/lit"
)

func litsOf(vs ...int) []lit.Lit {
	out := make([]lit.Lit, len(vs))
	for i, v := range vs {
		out[i] = lit.FromDimacs(v)
	}
	return out
}

func TestInlineClauseLits(t *testing.T) {
	var buf LitBuffer
	cl := NewClauseLits(litsOf(1, -2, 3), &buf)

	assert.Equal(t, 3, cl.Len())
	assert.Equal(t, 0, cl.BufferUsed())
	assert.Equal(t, 0, buf.Len())
	assert.Equal(t, litsOf(1, -2, 3), cl.Slice(&buf))
}

func TestSpilledClauseLits(t *testing.T) {
	var buf LitBuffer
	lits := litsOf(1, -2, 3, 4, -5)
	cl := NewClauseLits(lits, &buf)

	assert.Equal(t, 5, cl.Len())
	assert.Equal(t, 5, cl.BufferUsed())
	assert.Equal(t, 5, buf.Len())
	assert.Equal(t, lits, cl.Slice(&buf))
}

func TestCompaction(t *testing.T) {
	var buf LitBuffer
	live := NewClauseLits(litsOf(1, 2, 3, 4), &buf)
	garbage := NewClauseLits(litsOf(5, 6, 7, 8, 9), &buf)
	_ = garbage

	buf.AddGarbage(garbage.BufferUsed())
	require.True(t, buf.NeedsCompaction())

	r := buf.BeginCompaction()
	live = r.Relocate(live)
	r.Finish()

	assert.Equal(t, 0, buf.GarbageSize)
	assert.Equal(t, 4, buf.Len())
	assert.Equal(t, litsOf(1, 2, 3, 4), live.Slice(&buf))
	assert.False(t, buf.NeedsCompaction())
}

func TestNeedsCompactionThreshold(t *testing.T) {
	var buf LitBuffer
	NewClauseLits(litsOf(1, 2, 3, 4, 5), &buf) // len 5

	buf.AddGarbage(2)
	assert.False(t, buf.NeedsCompaction()) // 2*2=4 <= 5

	buf.AddGarbage(1)
	assert.True(t, buf.NeedsCompaction()) // 3*2=6 > 5
}
