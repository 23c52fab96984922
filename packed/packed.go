// Package packed implements the small-literal-optimized clause
// representation: clauses with few literals are stored inline in their
// record, longer clauses are stored as an offset/length into a shared,
// append-only literal buffer that the checker compacts during garbage
// collection.
package packed

import "github.com/heavypackets/varisat/lit"

// InlineLits is the maximum number of literals stored inline in a
// ClauseLits value before it spills into a LitBuffer. Matches
// INLINE_LITS in the original checker.
const InlineLits = 3

// ClauseLits holds the literals of one clause, either inline or as a
// descriptor into a LitBuffer. The zero value represents an empty
// clause.
type ClauseLits struct {
	length uint32
	inline [InlineLits]lit.Lit
	offset uint32 // valid only when length > InlineLits
}

// NewClauseLits stores lits, spilling into buf if lits has more than
// InlineLits elements. lits is not retained.
func NewClauseLits(lits []lit.Lit, buf *LitBuffer) ClauseLits {
	cl := ClauseLits{length: uint32(len(lits))}
	if len(lits) > InlineLits {
		cl.offset = uint32(len(buf.data))
		buf.data = append(buf.data, lits...)
	} else {
		copy(cl.inline[:], lits)
	}
	return cl
}

// Slice returns the literals described by cl, reading from buf when
// the clause spilled. The returned slice aliases buf's backing array
// and is invalidated by the next compaction.
func (cl ClauseLits) Slice(buf *LitBuffer) []lit.Lit {
	if cl.length > InlineLits {
		return buf.data[cl.offset:][:cl.length]
	}
	return cl.inline[:cl.length]
}

// Len returns the number of literals in the clause.
func (cl ClauseLits) Len() int { return int(cl.length) }

// BufferUsed returns how many literals of buf belong to cl: zero for
// inline clauses, cl.Len() for spilled ones. Used to track garbage
// during deletion.
func (cl ClauseLits) BufferUsed() int {
	if cl.length > InlineLits {
		return int(cl.length)
	}
	return 0
}

// LitBuffer is the shared append-only literal arena backing spilled
// ClauseLits values.
type LitBuffer struct {
	data        []lit.Lit
	GarbageSize int
}

// Len returns the total number of literals currently allocated in the
// buffer, live or garbage.
func (b *LitBuffer) Len() int { return len(b.data) }

// AddGarbage records n literals of a removed or relocated clause as
// reclaimable.
func (b *LitBuffer) AddGarbage(n int) { b.GarbageSize += n }

// NeedsCompaction reports whether accumulated garbage outweighs live
// data badly enough to justify a compaction pass, per spec.md §4.3:
// garbage_size*2 > buffer.len().
func (b *LitBuffer) NeedsCompaction() bool {
	return b.GarbageSize*2 > len(b.data)
}

// Relocator copies clause literals from the old buffer into a fresh
// one, handed out by BeginCompaction.
type Relocator struct {
	old *LitBuffer
	new LitBuffer
}

// BeginCompaction starts a compaction pass: the caller walks every
// live clause, calling Relocate for each one, then calls Finish to
// install the new buffer and zero GarbageSize.
func (b *LitBuffer) BeginCompaction() *Relocator {
	return &Relocator{old: b, new: LitBuffer{data: make([]lit.Lit, 0, len(b.data))}}
}

// Relocate rewrites cl's literals into the relocator's new buffer,
// returning the updated ClauseLits. Inline clauses pass through
// unchanged.
func (r *Relocator) Relocate(cl ClauseLits) ClauseLits {
	return NewClauseLits(cl.Slice(r.old), &r.new)
}

// Finish installs the relocated buffer as the live buffer and resets
// GarbageSize to zero.
func (r *Relocator) Finish() {
	*r.old = r.new
	r.old.GarbageSize = 0
}
