package checker

import "github.com/heavypackets/varisat/lit"

// unitSource identifies what forced a unitEntry's value, per spec.md
// §3's unit-clause table: Global entries come from a real clause in
// the formula and persist across RUP checks; TracePos and InClause
// entries are transient, scoped to the RUP check currently in
// progress, and undone via the trail.
type unitSource uint8

const (
	sourceGlobal unitSource = iota
	sourceTracePos
	sourceInClause
)

// unitEntry is one variable's forced assignment, if any. value records
// whether the variable's *positive* literal holds; a literal l is
// satisfied when value != l.IsNegative().
type unitEntry struct {
	set      bool
	value    bool
	source   unitSource
	globalID uint64
	tracePos int
}

type trailRecord struct {
	v    lit.Var
	prev unitEntry
}

// UnitTable maps each variable index to its forced value, auto-growing
// to cover any variable index referenced. Outside a RUP check every
// entry is either empty or Global, and the trail is empty (spec.md §3
// invariant 4).
type UnitTable struct {
	entries []unitEntry
	trail   []trailRecord
}

// NewUnitTable returns an empty unit-clause table.
func NewUnitTable() *UnitTable {
	return &UnitTable{}
}

func (t *UnitTable) ensure(v lit.Var) {
	if int(v) >= len(t.entries) {
		grown := make([]unitEntry, v+1)
		copy(grown, t.entries)
		t.entries = grown
	}
}

// Value reports whether l currently evaluates satisfied, and the entry
// that forced its variable. ok is false when the variable is
// unassigned.
func (t *UnitTable) Value(l lit.Lit) (satisfied bool, e unitEntry, ok bool) {
	idx := l.Index()
	if idx >= len(t.entries) || !t.entries[idx].set {
		return false, unitEntry{}, false
	}
	e = t.entries[idx]
	return e.value != l.IsNegative(), e, true
}

// GlobalID returns the id of the Global clause that forced variable v,
// if any entry exists and its source is Global.
func (t *UnitTable) GlobalID(v lit.Var) (id uint64, ok bool) {
	if int(v) >= len(t.entries) || !t.entries[v].set || t.entries[v].source != sourceGlobal {
		return 0, false
	}
	return t.entries[v].globalID, true
}

func (t *UnitTable) push(v lit.Var) {
	t.ensure(v)
	t.trail = append(t.trail, trailRecord{v: v, prev: t.entries[v]})
}

// SetGlobal permanently forces l true, sourced from the real clause
// with the given id. Global assignments are not pushed to the trail:
// they persist across RUP checks.
func (t *UnitTable) SetGlobal(l lit.Lit, id uint64) {
	t.ensure(l.Var())
	t.entries[l.Index()] = unitEntry{set: true, value: l.IsPositive(), source: sourceGlobal, globalID: id}
}

// AssumeInClause pushes the current entry for l's variable onto the
// trail, then transiently forces ¬l true with source InClause. Used
// for each literal of the candidate clause at the start of a RUP
// check (spec.md §4.5 step 1).
func (t *UnitTable) AssumeInClause(l lit.Lit) {
	t.push(l.Var())
	t.entries[l.Index()] = unitEntry{set: true, value: l.IsNegative(), source: sourceInClause}
}

// PromoteGlobalToTrace re-records an already-Global, already-falsified
// literal l under a fresh trace position, without changing its logical
// value, so later propagations in this RUP check can cite it as a
// dependency edge (spec.md §4.5 step 2.b, Global case).
func (t *UnitTable) PromoteGlobalToTrace(l lit.Lit, tracePos int) {
	t.push(l.Var())
	t.entries[l.Index()] = unitEntry{set: true, value: l.IsNegative(), source: sourceTracePos, tracePos: tracePos}
}

// Propagate transiently forces the previously-unassigned literal l
// true, sourced from the trace entry at tracePos (spec.md §4.5 step
// 2.b, single-unassigned-literal case).
func (t *UnitTable) Propagate(l lit.Lit, tracePos int) {
	t.push(l.Var())
	t.entries[l.Index()] = unitEntry{set: true, value: l.IsPositive(), source: sourceTracePos, tracePos: tracePos}
}

// Mark returns the current trail length, to later Unwind back to.
func (t *UnitTable) Mark() int { return len(t.trail) }

// Unwind restores every trail entry pushed since mark, in reverse
// order, leaving the table byte-identical to its state at mark (spec.md
// §3 invariant 5).
func (t *UnitTable) Unwind(mark int) {
	for i := len(t.trail) - 1; i >= mark; i-- {
		r := t.trail[i]
		t.entries[r.v] = r.prev
	}
	t.trail = t.trail[:mark]
}
