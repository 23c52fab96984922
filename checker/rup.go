package checker

import "github.com/heavypackets/varisat/lit"

// traceItem is one entry of the implication graph built while checking
// a single RUP step: spec.md §3's Trace / TraceItem.
type traceItem struct {
	id         uint64
	edgesStart int
	edgesEnd   int
	unused     bool
}

// rupCheck implements spec.md §4.5: it attempts to derive ⊥ by
// simulating unit propagation on the formula together with the
// negated literals of lits, guided by propagationHashes. lits must be
// sorted and deduplicated.
//
// On success it returns nil and leaves c.trace / c.traceIDs describing
// the propagation chain (only populated when at least one processor is
// registered). On failure it returns a *CheckerError wrapping
// ErrClauseNotFound or ErrClauseCheckFailed. Either way the unit table
// is fully unwound before returning.
func (c *Checker) rupCheck(lits []lit.Lit, propagationHashes []lit.Hash) error {
	c.trace = c.trace[:0]
	c.traceEdges = c.traceEdges[:0]

	mark := c.units.Mark()
	defer c.units.Unwind(mark)

	for _, l := range lits {
		c.units.AssumeInClause(l)
	}

	unsatDerived := false

hashes:
	for _, h := range propagationHashes {
		bucket := c.store.LookupByHash(h)
		if len(bucket) == 0 {
			return errClauseNotFound(c.step, h)
		}

	candidates:
		for _, rec := range bucket {
			clauseLits := c.store.Literals(rec)

			unassignedCount := 0
			var unassignedLit lit.Lit
			edgeStart := len(c.traceEdges)

			for _, cl := range clauseLits {
				satisfied, entry, ok := c.units.Value(cl)
				if ok && satisfied {
					continue candidates
				}
				if ok {
					// falsified
					switch entry.source {
					case sourceGlobal:
						pos := len(c.trace)
						c.traceEdges = append(c.traceEdges, pos)
						c.trace = append(c.trace, traceItem{id: entry.globalID, unused: true})
						c.units.PromoteGlobalToTrace(cl, pos)
					case sourceTracePos:
						c.traceEdges = append(c.traceEdges, entry.tracePos)
					case sourceInClause:
						// contributes no edge
					}
					continue
				}
				unassignedCount++
				unassignedLit = cl
			}

			edgeRange := [2]int{edgeStart, len(c.traceEdges)}

			switch {
			case unassignedCount == 0:
				c.trace = append(c.trace, traceItem{id: rec.id, edgesStart: edgeRange[0], edgesEnd: edgeRange[1]})
				unsatDerived = true
				break hashes
			case unassignedCount == 1:
				pos := len(c.trace)
				c.trace = append(c.trace, traceItem{id: rec.id, edgesStart: edgeRange[0], edgesEnd: edgeRange[1], unused: true})
				c.units.Propagate(unassignedLit, pos)
			default:
				// ≥2 unassigned: skip, per spec.md §9's open question.
			}
		}
	}

	if unsatDerived && len(c.processors) > 0 {
		c.sweepUnused()
		c.traceIDs = c.traceIDs[:0]
		for _, item := range c.trace {
			c.traceIDs = append(c.traceIDs, item.id)
		}
	}

	if !unsatDerived {
		return errClauseCheckFailed(c.step, lits)
	}
	return nil
}

// sweepUnused performs the backward reachability sweep over
// trace_edges described in spec.md §4.5 step 3: starting from the
// conflict entry (the last one appended), mark every entry it
// transitively depends on as used.
func (c *Checker) sweepUnused() {
	for i := len(c.trace) - 1; i >= 0; i-- {
		if c.trace[i].unused {
			continue
		}
		for _, edge := range c.traceEdges[c.trace[i].edgesStart:c.trace[i].edgesEnd] {
			c.trace[edge].unused = false
		}
	}
}
