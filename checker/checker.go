// Package checker implements the CORE of an UNSAT proof checker: a
// clause store with a RUP (reverse unit propagation) verifier, driven
// by a stream of decoded proof steps and an input formula. See
// SPEC_FULL.md for the full design.
package checker

import (
	"github.com/hashicorp/go-hclog"

	"github.com/heavypackets/varisat/lit"
)

// ProofProcessor receives every checked step as it is produced. A
// processor runs synchronously within the step that invoked it and
// must not mutate the Checker. Returning an error aborts checking with
// ErrProofProcessorError.
type ProofProcessor interface {
	ProcessStep(step CheckedProofStep) error
}

// Checker verifies that a stream of proof steps establishes the
// unsatisfiability of an input CNF formula, emitting a checked step for
// each one to every registered ProofProcessor. It is single-threaded
// and sequential: no operation suspends, and there is no shared state
// across Checker instances.
type Checker struct {
	// Logger receives Debug-level tracing of added, duplicated, deleted
	// and AT/unit clauses. GC compaction runs and RUP trail activity are
	// not logged. Defaults to a no-op logger; set before driving the
	// checker to observe it.
	Logger hclog.Logger

	step         uint64
	nextClauseID uint64

	store *Store
	units *UnitTable

	unsat        bool
	unitConflict *[2]uint64

	trace      []traceItem
	traceEdges []int
	traceIDs   []uint64

	processors []ProofProcessor

	tmp []lit.Lit
}

// New returns an empty Checker, ready to accept an input formula and
// then a proof stream.
func New() *Checker {
	return &Checker{
		Logger: hclog.NewNullLogger(),
		store:  NewStore(),
		units:  NewUnitTable(),
	}
}

// AddProcessor registers a ProofProcessor. Must be called before any
// clause is added or any proof step is checked.
func (c *Checker) AddProcessor(p ProofProcessor) {
	c.processors = append(c.processors, p)
}

func (c *Checker) allocID() uint64 {
	id := c.nextClauseID
	c.nextClauseID++
	return id
}

// Unsat reports whether unsatisfiability has been established, either
// by an empty clause or a pair of conflicting global unit clauses.
func (c *Checker) Unsat() bool { return c.unsat }

// NextClauseID returns the id that will be assigned to the next newly
// stored clause.
func (c *Checker) NextClauseID() uint64 { return c.nextClauseID }

// AddClause adds one clause of the input formula. Once unsat has been
// established, further additions are silently ignored (spec.md §3
// Global flags). lits need not be sorted or deduplicated; AddClause
// normalizes its own copy and does not retain the caller's slice.
func (c *Checker) AddClause(lits []lit.Lit) error {
	if c.unsat {
		return nil
	}

	tmp := append(c.tmp[:0], lits...)
	tmp = lit.SortUnique(tmp)

	id, added := c.storeClause(tmp)
	c.tmp = tmp

	if added {
		c.Logger.Debug("add clause", "id", id, "lits", len(tmp))
		return c.emit(CheckedProofStep{
			Kind:   StepAddClause,
			ID:     id,
			Clause: append([]lit.Lit(nil), tmp...),
		})
	}

	// Allocated before emit, unlike checker.rs's post-emission increment;
	// the id a processor observes is the same either way since a
	// processor error aborts the run.
	duplicateID := c.allocID()
	c.Logger.Debug("duplicated clause", "id", duplicateID, "same_as", id)
	return c.emit(CheckedProofStep{
		Kind:     StepDuplicatedClause,
		ID:       duplicateID,
		SameAsID: id,
		Clause:   append([]lit.Lit(nil), tmp...),
	})
}

// storeClause implements spec.md §4.2's store operation, including the
// 0/1/≥2 literal special cases.
func (c *Checker) storeClause(lits []lit.Lit) (id uint64, added bool) {
	switch len(lits) {
	case 0:
		id = c.allocID()
		c.unsat = true
		return id, true
	case 1:
		return c.storeUnitClause(lits[0])
	default:
		return c.store.Store(lits, c.allocID)
	}
}

// storeUnitClause implements spec.md §4.4's store_unit operation.
func (c *Checker) storeUnitClause(l lit.Lit) (id uint64, added bool) {
	satisfied, _, ok := c.units.Value(l)
	if ok {
		globalID, isGlobal := c.units.GlobalID(l.Var())
		if !isGlobal {
			// Only Global entries should persist outside a RUP check;
			// reaching a transient entry here would be an internal
			// invariant violation.
			panic("checker: unit table holds a transient entry outside a RUP check")
		}
		if satisfied {
			return globalID, false
		}
		newID := c.allocID()
		c.unsat = true
		c.unitConflict = &[2]uint64{globalID, newID}
		return newID, true
	}

	id = c.allocID()
	c.units.SetGlobal(l, id)
	return id, true
}

// DeleteClause removes one occurrence of the clause identified by
// lits from the current formula. Deletion of a unit or empty clause,
// or of a clause not currently present, is rejected as InvalidDelete.
func (c *Checker) DeleteClause(lits []lit.Lit) error {
	tmp := append(c.tmp[:0], lits...)
	tmp = lit.SortUnique(tmp)
	c.tmp = tmp

	if len(tmp) < 2 {
		return errInvalidDelete(c.step, append([]lit.Lit(nil), tmp...))
	}

	id, removed, found := c.store.Delete(tmp)
	if !found {
		return errInvalidDelete(c.step, append([]lit.Lit(nil), tmp...))
	}
	if !removed {
		return nil
	}

	c.Logger.Debug("delete clause", "id", id)
	return c.emit(CheckedProofStep{
		Kind:   StepDeleteClause,
		ID:     id,
		Clause: append([]lit.Lit(nil), tmp...),
	})
}

// AtClause checks that lits is an asymmetric tautology of the current
// formula, justified by propagationHashes, then adds it.
func (c *Checker) AtClause(lits []lit.Lit, propagationHashes []lit.Hash) error {
	tmp := append(c.tmp[:0], lits...)
	tmp = lit.SortUnique(tmp)

	if err := c.rupCheck(tmp, propagationHashes); err != nil {
		c.tmp = tmp
		return err
	}

	id, added := c.storeClause(tmp)
	c.tmp = tmp

	if !added {
		return nil
	}

	c.Logger.Debug("at clause", "id", id, "propagations", len(c.traceIDs))
	return c.emit(CheckedProofStep{
		Kind:         StepAtClause,
		ID:           id,
		Clause:       append([]lit.Lit(nil), tmp...),
		Propagations: append([]uint64(nil), c.traceIDs...),
	})
}

// UnitClauses processes a batch of solver-asserted unit clauses, each
// justified by a single propagation hash.
func (c *Checker) UnitClauses(units []lit.UnitAssertion) error {
	for _, u := range units {
		clause := [1]lit.Lit{u.Lit}
		hashes := [1]lit.Hash{u.Hash}

		if err := c.rupCheck(clause[:], hashes[:]); err != nil {
			return err
		}

		id, added := c.storeUnitClause(u.Lit)
		if !added {
			continue
		}

		c.Logger.Debug("unit clause", "id", id)
		if err := c.emit(CheckedProofStep{
			Kind:         StepAtClause,
			ID:           id,
			Clause:       []lit.Lit{u.Lit},
			Propagations: append([]uint64(nil), c.traceIDs...),
		}); err != nil {
			return err
		}
	}
	return nil
}

// FinishProof must be called once the proof stream is exhausted. If
// unsat was never established it returns ErrProofIncomplete. If
// unsatisfiability came from a pair of conflicting unit clauses, it
// synthesizes and emits the empty-clause AtClause step downstream
// processors expect (spec.md §4.6).
func (c *Checker) FinishProof() error {
	if !c.unsat {
		return errProofIncomplete(c.step)
	}
	if c.unitConflict == nil {
		return nil
	}
	return c.emit(CheckedProofStep{
		Kind:         StepAtClause,
		ID:           c.nextClauseID,
		Clause:       nil,
		Propagations: []uint64{c.unitConflict[0], c.unitConflict[1]},
	})
}

// BeginStep advances the step counter. Callers driving a proof stream
// call this once per decoded step before dispatching it; step number 0
// is reserved for input-formula additions (spec.md §6).
func (c *Checker) BeginStep() uint64 {
	c.step++
	return c.step
}

// Step returns the current step number, for constructing errors that
// originate outside this package (e.g. a parse error from the proof
// decoder).
func (c *Checker) Step() uint64 { return c.step }

// WithStepError rewrites a bare I/O or parse error into a CheckerError
// carrying the current step number, for use by callers driving
// BeginStep/Step themselves around an external decoder.
func (c *Checker) WithStepError(kind ErrorKind, cause error) error {
	switch kind {
	case ErrIoError:
		return errIoError(c.step, cause)
	case ErrParseError:
		return errParseError(c.step, cause)
	default:
		return &CheckerError{Step: c.step, Kind: kind, Cause: cause}
	}
}

func (c *Checker) emit(step CheckedProofStep) error {
	for _, p := range c.processors {
		if err := p.ProcessStep(step); err != nil {
			return errProofProcessor(err)
		}
	}
	return nil
}
