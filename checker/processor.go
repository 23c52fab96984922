package checker

import "github.com/heavypackets/varisat/lit"

// StepKind distinguishes the four CheckedProofStep variants described
// in spec.md §6.
type StepKind int

const (
	// StepAddClause: a (non-duplicate) clause of the input formula.
	StepAddClause StepKind = iota
	// StepDuplicatedClause: a clause of the input formula equal to one
	// already present; its id is burned and never reused.
	StepDuplicatedClause
	// StepAtClause: addition of a clause proven to be an asymmetric
	// tautology.
	StepAtClause
	// StepDeleteClause: removal of a clause whose ref_count reached
	// zero.
	StepDeleteClause
)

// CheckedProofStep is the value emitted to every registered
// ProofProcessor. Fields not meaningful for Kind are left zero (e.g.
// SameAsID is only set for StepDuplicatedClause, Propagations only for
// StepAtClause). The Clause and Propagations slices are only valid for
// the duration of the ProcessStep call; a processor that needs to keep
// them must copy.
type CheckedProofStep struct {
	Kind   StepKind
	ID     uint64
	Clause []lit.Lit

	// SameAsID is the id of the clause this duplicate matches.
	// Meaningful only for StepDuplicatedClause.
	SameAsID uint64

	// Propagations lists the clause ids that participated in this
	// AtClause's RUP check, in trace order, ending with the clause
	// that produced the conflict. Meaningful only for StepAtClause.
	Propagations []uint64
}
