package checker

import (
	"fmt"

	"github.com/heavypackets/varisat/lit"
)

// ErrorKind identifies which of spec.md §7's error kinds a CheckerError
// represents.
type ErrorKind int

const (
	// ErrProofIncomplete: the proof stream was exhausted before the
	// empty clause was derived.
	ErrProofIncomplete ErrorKind = iota
	// ErrIoError: the underlying reader failed for a reason other than
	// EOF at a step boundary.
	ErrIoError
	// ErrParseError: the proof bytes were malformed.
	ErrParseError
	// ErrInvalidDelete: a DeleteClause step named a clause that isn't
	// present, or named a unit/empty clause (deletion of those is
	// always rejected).
	ErrInvalidDelete
	// ErrClauseNotFound: a propagation hash named an empty or unknown
	// bucket.
	ErrClauseNotFound
	// ErrClauseCheckFailed: RUP did not derive a conflict.
	ErrClauseCheckFailed
	// ErrProofProcessorError: a registered ProofProcessor rejected a
	// step.
	ErrProofProcessorError
)

func (k ErrorKind) String() string {
	switch k {
	case ErrProofIncomplete:
		return "ProofIncomplete"
	case ErrIoError:
		return "IoError"
	case ErrParseError:
		return "ParseError"
	case ErrInvalidDelete:
		return "InvalidDelete"
	case ErrClauseNotFound:
		return "ClauseNotFound"
	case ErrClauseCheckFailed:
		return "ClauseCheckFailed"
	case ErrProofProcessorError:
		return "ProofProcessorError"
	default:
		return "Unknown"
	}
}

// CheckerError is the single error type returned by every fatal
// condition in this package. Every error kind described in spec.md §7
// is represented by a CheckerError value, distinguished by Kind.
type CheckerError struct {
	Step   uint64
	Kind   ErrorKind
	Clause []lit.Lit
	Hash   lit.Hash
	Cause  error
}

func (e *CheckerError) Error() string {
	switch e.Kind {
	case ErrProofIncomplete:
		return fmt.Sprintf("step %d: proof ended without deriving unsatisfiability", e.Step)
	case ErrIoError:
		return fmt.Sprintf("step %d: error reading proof: %v", e.Step, e.Cause)
	case ErrParseError:
		return fmt.Sprintf("step %d: could not parse proof step: %v", e.Step, e.Cause)
	case ErrInvalidDelete:
		return fmt.Sprintf("step %d: delete of unknown clause %v", e.Step, e.Clause)
	case ErrClauseNotFound:
		return fmt.Sprintf("step %d: no clause with hash %x found", e.Step, uint32(e.Hash))
	case ErrClauseCheckFailed:
		return fmt.Sprintf("step %d: checking proof for %v failed", e.Step, e.Clause)
	case ErrProofProcessorError:
		return fmt.Sprintf("error in proof processor: %v", e.Cause)
	default:
		return fmt.Sprintf("step %d: unknown checker error", e.Step)
	}
}

// Unwrap exposes the wrapped I/O, parse, or processor cause so callers
// can use errors.Is/errors.As against it.
func (e *CheckerError) Unwrap() error { return e.Cause }

func errProofIncomplete(step uint64) error {
	return &CheckerError{Step: step, Kind: ErrProofIncomplete}
}

func errIoError(step uint64, cause error) error {
	return &CheckerError{Step: step, Kind: ErrIoError, Cause: cause}
}

func errParseError(step uint64, cause error) error {
	return &CheckerError{Step: step, Kind: ErrParseError, Cause: cause}
}

func errInvalidDelete(step uint64, clause []lit.Lit) error {
	return &CheckerError{Step: step, Kind: ErrInvalidDelete, Clause: clause}
}

func errClauseNotFound(step uint64, h lit.Hash) error {
	return &CheckerError{Step: step, Kind: ErrClauseNotFound, Hash: h}
}

func errClauseCheckFailed(step uint64, clause []lit.Lit) error {
	return &CheckerError{Step: step, Kind: ErrClauseCheckFailed, Clause: clause}
}

func errProofProcessor(cause error) error {
	return &CheckerError{Kind: ErrProofProcessorError, Cause: cause}
}
