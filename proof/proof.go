// Package proof implements the binary proof wire format described in
// spec.md §6: a sequence of varint-tagged steps produced by a SAT
// solver and consumed by a checker.Checker. It is an external
// collaborator of the checker CORE, not part of it — the decoder
// produced here never inspects clause or unit-table state, it only
// moves bytes.
package proof

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/heavypackets/varisat/lit"
)

const (
	tagAtClause     = 0
	tagUnitClauses  = 1
	tagDeleteClause = 2
)

// StepKind distinguishes the three wire-format step payloads.
type StepKind int

const (
	KindAtClause StepKind = iota
	KindUnitClauses
	KindDeleteClause
)

// Step is one decoded proof step. Only the fields relevant to Kind are
// populated.
type Step struct {
	Kind   StepKind
	Clause []lit.Lit           // AtClause, DeleteClause
	Hashes []lit.Hash          // AtClause
	Units  []lit.UnitAssertion // UnitClauses
}

// WriteStep encodes step in the format described by spec.md §6.
func WriteStep(w io.Writer, step Step) error {
	var buf [binary.MaxVarintLen64]byte

	switch step.Kind {
	case KindAtClause:
		if err := writeUvarint(w, buf[:], tagAtClause); err != nil {
			return err
		}
		if err := writeLiterals(w, buf[:], step.Clause); err != nil {
			return err
		}
		return writeHashes(w, buf[:], step.Hashes)

	case KindUnitClauses:
		if err := writeUvarint(w, buf[:], tagUnitClauses); err != nil {
			return err
		}
		return writeUnits(w, buf[:], step.Units)

	case KindDeleteClause:
		if err := writeUvarint(w, buf[:], tagDeleteClause); err != nil {
			return err
		}
		return writeLiterals(w, buf[:], step.Clause)

	default:
		return fmt.Errorf("proof: unknown step kind %d", step.Kind)
	}
}

// Parser decodes a sequence of Steps from a byte stream, reusing its
// internal buffers across calls the way the original varisat
// implementation does to avoid per-step allocation.
type Parser struct {
	lits   []lit.Lit
	hashes []lit.Hash
	units  []lit.UnitAssertion
}

// NewParser returns a Parser ready to decode from the start of a proof
// stream.
func NewParser() *Parser { return &Parser{} }

// ParseStep decodes one step from r. io.EOF is returned only when r is
// exhausted exactly at a step boundary (no bytes of the next step have
// been read); any other EOF is reported as io.ErrUnexpectedEOF via the
// underlying varint reader, which the caller should treat as proof
// corruption, not stream end.
//
// The Step's slices alias the Parser's internal buffers and are only
// valid until the next call to ParseStep.
func (p *Parser) ParseStep(r *bufio.Reader) (Step, error) {
	tag, err := readUvarintEOF(r)
	if err != nil {
		return Step{}, err
	}

	switch tag {
	case tagAtClause:
		if err := p.readLiterals(r); err != nil {
			return Step{}, err
		}
		if err := p.readHashes(r); err != nil {
			return Step{}, err
		}
		return Step{Kind: KindAtClause, Clause: p.lits, Hashes: p.hashes}, nil

	case tagUnitClauses:
		if err := p.readUnits(r); err != nil {
			return Step{}, err
		}
		return Step{Kind: KindUnitClauses, Units: p.units}, nil

	case tagDeleteClause:
		if err := p.readLiterals(r); err != nil {
			return Step{}, err
		}
		return Step{Kind: KindDeleteClause, Clause: p.lits}, nil

	default:
		return Step{}, fmt.Errorf("proof: malformed tag %d", tag)
	}
}
