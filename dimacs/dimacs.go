// Package dimacs implements an incremental parser for the DIMACS CNF
// text format. It is an external collaborator of the checker CORE
// (spec.md §6's "Input formula interface"): it only recognizes clause
// and header lines and forwards completed clauses to a callback,
// draining its own buffer after each batch.
package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/heavypackets/varisat/cnf"
	"github.com/heavypackets/varisat/lit"
)

// Parser incrementally reads DIMACS CNF text.
type Parser struct {
	varCount    int
	clauseCount int

	lits    []lit.Lit
	pending cnf.Formula
}

// NewParser returns a Parser ready to read from the start of a DIMACS
// stream.
func NewParser() *Parser { return &Parser{} }

// VarCount and ClauseCount report the header's declared counts, valid
// after ParseIncremental returns.
func (p *Parser) VarCount() int    { return p.varCount }
func (p *Parser) ClauseCount() int { return p.clauseCount }

// ParseIncremental reads a full DIMACS CNF stream from r, calling
// onBatch with each batch of completed clauses as they are parsed
// (here, once at the very end — DIMACS has no natural sub-file
// batching boundary, so the whole file is one batch) and draining its
// temporary buffer afterward. onBatch is typically checker.AddClause
// applied to each clause in the batch.
func (p *Parser) ParseIncremental(r io.Reader, onBatch func(cnf.Formula) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	sawHeader := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch line[0] {
		case 'c':
			continue
		case 'p':
			if err := p.parseHeader(line); err != nil {
				return err
			}
			sawHeader = true
		default:
			if err := p.parseClauseLine(line); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("dimacs: reading input: %w", err)
	}
	if !sawHeader {
		return fmt.Errorf("dimacs: missing 'p cnf' header")
	}

	if len(p.lits) != 0 {
		return fmt.Errorf("dimacs: clause not terminated by 0")
	}

	batch := p.pending
	p.pending = nil
	return onBatch(batch)
}

func (p *Parser) parseHeader(line string) error {
	fields := strings.Fields(line)
	if len(fields) != 4 || fields[0] != "p" || fields[1] != "cnf" {
		return fmt.Errorf("dimacs: malformed header %q", line)
	}
	vars, err := strconv.Atoi(fields[2])
	if err != nil {
		return fmt.Errorf("dimacs: malformed header %q: %w", line, err)
	}
	clauses, err := strconv.Atoi(fields[3])
	if err != nil {
		return fmt.Errorf("dimacs: malformed header %q: %w", line, err)
	}
	p.varCount = vars
	p.clauseCount = clauses
	return nil
}

func (p *Parser) parseClauseLine(line string) error {
	for _, field := range strings.Fields(line) {
		n, err := strconv.Atoi(field)
		if err != nil {
			return fmt.Errorf("dimacs: malformed literal %q: %w", field, err)
		}
		if n == 0 {
			clause := make(cnf.Clause, len(p.lits))
			copy(clause, p.lits)
			p.pending = append(p.pending, clause)
			p.lits = p.lits[:0]
			continue
		}
		p.lits = append(p.lits, lit.FromDimacs(n))
	}
	return nil
}
