package checker

import (
	"bufio"
	"fmt"
	"io"

	"github.com/heavypackets/varisat/proof"
)

// CheckStep implements spec.md §4.6's decode-to-dispatch mapping: it
// routes one decoded proof.Step to the matching Checker operation.
// Callers driving their own proof stream (rather than using
// CheckProof) call BeginStep before decoding a step and CheckStep
// after.
func (c *Checker) CheckStep(step proof.Step) error {
	switch step.Kind {
	case proof.KindAtClause:
		return c.AtClause(step.Clause, step.Hashes)
	case proof.KindUnitClauses:
		return c.UnitClauses(step.Units)
	case proof.KindDeleteClause:
		return c.DeleteClause(step.Clause)
	default:
		return c.WithStepError(ErrParseError, fmt.Errorf("unknown step kind %d", step.Kind))
	}
}

// CheckProof reads and checks proof steps from r until unsat is
// established or r is exhausted, then calls FinishProof. It is the
// library counterpart of the original varisat binary's check_proof
// loop: decode a step, verify it, repeat.
func (c *Checker) CheckProof(r *bufio.Reader) error {
	parser := proof.NewParser()

	for !c.Unsat() {
		c.BeginStep()

		step, err := parser.ParseStep(r)
		if err != nil {
			if err == io.EOF {
				break
			}
			return c.WithStepError(ErrParseError, err)
		}

		if err := c.CheckStep(step); err != nil {
			return err
		}
	}

	return c.FinishProof()
}
