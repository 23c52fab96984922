package checker

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heavypackets/varisat/cnf"
	"github.com/heavypackets/varisat/dimacs"
	"github.com/heavypackets/varisat/lit"
	"github.com/heavypackets/varisat/proof"
)

// S6: builds a small UNSAT formula from DIMACS text, hand-derives a
// valid RUP proof for it (no solver exists in this module — §1 scopes
// that out), round-trips the proof through the binary wire format, and
// checks it end to end. The final emitted step must be the empty
// clause.
func TestEndToEndUnsat(t *testing.T) {
	dimacsText := strings.Join([]string{
		"p cnf 2 4",
		"1 2 0",
		"-1 2 0",
		"1 -2 0",
		"-1 -2 0",
		"",
	}, "\n")

	c := New()
	rec := &recordingProcessor{}
	c.AddProcessor(rec)

	p := dimacs.NewParser()
	require.NoError(t, p.ParseIncremental(strings.NewReader(dimacsText), func(f cnf.Formula) error {
		for _, cl := range f {
			if err := c.AddClause(cl); err != nil {
				return err
			}
		}
		return nil
	}))
	require.False(t, c.Unsat())

	hashOf := func(vs ...int) lit.Hash {
		lits := make([]lit.Lit, len(vs))
		for i, v := range vs {
			lits[i] = lit.FromDimacs(v)
		}
		return lit.HashLits(lit.SortUnique(lits))
	}

	steps := []proof.Step{
		{Kind: proof.KindAtClause, Clause: []lit.Lit{lit.FromDimacs(2)}, Hashes: []lit.Hash{hashOf(1, 2), hashOf(-1, 2)}},
		{Kind: proof.KindAtClause, Clause: []lit.Lit{lit.FromDimacs(-2)}, Hashes: []lit.Hash{hashOf(1, -2), hashOf(-1, -2)}},
	}

	var wire bytes.Buffer
	for _, s := range steps {
		require.NoError(t, proof.WriteStep(&wire, s))
	}

	r := bufio.NewReader(&wire)
	require.NoError(t, c.CheckProof(r))
	require.True(t, c.Unsat())

	last := rec.steps[len(rec.steps)-1]
	assert.Equal(t, StepAtClause, last.Kind)
	assert.Empty(t, last.Clause)
}
