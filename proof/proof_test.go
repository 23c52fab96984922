package proof

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heavypackets/varisat/lit"
)

func litsOf(vs ...int) []lit.Lit {
	out := make([]lit.Lit, len(vs))
	for i, v := range vs {
		out[i] = lit.FromDimacs(v)
	}
	return out
}

func roundTrip(t *testing.T, steps []Step) []Step {
	t.Helper()
	var buf bytes.Buffer
	for _, s := range steps {
		require.NoError(t, WriteStep(&buf, s))
	}

	p := NewParser()
	r := bufio.NewReader(&buf)

	var got []Step
	for i := 0; i < len(steps); i++ {
		s, err := p.ParseStep(r)
		require.NoError(t, err)
		got = append(got, Step{
			Kind:   s.Kind,
			Clause: append([]lit.Lit(nil), s.Clause...),
			Hashes: append([]lit.Hash(nil), s.Hashes...),
			Units:  append([]lit.UnitAssertion(nil), s.Units...),
		})
	}
	return got
}

func TestRoundTripAtClause(t *testing.T) {
	steps := []Step{
		{Kind: KindAtClause, Clause: litsOf(1, -2, 3), Hashes: []lit.Hash{7, 42}},
	}
	got := roundTrip(t, steps)
	assert.Equal(t, steps, got)
}

func TestRoundTripDeleteClause(t *testing.T) {
	steps := []Step{
		{Kind: KindDeleteClause, Clause: litsOf(1, 2)},
	}
	assert.Equal(t, steps, roundTrip(t, steps))
}

func TestRoundTripUnitClauses(t *testing.T) {
	steps := []Step{
		{Kind: KindUnitClauses, Units: []lit.UnitAssertion{
			{Lit: litsOf(1)[0], Hash: 99},
			{Lit: litsOf(-3)[0], Hash: 100},
		}},
	}
	assert.Equal(t, steps, roundTrip(t, steps))
}

func TestRoundTripMixedSequence(t *testing.T) {
	steps := []Step{
		{Kind: KindAtClause, Clause: litsOf(1, 2), Hashes: []lit.Hash{1}},
		{Kind: KindDeleteClause, Clause: litsOf(1, 2)},
		{Kind: KindUnitClauses, Units: []lit.UnitAssertion{{Lit: litsOf(5)[0], Hash: 3}}},
		{Kind: KindAtClause, Clause: nil, Hashes: nil},
	}
	assert.Equal(t, steps, roundTrip(t, steps))
}

func TestParseStepEOFAtBoundary(t *testing.T) {
	var buf bytes.Buffer
	r := bufio.NewReader(&buf)
	p := NewParser()

	_, err := p.ParseStep(r)
	require.Error(t, err)
}
