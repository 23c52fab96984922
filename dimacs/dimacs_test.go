package dimacs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heavypackets/varisat/cnf"
	"github.com/heavypackets/varisat/lit"
)

func litsOf(vs ...int) []lit.Lit {
	out := make([]lit.Lit, len(vs))
	for i, v := range vs {
		out[i] = lit.FromDimacs(v)
	}
	return out
}

func TestParseIncrementalBasic(t *testing.T) {
	input := strings.Join([]string{
		"c a comment line",
		"p cnf 3 2",
		"1 -2 3 0",
		"-1 2 0",
		"",
	}, "\n")

	p := NewParser()
	var got cnf.Formula
	err := p.ParseIncremental(strings.NewReader(input), func(f cnf.Formula) error {
		got = append(got, f...)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 3, p.VarCount())
	assert.Equal(t, 2, p.ClauseCount())
	require.Len(t, got, 2)
	assert.Equal(t, cnf.Clause(litsOf(1, -2, 3)), got[0])
	assert.Equal(t, cnf.Clause(litsOf(-1, 2)), got[1])
}

func TestParseIncrementalMultilineClause(t *testing.T) {
	input := "p cnf 2 1\n1\n-2\n0\n"

	p := NewParser()
	var got cnf.Formula
	err := p.ParseIncremental(strings.NewReader(input), func(f cnf.Formula) error {
		got = append(got, f...)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, cnf.Clause(litsOf(1, -2)), got[0])
}

func TestParseIncrementalMissingHeader(t *testing.T) {
	p := NewParser()
	err := p.ParseIncremental(strings.NewReader("1 2 0\n"), func(cnf.Formula) error { return nil })
	assert.Error(t, err)
}

func TestParseIncrementalUnterminatedClause(t *testing.T) {
	p := NewParser()
	err := p.ParseIncremental(strings.NewReader("p cnf 2 1\n1 2\n"), func(cnf.Formula) error { return nil })
	assert.Error(t, err)
}
