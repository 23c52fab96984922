// Package cnf holds the clause and formula container types shared by
// the dimacs parser and the checker.
package cnf

import "github.com/heavypackets/varisat/lit"

// Clause is an unsorted, possibly duplicate-laden disjunction of
// literals as read from an input source. Callers that need the sorted,
// deduplicated form the checker requires should call Normalize.
type Clause []lit.Lit

// Formula is an ordered sequence of clauses, e.g. a full DIMACS input.
type Formula []Clause

// Normalize returns c sorted in increasing literal order with
// duplicates removed. c's backing array is reused; callers that need
// to retain the original order/contents should copy first.
func (c Clause) Normalize() Clause {
	return Clause(lit.SortUnique([]lit.Lit(c)))
}
