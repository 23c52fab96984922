// Package lit provides the encoded literal and variable types shared by
// every other package in this module, along with the clause fingerprint
// used to index the clause store.
package lit

import (
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Var is a variable index. Variables are numbered from 0.
type Var uint32

// Lit is a literal: a variable reference with a polarity, encoded as
// 2*var + (1 if negative else 0). The low bit is the polarity; the
// remaining bits are the variable index. Lit values are ordered the
// same way their encoding is ordered.
type Lit uint32

// FromDimacs builds a Lit from a DIMACS-style signed integer (e.g. the
// literal "-3" refers to variable 2, negated).
func FromDimacs(v int) Lit {
	if v == 0 {
		panic("lit: variable 0 is not a valid DIMACS literal")
	}
	neg := v < 0
	if neg {
		v = -v
	}
	return newLit(Var(v-1), neg)
}

func newLit(v Var, negative bool) Lit {
	code := uint32(v) << 1
	if negative {
		code |= 1
	}
	return Lit(code)
}

// Positive returns the positive literal of v.
func Positive(v Var) Lit { return newLit(v, false) }

// Negative returns the negative literal of v.
func Negative(v Var) Lit { return newLit(v, true) }

// Var returns the variable this literal refers to.
func (l Lit) Var() Var { return Var(l >> 1) }

// Index is an alias for Var cast to int, used to index slices keyed by
// variable (e.g. the unit-clause table).
func (l Lit) Index() int { return int(l.Var()) }

// IsNegative reports whether l is the negated form of its variable.
func (l Lit) IsNegative() bool { return l&1 != 0 }

// IsPositive reports whether l is the unnegated form of its variable.
func (l Lit) IsPositive() bool { return l&1 == 0 }

// Complement returns the negation of l.
func (l Lit) Complement() Lit { return l ^ 1 }

// Code returns the wire encoding used by the proof format and by
// FromDimacs/FromCode.
func (l Lit) Code() uint32 { return uint32(l) }

// FromCode decodes a wire-format literal code.
func FromCode(code uint32) Lit { return Lit(code) }

// ToDimacs returns the signed DIMACS representation of l.
func (l Lit) ToDimacs() int {
	v := int(l.Var()) + 1
	if l.IsNegative() {
		return -v
	}
	return v
}

// Hash is a fixed-width, deterministic clause fingerprint. Two clauses
// with equal literal sets always hash equal; hash equality does not
// imply literal equality; the checker resolves collisions by comparing
// the stored literals.
type Hash uint32

// SortUnique sorts lits in increasing encoded order and removes
// duplicates in place, returning the shortened slice. The spec
// requires every stored clause's literals to be strictly increasing.
func SortUnique(lits []Lit) []Lit {
	if len(lits) < 2 {
		return lits
	}
	sort.Slice(lits, func(i, j int) bool { return lits[i] < lits[j] })
	out := lits[:1]
	for _, l := range lits[1:] {
		if l != out[len(out)-1] {
			out = append(out, l)
		}
	}
	return out
}

// HashLits computes the clause fingerprint for a sorted, deduplicated
// literal slice. The hash is independent of process state: it is built
// on xxhash with a fixed seed of zero, so the solver and checker always
// agree regardless of which process computed it.
func HashLits(lits []Lit) Hash {
	d := xxhash.New()
	var buf [4]byte
	for _, l := range lits {
		code := l.Code()
		buf[0] = byte(code)
		buf[1] = byte(code >> 8)
		buf[2] = byte(code >> 16)
		buf[3] = byte(code >> 24)
		d.Write(buf[:])
	}
	return Hash(uint32(d.Sum64()))
}

// UnitAssertion pairs a unit-clause literal with the hash of the
// clause that propagates it, as carried by the binary proof format's
// "units" payload (spec.md §6).
type UnitAssertion struct {
	Lit  Lit
	Hash Hash
}

// Equal reports whether two sorted literal slices hold the same
// literals in the same order.
func Equal(a, b []Lit) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
