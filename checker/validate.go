package checker

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/heavypackets/varisat/lit"
)

// Validate walks the clause store and unit table, checking every
// invariant from spec.md §3 it can verify from the outside, and
// returns a *multierror.Error aggregating every violation found (nil
// if none). It is debug/test tooling: no checking path calls it.
func (c *Checker) Validate() error {
	var result *multierror.Error

	for h, bucket := range c.store.buckets {
		for _, rec := range bucket {
			if rec.refCount == 0 {
				result = multierror.Append(result, fmt.Errorf(
					"clause %d in bucket %x has ref_count 0 but was not removed", rec.id, uint32(h)))
			}

			lits := c.store.Literals(rec)
			for i := 1; i < len(lits); i++ {
				if lits[i-1] >= lits[i] {
					result = multierror.Append(result, fmt.Errorf(
						"clause %d literals are not strictly increasing at index %d", rec.id, i))
					break
				}
			}

			if lit.HashLits(lits) != h {
				result = multierror.Append(result, fmt.Errorf(
					"clause %d stored under hash %x but hashes to %x", rec.id, uint32(h), uint32(lit.HashLits(lits))))
			}
		}
	}

	if len(c.units.trail) != 0 {
		result = multierror.Append(result, fmt.Errorf(
			"unit table trail has %d entries not unwound outside a RUP check", len(c.units.trail)))
	}

	for v, e := range c.units.entries {
		if e.set && e.source != sourceGlobal {
			result = multierror.Append(result, fmt.Errorf(
				"variable %d holds a transient unit entry outside a RUP check", v))
		}
	}

	return result.ErrorOrNil()
}
