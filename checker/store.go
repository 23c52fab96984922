package checker

import (
	"math"

	"github.com/heavypackets/varisat/lit"
	"github.com/heavypackets/varisat/packed"
)

// clauseRecord is a stored non-unit, non-empty clause: spec.md §3's
// "Clause record".
type clauseRecord struct {
	id       uint64
	refCount uint32
	lits     packed.ClauseLits
}

// Store is the hash index: a mapping from clause hash to the unordered
// bucket of clause records with that hash, plus the shared literal
// buffer those records' ClauseLits descriptors point into (spec.md §3
// "Clause index", §4.2, §4.3).
type Store struct {
	buckets map[lit.Hash][]clauseRecord
	buf     packed.LitBuffer
}

// NewStore returns an empty clause store.
func NewStore() *Store {
	return &Store{buckets: make(map[lit.Hash][]clauseRecord)}
}

func findRecord(bucket []clauseRecord, buf *packed.LitBuffer, lits []lit.Lit) int {
	for i := range bucket {
		if bucket[i].lits.Len() == len(lits) && lit.Equal(bucket[i].lits.Slice(buf), lits) {
			return i
		}
	}
	return -1
}

// Store records lits (≥2 literals, sorted and deduplicated) under a
// freshly allocated id, or increments the ref_count of the existing
// identical record if one is already present. Returns (id, added).
//
// allocID is called exactly once, only when a new record is actually
// created.
func (s *Store) Store(lits []lit.Lit, allocID func() uint64) (id uint64, added bool) {
	h := lit.HashLits(lits)
	bucket := s.buckets[h]

	if i := findRecord(bucket, &s.buf, lits); i >= 0 {
		if bucket[i].refCount == math.MaxUint32 {
			panic("checker: clause ref_count overflow")
		}
		bucket[i].refCount++
		return bucket[i].id, false
	}

	id = allocID()
	rec := clauseRecord{id: id, refCount: 1, lits: packed.NewClauseLits(lits, &s.buf)}
	s.buckets[h] = append(bucket, rec)
	return id, true
}

// Delete locates the record whose literals equal lits (≥2 literals)
// and decrements its ref_count. found is false if no matching record
// exists (an InvalidDelete condition the caller must report). When the
// ref_count reaches zero the record is removed and id/removed report
// that; otherwise removed is false and id is meaningless.
func (s *Store) Delete(lits []lit.Lit) (id uint64, removed bool, found bool) {
	h := lit.HashLits(lits)
	bucket, ok := s.buckets[h]
	if !ok {
		return 0, false, false
	}

	i := findRecord(bucket, &s.buf, lits)
	if i < 0 {
		return 0, false, false
	}

	bucket[i].refCount--

	if bucket[i].refCount == 0 {
		s.buf.AddGarbage(bucket[i].lits.BufferUsed())
		id = bucket[i].id
		bucket = append(bucket[:i:i], bucket[i+1:]...)
		removed = true
	}

	if len(bucket) == 0 {
		delete(s.buckets, h)
	} else {
		s.buckets[h] = bucket
	}

	s.collectGarbageIfNeeded()

	return id, removed, true
}

// LookupByHash returns the (possibly empty) bucket for h, for RUP
// candidate iteration. The returned slice aliases the store's internal
// state and must not be retained past the current step.
func (s *Store) LookupByHash(h lit.Hash) []clauseRecord {
	return s.buckets[h]
}

// Literals returns the literals of rec, reading through the store's
// shared buffer.
func (s *Store) Literals(rec clauseRecord) []lit.Lit {
	return rec.lits.Slice(&s.buf)
}

// collectGarbageIfNeeded compacts the literal buffer when wasted space
// exceeds the threshold in spec.md §4.3. Every stored clause is
// self-describing, so the hash index can be traversed in any order.
func (s *Store) collectGarbageIfNeeded() {
	if !s.buf.NeedsCompaction() {
		return
	}

	r := s.buf.BeginCompaction()
	for h, bucket := range s.buckets {
		for i := range bucket {
			bucket[i].lits = r.Relocate(bucket[i].lits)
		}
		s.buckets[h] = bucket
	}
	r.Finish()
}

// BufferLen and GarbageSize expose the literal buffer's bookkeeping
// for tests.
func (s *Store) BufferLen() int    { return s.buf.Len() }
func (s *Store) GarbageSize() int  { return s.buf.GarbageSize }
func (s *Store) NumBuckets() int   { return len(s.buckets) }
