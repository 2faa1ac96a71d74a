// Package tt implements a concurrent transposition table for the search
// package, keyed by Zobrist hash.
package tt

import (
	"context"
	"fmt"
	"math/bits"
	"sync/atomic"

	"github.com/seekerror/logw"

	"github.com/nanakusa/shogo/pkg/eval"
	"github.com/nanakusa/shogo/pkg/shogi"
)

// Bound classifies the precision of a stored score relative to the search
// window that produced it.
type Bound uint8

const (
	ExactBound Bound = iota
	LowerBound
	UpperBound
)

func (b Bound) String() string {
	switch b {
	case ExactBound:
		return "Exact"
	case LowerBound:
		return "Lower"
	case UpperBound:
		return "Upper"
	default:
		return "?"
	}
}

// entry is a single search result. Stored behind an atomic pointer so a
// reader either sees the whole entry before an overwrite or the whole entry
// after -- never a torn mix of old and new fields.
type entry struct {
	hash  shogi.Hash
	score eval.Score
	move  shogi.Move
	bound Bound
	ply   uint16
	depth uint16
	age   uint8
}

// slotsPerBucket is the associativity: on a collision the table tries each
// slot in the bucket before falling back to replacing the least valuable.
const slotsPerBucket = 4

type bucket [slotsPerBucket]atomic.Pointer[entry]

// Table is a bucketed, concurrent transposition table. Replacement
// within a bucket prefers the empty slot, then the slot with the lowest
// (depth, age) value, so deep, recent entries survive shallow or stale ones.
// Safe for concurrent Probe/Store from multiple searching goroutines (the
// intended use under the YBWC parallel search).
type Table struct {
	buckets []bucket
	mask    uint64
	age     atomic.Uint32
	used    atomic.Uint64
}

// New allocates a table sized (in bytes) to roughly sizeBytes, rounded down
// to a power-of-two number of buckets.
func New(ctx context.Context, sizeBytes uint64) *Table {
	const bucketSize = uint64(slotsPerBucket) * 32 // entry plus pointer overhead, approx
	n := uint64(1)
	if sizeBytes > bucketSize {
		n = uint64(1) << (63 - bits.LeadingZeros64(sizeBytes/bucketSize))
	}
	logw.Infof(ctx, "Allocating %vMB transposition table with %v buckets x %v slots", sizeBytes>>20, n, slotsPerBucket)

	return &Table{
		buckets: make([]bucket, n),
		mask:    n - 1,
	}
}

// NewGeneration marks a new search generation: entries written in earlier
// generations become progressively less valuable to keep, without being
// actively cleared.
func (t *Table) NewGeneration() {
	t.age.Add(1)
}

// Clear drops all entries, e.g. at the start of a new game.
func (t *Table) Clear() {
	for i := range t.buckets {
		for s := range t.buckets[i] {
			t.buckets[i][s].Store(nil)
		}
	}
	t.used.Store(0)
	t.age.Store(0)
}

// Probe looks up hash, returning the stored bound, depth, score, move and
// whether an entry was found.
func (t *Table) Probe(hash shogi.Hash) (Bound, int, eval.Score, shogi.Move, bool) {
	if t == nil {
		return ExactBound, 0, eval.Zero, shogi.Move{}, false // no table: always a miss
	}
	b := &t.buckets[uint64(hash)&t.mask]
	for s := range b {
		e := b[s].Load()
		if e != nil && e.hash == hash {
			return e.bound, int(e.depth), e.score, e.move, true
		}
	}
	return ExactBound, 0, eval.Zero, shogi.Move{}, false
}

// Store writes a result into the table, subject to the bucket's replacement
// policy. ply is the root-relative ply the entry was produced at (used to
// translate mate scores); depth is the remaining search depth at this node.
func (t *Table) Store(hash shogi.Hash, bound Bound, ply, depth int, score eval.Score, move shogi.Move) {
	if t == nil {
		return // no table: nothing is kept
	}
	age := uint8(t.age.Load())
	fresh := &entry{
		hash:  hash,
		score: score,
		move:  move,
		bound: bound,
		ply:   uint16(ply),
		depth: uint16(depth),
		age:   age,
	}

	b := &t.buckets[uint64(hash)&t.mask]

	// Prefer to refresh an existing entry for the same position.
	for s := range b {
		if e := b[s].Load(); e != nil && e.hash == hash {
			if replacementValue(e, age) > replacementValue(fresh, age) {
				return
			}
			b[s].Store(fresh)
			return
		}
	}

	worst := 0
	worstVal := int(^uint(0) >> 1)
	for s := range b {
		e := b[s].Load()
		if e == nil {
			b[s].Store(fresh)
			t.used.Add(1)
			return
		}
		if v := replacementValue(e, age); v < worstVal {
			worstVal = v
			worst = s
		}
	}
	b[worst].Store(fresh)
}

// replacementValue scores an existing entry: deeper searches and more
// recent generations are worth more, so a shallow stale entry is evicted
// before a deep fresh one.
func replacementValue(e *entry, currentAge uint8) int {
	staleness := int(currentAge - e.age) // wraps harmlessly; differences stay small in practice
	return int(e.depth)*4 - staleness*8
}

func (t *Table) Size() uint64 {
	return uint64(len(t.buckets)) * slotsPerBucket * 32
}

func (t *Table) Used() float64 {
	total := uint64(len(t.buckets)) * slotsPerBucket
	if total == 0 {
		return 0
	}
	return float64(t.used.Load()) / float64(total)
}

func (t *Table) String() string {
	return fmt.Sprintf("TT[%vMB @ %v%%]", t.Size()>>20, int(100*t.Used()))
}
