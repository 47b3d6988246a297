// Package partition splits the unknown-index space [0, n) of a linear system
// into contiguous blocks, one per worker.
//
// Every worker receives ceil(n/W) consecutive indices while indices remain.
// The last active worker takes the remainder and any worker past the end of
// the index space receives an empty range. Idle workers still take part in
// every collective operation; Block is the uniform contribution size they
// pad to.
package partition

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWorkers is returned when the worker count is not positive.
	ErrInvalidWorkers = errors.New("partition: worker count must be >= 1")

	// ErrInvalidSize is returned when the number of unknowns is not positive.
	ErrInvalidSize = errors.New("partition: problem size must be >= 1")
)

// Range is a half-open index interval [Lo, Hi).
type Range struct {
	Lo, Hi int
}

// Len returns the number of indices in r.
func (r Range) Len() int { return r.Hi - r.Lo }

// Empty reports whether r holds no index.
func (r Range) Empty() bool { return r.Hi <= r.Lo }

// Contains reports whether i lies in r.
func (r Range) Contains(i int) bool { return i >= r.Lo && i < r.Hi }

func (r Range) String() string { return fmt.Sprintf("[%d,%d)", r.Lo, r.Hi) }

// Table is the fixed assignment of unknowns to workers for one solve.
type Table struct {
	// N is the number of unknowns.
	N int
	// Block is ceil(N/Workers), the per-worker share and the padded size of
	// every worker's all-gather contribution.
	Block int
	// Ranges holds one entry per worker, indexed by rank.
	Ranges []Range
}

// New computes the partition table for workers ranks over n unknowns.
func New(workers, n int) (Table, error) {
	if workers < 1 {
		return Table{}, fmt.Errorf("%w: got %d", ErrInvalidWorkers, workers)
	}
	if n < 1 {
		return Table{}, fmt.Errorf("%w: got %d", ErrInvalidSize, n)
	}

	block := (n + workers - 1) / workers
	ranges := make([]Range, workers)
	for w := range ranges {
		lo := min(w*block, n)
		hi := min(lo+block, n)
		ranges[w] = Range{Lo: lo, Hi: hi}
	}

	return Table{N: n, Block: block, Ranges: ranges}, nil
}

// Workers returns the number of ranks in the table.
func (t Table) Workers() int { return len(t.Ranges) }

// Range returns the range owned by rank.
func (t Table) Range(rank int) Range { return t.Ranges[rank] }

// Active returns the number of workers with a non-empty range.
func (t Table) Active() int {
	active := 0
	for _, r := range t.Ranges {
		if !r.Empty() {
			active++
		}
	}
	return active
}

// Owner returns the rank whose range contains index i, or -1 when i is
// outside [0, N).
func (t Table) Owner(i int) int {
	if i < 0 || i >= t.N {
		return -1
	}
	return i / t.Block
}

// GatherLen is the length of an all-gather receive buffer for this table.
func (t Table) GatherLen() int { return t.Block * len(t.Ranges) }
