// Package collective defines the two collective operations the iteration
// engine needs from its substrate, a barrier and an all-gather, and a
// shared-memory implementation where every worker is a goroutine.
//
// An MPI implementation lives in the mpicomm subpackage.
package collective

import (
	"context"
	"errors"
)

var (
	// ErrBarrierBroken is returned by every pending and future wait once a
	// member abandoned the group, typically because its context ended.
	ErrBarrierBroken = errors.New("collective: barrier broken")

	// ErrBufferSize is returned when an all-gather buffer does not match the
	// group's block layout.
	ErrBufferSize = errors.New("collective: buffer size mismatch")
)

// Communicator is one worker's endpoint in a fixed group of Size workers.
//
// Every member must call Barrier and AllGather the same number of times and
// in the same order; a member that stops calling them stalls the group.
type Communicator interface {
	// Rank is the member's index in [0, Size).
	Rank() int
	// Size is the number of members.
	Size() int
	// Barrier blocks until every member has entered it.
	Barrier(ctx context.Context) error
	// AllGather contributes send, which must have the same length on every
	// member, and fills recv with every member's contribution in rank
	// order: rank r's block lands at recv[r*len(send):(r+1)*len(send)].
	AllGather(ctx context.Context, send, recv []float64) error
}

func checkGather(size int, send, recv []float64) error {
	if len(send) == 0 || len(recv) != size*len(send) {
		return ErrBufferSize
	}
	return nil
}
