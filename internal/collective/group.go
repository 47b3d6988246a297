package collective

import (
	"context"
	"fmt"
)

// Group is a shared-memory collective group of a fixed size. Members are
// meant to run on separate goroutines; each one obtains its endpoint with
// Member.
type Group struct {
	size  int
	block int

	sync    *barrier
	gather  *barrier
	staging [2][]float64
}

// NewGroup creates a group of size members whose all-gather contributions
// are block values each.
func NewGroup(size, block int) *Group {
	if size < 1 || block < 1 {
		panic(fmt.Sprintf("collective: NewGroup(%d, %d): size and block must be >= 1", size, block))
	}
	g := &Group{
		size:   size,
		block:  block,
		sync:   newBarrier(size),
		gather: newBarrier(size),
	}
	for i := range g.staging {
		g.staging[i] = make([]float64, size*block)
	}
	return g
}

// Size returns the number of members.
func (g *Group) Size() int { return g.size }

// Member returns the endpoint of rank. Each rank must be used by exactly
// one goroutine.
func (g *Group) Member(rank int) *Member {
	if rank < 0 || rank >= g.size {
		panic(fmt.Sprintf("collective: rank %d out of range [0,%d)", rank, g.size))
	}
	return &Member{group: g, rank: rank}
}

// Abort breaks the group; every blocked and future call fails with
// ErrBarrierBroken.
func (g *Group) Abort(cause error) {
	g.sync.abandon(cause)
	g.gather.abandon(cause)
}

// Member is a Communicator bound to one rank of a Group.
type Member struct {
	group *Group
	rank  int
	round int
}

var _ Communicator = (*Member)(nil)

func (m *Member) Rank() int { return m.rank }

func (m *Member) Size() int { return m.group.size }

func (m *Member) Barrier(ctx context.Context) error {
	return m.group.sync.wait(ctx)
}

// AllGather writes the member's block into this round's staging buffer,
// waits for every member to do the same and copies the assembled buffer out.
// Consecutive rounds alternate between two staging buffers, so a member can
// only overwrite a buffer after everybody has passed the following
// rendezvous and therefore finished copying it.
func (m *Member) AllGather(ctx context.Context, send, recv []float64) error {
	g := m.group
	if len(send) != g.block {
		return fmt.Errorf("%w: send has %d values, want %d", ErrBufferSize, len(send), g.block)
	}
	if err := checkGather(g.size, send, recv); err != nil {
		return fmt.Errorf("%w: recv has %d values, want %d", err, len(recv), g.size*g.block)
	}

	stage := g.staging[m.round%2]
	m.round++
	copy(stage[m.rank*g.block:], send)
	if err := g.gather.wait(ctx); err != nil {
		return err
	}
	copy(recv, stage)
	return nil
}
