package collective

import (
	"context"
	"fmt"
	"sync"
)

// barrier is a reusable generation barrier for a fixed number of parties.
// It breaks permanently when a waiter's context ends, releasing everybody.
type barrier struct {
	parties int

	mu      sync.Mutex
	arrived int
	release chan struct{} // closed when the current generation completes
	broken  chan struct{} // closed once when the barrier breaks
	err     error
}

func newBarrier(parties int) *barrier {
	return &barrier{
		parties: parties,
		release: make(chan struct{}),
		broken:  make(chan struct{}),
	}
}

func (b *barrier) wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return b.abandon(err)
	}
	b.mu.Lock()
	if b.err != nil {
		err := b.err
		b.mu.Unlock()
		return err
	}
	release := b.release
	b.arrived++
	if b.arrived == b.parties {
		b.arrived = 0
		b.release = make(chan struct{})
		close(release)
		b.mu.Unlock()
		return nil
	}
	b.mu.Unlock()

	select {
	case <-release:
		return nil
	case <-b.broken:
		b.mu.Lock()
		defer b.mu.Unlock()
		return b.err
	case <-ctx.Done():
		select {
		case <-release:
			return nil
		default:
		}
		return b.abandon(ctx.Err())
	}
}

func (b *barrier) abandon(cause error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err == nil {
		b.err = fmt.Errorf("%w: %w", ErrBarrierBroken, cause)
		close(b.broken)
	}
	return b.err
}
