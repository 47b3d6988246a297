package collective_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"gauss-seidel/internal/collective"
)

func TestGroupAllGatherAssemblesInRankOrder(t *testing.T) {
	t.Parallel()

	const size, block, rounds = 4, 3, 25
	g := collective.NewGroup(size, block)
	results := make([][][]float64, size)

	eg, ctx := errgroup.WithContext(context.Background())
	for rank := 0; rank < size; rank++ {
		m := g.Member(rank)
		eg.Go(func() error {
			recv := make([]float64, size*block)
			for r := 0; r < rounds; r++ {
				send := make([]float64, block)
				for i := range send {
					send[i] = float64(r*1000 + m.Rank()*10 + i)
				}
				if err := m.Barrier(ctx); err != nil {
					return err
				}
				if err := m.AllGather(ctx, send, recv); err != nil {
					return err
				}
				results[m.Rank()] = append(results[m.Rank()], append([]float64(nil), recv...))
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())

	for r := 0; r < rounds; r++ {
		want := make([]float64, 0, size*block)
		for rank := 0; rank < size; rank++ {
			for i := 0; i < block; i++ {
				want = append(want, float64(r*1000+rank*10+i))
			}
		}
		for rank := 0; rank < size; rank++ {
			require.Equal(t, want, results[rank][r], "rank %d round %d", rank, r)
		}
	}
}

// TestGroupBarrierHoldsUntilAllArrive checks that no member leaves a
// barrier generation before the last one enters it.
func TestGroupBarrierHoldsUntilAllArrive(t *testing.T) {
	t.Parallel()

	const size, rounds = 6, 50
	g := collective.NewGroup(size, 1)
	var arrived atomic.Int64

	var wg sync.WaitGroup
	errs := make(chan error, size)
	for rank := 0; rank < size; rank++ {
		m := g.Member(rank)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := 1; r <= rounds; r++ {
				arrived.Add(1)
				if err := m.Barrier(context.Background()); err != nil {
					errs <- err
					return
				}
				if got := arrived.Load(); got < int64(r*size) {
					errs <- errors.New("left barrier early")
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}

func TestGroupBreaksOnCancel(t *testing.T) {
	t.Parallel()

	g := collective.NewGroup(3, 1)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 2)
	for rank := 0; rank < 2; rank++ {
		m := g.Member(rank)
		go func() { done <- m.Barrier(ctx) }()
	}

	time.Sleep(10 * time.Millisecond)
	cancel()
	for i := 0; i < 2; i++ {
		require.ErrorIs(t, <-done, collective.ErrBarrierBroken)
	}

	// the straggler finds the barrier broken instead of blocking forever
	err := g.Member(2).Barrier(context.Background())
	require.ErrorIs(t, err, collective.ErrBarrierBroken)
}

func TestGroupAbort(t *testing.T) {
	t.Parallel()

	g := collective.NewGroup(2, 1)
	done := make(chan error, 1)
	go func() {
		done <- g.Member(0).AllGather(context.Background(), []float64{1}, make([]float64, 2))
	}()
	g.Abort(errors.New("worker 1 failed"))
	err := <-done
	require.ErrorIs(t, err, collective.ErrBarrierBroken)
	require.Contains(t, err.Error(), "worker 1 failed")
}

func TestGroupBufferSize(t *testing.T) {
	t.Parallel()

	m := collective.NewGroup(2, 2).Member(0)
	err := m.AllGather(context.Background(), []float64{1}, make([]float64, 4))
	require.ErrorIs(t, err, collective.ErrBufferSize)
	err = m.AllGather(context.Background(), []float64{1, 2}, make([]float64, 3))
	require.ErrorIs(t, err, collective.ErrBufferSize)
}

func TestNewGroupPanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { collective.NewGroup(0, 1) })
	require.Panics(t, func() { collective.NewGroup(1, 0) })
	require.Panics(t, func() { collective.NewGroup(2, 1).Member(2) })
}
