// Package solver runs the partitioned Jacobi-style iteration for A·x = b.
//
// A fixed set of workers each own a contiguous range of unknowns. Every
// round each worker computes its range from the previous iterate, all
// workers meet at a barrier, exchange their slices through an all-gather
// and then, holding the same assembled iterate, reach the same convergence
// decision without further communication.
package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"gauss-seidel/internal/collective"
	"gauss-seidel/internal/partition"
	"gauss-seidel/internal/system"
)

// Result is the outcome of a solve.
type Result struct {
	// X is the final iterate.
	X []float64
	// Rounds is the number of rounds executed, the converging round included.
	Rounds int
	// Converged is false only when a round cap stopped the solve.
	Converged bool
	// Unstable is true when some round produced a NaN or ±Inf relative error.
	Unstable bool
	// MaxRelErr is the largest relative error of the last round.
	MaxRelErr float64
	// Workers is the number of workers that took part.
	Workers int
	// Elapsed is the wall-clock time of the round loop.
	Elapsed time.Duration
}

// Solve checks p, then runs the iteration on in-process workers, one
// goroutine each, and returns the solution seen by rank 0.
//
// Pre-flight failures (system.ErrDegenerateDiagonal,
// system.ErrNotDiagonallyDominant) are returned before any round runs.
// Without WithMaxRounds the loop only ends on convergence; ctx cancellation
// aborts it with collective.ErrBarrierBroken.
func Solve(ctx context.Context, p *system.Problem, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)
	if err := system.Preflight(p); err != nil {
		return nil, err
	}
	table, err := partition.New(o.workers, p.Size())
	if err != nil {
		return nil, err
	}

	group := collective.NewGroup(o.workers, table.Block)
	results := make([]*Result, o.workers)

	// A worker that stops at the round cap must not cancel the others: they
	// stop at the same round and still owe their results. Real failures
	// break the group through Abort instead.
	var eg errgroup.Group
	for rank := 0; rank < o.workers; rank++ {
		member := group.Member(rank)
		eg.Go(func() error {
			res, err := run(ctx, member, p, table, o)
			results[member.Rank()] = res
			if err != nil && !errors.Is(err, ErrRoundLimit) {
				group.Abort(err)
			}
			return err
		})
	}
	err = eg.Wait()
	return results[0], err
}

// RunWorker runs the calling worker's share of the solve over comm, for
// substrates where every worker is its own process. Every member of comm
// must call RunWorker with the same problem and options. Each member runs
// the pre-flight checks itself; they are deterministic, so either all
// members fail before the first round or none does.
func RunWorker(ctx context.Context, comm collective.Communicator, p *system.Problem, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)
	if err := system.Preflight(p); err != nil {
		return nil, err
	}
	table, err := partition.New(comm.Size(), p.Size())
	if err != nil {
		return nil, err
	}
	return run(ctx, comm, p, table, o)
}

func run(ctx context.Context, comm collective.Communicator, p *system.Problem, table partition.Table, o Options) (*Result, error) {
	start := time.Now()
	s := NewSession(p, table, comm.Rank())
	log := o.logger.WithFields(logrus.Fields{
		"rank":  s.Rank,
		"range": table.Range(s.Rank).String(),
	})
	log.Debug("worker started")

	warned := false
	for !s.Converged {
		if o.maxRounds > 0 && s.Round >= o.maxRounds {
			err := fmt.Errorf("%w: %d rounds, max relative error %g", ErrRoundLimit, s.Round, s.MaxRelErr())
			if s.Unstable {
				err = errors.Join(err, ErrNumericInstability)
			}
			return s.result(table, start), err
		}

		if err := s.Step(ctx, comm); err != nil {
			return nil, fmt.Errorf("round %d: %w", s.Round+1, err)
		}

		log.WithFields(logrus.Fields{
			"round":       s.Round,
			"max_rel_err": s.MaxRelErr(),
		}).Debug("round complete")

		if s.Rank != 0 {
			continue
		}
		if s.Unstable && !warned {
			warned = true
			log.WithField("round", s.Round).Warn(ErrNumericInstability.Error())
		}
		if o.observer != nil {
			o.observer(Round{
				Index:     s.Round,
				X:         append([]float64(nil), s.X...),
				RelErr:    append([]float64(nil), s.RelErr...),
				Converged: s.Converged,
				Unstable:  Unstable(s.RelErr),
			})
		}
	}

	res := s.result(table, start)
	log.WithFields(logrus.Fields{
		"rounds":  res.Rounds,
		"elapsed": res.Elapsed,
	}).Debug("converged")
	return res, nil
}

func (s *Session) result(table partition.Table, start time.Time) *Result {
	return &Result{
		X:         append([]float64(nil), s.X...),
		Rounds:    s.Round,
		Converged: s.Converged,
		Unstable:  s.Unstable,
		MaxRelErr: s.MaxRelErr(),
		Workers:   table.Workers(),
		Elapsed:   time.Since(start),
	}
}
