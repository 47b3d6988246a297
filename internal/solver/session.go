package solver

import (
	"context"

	"gauss-seidel/internal/collective"
	"gauss-seidel/internal/partition"
	"gauss-seidel/internal/system"
)

// Session is the state one worker carries through a solve: the read-only
// problem, the partition, its copy of the iterate and the round state. It
// lives for exactly one solve.
type Session struct {
	Problem *system.Problem
	Table   partition.Table
	Rank    int

	// X is the current iterate, identical on every worker between rounds.
	X []float64
	// RelErr holds the relative errors of the last round.
	RelErr []float64
	// Round counts completed rounds.
	Round int
	// Converged becomes true once and ends the solve.
	Converged bool
	// Unstable records that some round produced a NaN or ±Inf relative error.
	Unstable bool

	send []float64
	recv []float64
}

// NewSession prepares rank's state for solving p under table.
func NewSession(p *system.Problem, table partition.Table, rank int) *Session {
	n := p.Size()
	return &Session{
		Problem: p,
		Table:   table,
		Rank:    rank,
		X:       append([]float64(nil), p.X0...),
		RelErr:  make([]float64, n),
		send:    make([]float64, table.Block),
		recv:    make([]float64, table.GatherLen()),
	}
}

// Step runs one round: compute the local slice, wait for every worker,
// exchange slices, then replace X and decide convergence. Every worker of
// the communicator must call Step the same number of times.
func (s *Session) Step(ctx context.Context, comm collective.Communicator) error {
	r := s.Table.Range(s.Rank)
	local := LocalUpdate(s.Problem, r, s.X, s.send)
	clear(s.send[len(local):])

	if err := comm.Barrier(ctx); err != nil {
		return err
	}
	if err := comm.AllGather(ctx, s.send, s.recv); err != nil {
		return err
	}

	next := s.recv[:s.Table.N]
	RelativeErrors(s.RelErr, s.X, next)
	copy(s.X, next)

	s.Round++
	if Unstable(s.RelErr) {
		s.Unstable = true
	}
	s.Converged = Converged(s.RelErr, s.Problem.Tolerance)
	return nil
}

// MaxRelErr returns the largest relative error of the last round.
func (s *Session) MaxRelErr() float64 { return maxRelErr(s.RelErr) }
