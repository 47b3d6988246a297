//go:build mpi

package main

import (
	"context"

	"gauss-seidel/internal/collective/mpicomm"
	"gauss-seidel/internal/solver"
	"gauss-seidel/internal/system"
)

func init() {
	backends["mpi"] = solveMPI
}

// solveMPI runs one worker per MPI process, e.g. under
// `mpirun -np 4 gsolve --backend mpi problem.txt`. The worker count is the
// MPI world size; cfg.Workers is ignored.
func solveMPI(ctx context.Context, p *system.Problem, _ config, opts ...solver.Option) (*solver.Result, bool, error) {
	mpicomm.Start()
	defer mpicomm.Stop()

	comm := mpicomm.New()
	res, err := solver.RunWorker(ctx, comm, p, opts...)
	return res, comm.Rank() == 0, err
}
