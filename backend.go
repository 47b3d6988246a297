package main

import (
	"context"
	"sort"

	"gauss-seidel/internal/solver"
	"gauss-seidel/internal/system"
)

// backendFunc runs a solve. primary is false on processes whose result must
// not be reported, such as non-zero MPI ranks.
type backendFunc func(ctx context.Context, p *system.Problem, cfg config, opts ...solver.Option) (res *solver.Result, primary bool, err error)

var backends = map[string]backendFunc{
	"local": solveLocal,
}

func backendNames() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func solveLocal(ctx context.Context, p *system.Problem, cfg config, opts ...solver.Option) (*solver.Result, bool, error) {
	res, err := solver.Solve(ctx, p, append(opts, solver.WithWorkers(cfg.Workers))...)
	return res, true, err
}
