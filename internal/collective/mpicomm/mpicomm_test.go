//go:build mpi

package mpicomm_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"gauss-seidel/internal/collective/mpicomm"
	"gauss-seidel/internal/partition"
	"gauss-seidel/internal/solver"
	"gauss-seidel/internal/system"
)

// TestMain brackets the tests with MPI start and stop. Run under a launcher,
// e.g. mpirun -np 3 go test -tags mpi ./internal/collective/mpicomm/
func TestMain(m *testing.M) {
	mpicomm.Start()
	code := m.Run()
	mpicomm.Stop()
	os.Exit(code)
}

func TestAllGatherRankOrder(t *testing.T) {
	c := mpicomm.New()
	size, rank := c.Size(), c.Rank()
	const block = 2

	send := []float64{float64(rank*10 + 1), float64(rank*10 + 2)}
	recv := make([]float64, size*block)
	require.NoError(t, c.Barrier(context.Background()))
	require.NoError(t, c.AllGather(context.Background(), send, recv))

	for r := 0; r < size; r++ {
		require.Equal(t, float64(r*10+1), recv[r*block], "rank %d", r)
		require.Equal(t, float64(r*10+2), recv[r*block+1], "rank %d", r)
	}
}

func TestAllGatherBufferSize(t *testing.T) {
	c := mpicomm.New()
	err := c.AllGather(context.Background(), []float64{1}, make([]float64, c.Size()+1))
	require.Error(t, err)
}

func TestRunWorkerTextbook(t *testing.T) {
	p, err := system.New(
		[][]float64{{10, -1, 2}, {-1, 11, -1}, {2, -1, 10}},
		[]float64{6, 25, -11},
		nil,
		0.0001,
	)
	require.NoError(t, err)

	c := mpicomm.New()
	res, err := solver.RunWorker(context.Background(), c, p)
	require.NoError(t, err)
	require.Equal(t, 8, res.Rounds)

	table, err := partition.New(c.Size(), p.Size())
	require.NoError(t, err)
	require.Equal(t, c.Size(), table.Workers())
	require.InDelta(t, 1.0433, res.X[0], 1e-4)
	require.InDelta(t, 2.2692, res.X[1], 1e-4)
	require.InDelta(t, -1.0817, res.X[2], 1e-4)
}
