//go:build mpi

// Package mpicomm implements collective.Communicator on top of MPI, one
// worker per MPI process. It needs cgo and an MPI installation and is only
// compiled with the "mpi" build tag.
package mpicomm

import (
	"context"
	"fmt"

	mpi "github.com/sbromberger/gompi"

	"gauss-seidel/internal/collective"
)

// Start initialises MPI. It must be called once per process before New and
// paired with Stop.
func Start() { mpi.Start(true) }

// Stop finalises MPI.
func Stop() { mpi.Stop() }

// Comm is the MPI_COMM_WORLD endpoint of the calling process.
type Comm struct {
	c     *mpi.Communicator
	stage []float64
}

var _ collective.Communicator = (*Comm)(nil)

// New returns the world communicator.
func New() *Comm {
	return &Comm{c: mpi.NewCommunicator(nil)}
}

func (c *Comm) Rank() int { return c.c.Rank() }

func (c *Comm) Size() int { return c.c.Size() }

// Barrier maps to MPI_Barrier. MPI calls cannot be interrupted, so ctx is
// only consulted before entering.
func (c *Comm) Barrier(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.c.Barrier()
	return nil
}

// AllGather places the calling rank's block in a zeroed buffer of the full
// gather length and sums those buffers across ranks with one MPI_Allreduce.
// Every other slot holds zero, so each sum is exactly one rank's value.
// Blocks are the same size on every rank, idle ranks included.
func (c *Comm) AllGather(ctx context.Context, send, recv []float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	size, rank, block := c.Size(), c.Rank(), len(send)
	if block == 0 || len(recv) != size*block {
		return fmt.Errorf("%w: send=%d recv=%d size=%d", collective.ErrBufferSize, len(send), len(recv), size)
	}
	if len(c.stage) != len(recv) {
		c.stage = make([]float64, len(recv))
	}
	clear(c.stage)
	copy(c.stage[rank*block:], send)
	return c.c.AllreduceFloat64s(recv, c.stage, mpi.OpSum, 0)
}
