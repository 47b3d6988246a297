// Package system holds the linear system A·x = b solved by the iteration
// engine: construction and validation, the pre-flight convergence checks,
// problem file formats and a few numeric helpers.
package system

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Problem is an immutable dense linear system with its starting point.
type Problem struct {
	// A is the n×n coefficient matrix.
	A *mat.Dense
	// B is the constant vector.
	B []float64
	// X0 is the initial guess.
	X0 []float64
	// Tolerance is the largest per-element relative change accepted as converged.
	Tolerance float64
}

// New validates the inputs and copies them into a Problem. A nil x0 starts
// from the zero vector.
func New(a [][]float64, b, x0 []float64, tolerance float64) (*Problem, error) {
	n := len(a)
	if n == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrBadShape)
	}
	if len(b) != n {
		return nil, fmt.Errorf("%w: len(b)=%d, want %d", ErrDimensionMismatch, len(b), n)
	}
	if x0 == nil {
		x0 = make([]float64, n)
	}
	if len(x0) != n {
		return nil, fmt.Errorf("%w: len(x0)=%d, want %d", ErrDimensionMismatch, len(x0), n)
	}
	if math.IsNaN(tolerance) || math.IsInf(tolerance, 0) || tolerance <= 0 {
		return nil, fmt.Errorf("%w: got %g", ErrBadTolerance, tolerance)
	}

	data := make([]float64, 0, n*n)
	for i, row := range a {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d entries, want %d", ErrBadShape, i, len(row), n)
		}
		for j, v := range row {
			if !finite(v) {
				return nil, fmt.Errorf("%w: a[%d][%d]=%v", ErrNaNInf, i, j, v)
			}
		}
		data = append(data, row...)
	}
	for i := range b {
		if !finite(b[i]) {
			return nil, fmt.Errorf("%w: b[%d]=%v", ErrNaNInf, i, b[i])
		}
		if !finite(x0[i]) {
			return nil, fmt.Errorf("%w: x0[%d]=%v", ErrNaNInf, i, x0[i])
		}
	}

	return &Problem{
		A:         mat.NewDense(n, n, data),
		B:         append([]float64(nil), b...),
		X0:        append([]float64(nil), x0...),
		Tolerance: tolerance,
	}, nil
}

// Size returns the number of unknowns.
func (p *Problem) Size() int { return len(p.B) }

// Row returns row i of A. The slice aliases the matrix storage and must not
// be modified.
func (p *Problem) Row(i int) []float64 { return p.A.RawRowView(i) }

// Rows returns a copy of A as a slice of rows.
func (p *Problem) Rows() [][]float64 {
	n := p.Size()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = mat.Row(nil, i, p.A)
	}
	return rows
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
