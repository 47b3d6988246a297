package system

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Residual returns the Euclidean norm of A·x - b.
func Residual(p *Problem, x []float64) (float64, error) {
	if len(x) != p.Size() {
		return 0, fmt.Errorf("%w: len(x)=%d, want %d", ErrDimensionMismatch, len(x), p.Size())
	}
	var ax mat.VecDense
	ax.MulVec(p.A, mat.NewVecDense(len(x), append([]float64(nil), x...)))
	r := ax.RawVector().Data
	floats.Sub(r, p.B)
	return floats.Norm(r, 2), nil
}

// Direct solves A·x = b with an LU factorisation. The iteration engine never
// uses it; it serves as a reference answer for checks and reports.
func Direct(p *Problem) ([]float64, error) {
	var x mat.VecDense
	if err := x.SolveVec(p.A, mat.NewVecDense(p.Size(), append([]float64(nil), p.B...))); err != nil {
		return nil, fmt.Errorf("system: direct solve: %w", err)
	}
	return x.RawVector().Data, nil
}
