package system

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// RowDominance holds the diagonal-dominance figures of one matrix row.
type RowDominance struct {
	Row int
	// Diagonal is |A[i][i]|.
	Diagonal float64
	// OffDiagonal is Σ_{j≠i} |A[i][j]|.
	OffDiagonal float64
}

// Weak reports whether the row satisfies |A[i][i]| >= Σ_{j≠i} |A[i][j]|.
func (r RowDominance) Weak() bool { return r.Diagonal >= r.OffDiagonal }

// Strict reports whether the row satisfies |A[i][i]| > Σ_{j≠i} |A[i][j]|.
func (r RowDominance) Strict() bool { return r.Diagonal > r.OffDiagonal }

// Analyze computes the dominance figures of every row of A.
func Analyze(p *Problem) []RowDominance {
	n := p.Size()
	rows := make([]RowDominance, n)
	for i := 0; i < n; i++ {
		row := p.Row(i)
		rows[i] = RowDominance{
			Row:         i,
			Diagonal:    math.Abs(row[i]),
			OffDiagonal: floats.Norm(row[:i], 1) + floats.Norm(row[i+1:], 1),
		}
	}
	return rows
}

// CheckDominance fails with ErrNotDiagonallyDominant unless every row is
// weakly dominant and at least one row is strictly dominant. It is a
// sufficient condition only; passing it does not rule out stalls on systems
// with exact ties.
func CheckDominance(p *Problem) error {
	strict := 0
	for _, r := range Analyze(p) {
		if !r.Weak() {
			return fmt.Errorf("%w: row %d: |a_ii|=%g < %g", ErrNotDiagonallyDominant, r.Row, r.Diagonal, r.OffDiagonal)
		}
		if r.Strict() {
			strict++
		}
	}
	if strict == 0 {
		return fmt.Errorf("%w: no row is strictly dominant", ErrNotDiagonallyDominant)
	}
	return nil
}

// CheckDiagonal fails with ErrDegenerateDiagonal when any A[i][i] is zero.
func CheckDiagonal(p *Problem) error {
	for i := 0; i < p.Size(); i++ {
		if p.A.At(i, i) == 0 {
			return fmt.Errorf("%w: a[%d][%d]", ErrDegenerateDiagonal, i, i)
		}
	}
	return nil
}

// Preflight runs every check that must pass before the first round.
func Preflight(p *Problem) error {
	if err := CheckDiagonal(p); err != nil {
		return err
	}
	return CheckDominance(p)
}
