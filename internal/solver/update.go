package solver

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"gauss-seidel/internal/partition"
	"gauss-seidel/internal/system"
)

// LocalUpdate computes the next values of the unknowns in r from the previous
// iterate x:
//
//	new[i] = (b[i] - Σ_{j≠i} A[i][j]·x[j]) / A[i][i]
//
// Every value reads only the previous round's x, never values produced in
// the same round; this is what lets the ranges be computed independently.
// The results are written to dst[:r.Len()] in index order and that slice is
// returned. x is not modified.
func LocalUpdate(p *system.Problem, r partition.Range, x, dst []float64) []float64 {
	dst = dst[:r.Len()]
	for i := r.Lo; i < r.Hi; i++ {
		row := p.Row(i)
		num := p.B[i]
		for j, a := range row {
			if j != i {
				num -= a * x[j]
			}
		}
		dst[i-r.Lo] = num / row[i]
	}
	return dst
}

// RelativeErrors stores |next[i] - old[i]| / |next[i]| in dst and returns it.
// A zero next[i] yields NaN or +Inf; see Unstable.
func RelativeErrors(dst, old, next []float64) []float64 {
	dst = dst[:len(next)]
	for i := range next {
		dst[i] = math.Abs(next[i]-old[i]) / math.Abs(next[i])
	}
	return dst
}

// Converged reports whether every relative error is within tolerance. NaN
// entries never are.
func Converged(rel []float64, tolerance float64) bool {
	for _, e := range rel {
		if !(e <= tolerance) {
			return false
		}
	}
	return true
}

// Unstable reports whether some relative error is NaN or ±Inf.
func Unstable(rel []float64) bool {
	if floats.HasNaN(rel) {
		return true
	}
	for _, e := range rel {
		if math.IsInf(e, 0) {
			return true
		}
	}
	return false
}

// maxRelErr is the largest relative error, +Inf for an unstable round.
func maxRelErr(rel []float64) float64 {
	if Unstable(rel) {
		return math.Inf(1)
	}
	return floats.Max(rel)
}
