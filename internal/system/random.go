package system

import (
	"math"
	"math/rand"
)

// Random builds an n×n strictly diagonally dominant problem with
// coefficients drawn from [-10, 10), constants from [-100, 100) and a zero
// initial guess.
func Random(n int, tolerance float64, rnd *rand.Rand) (*Problem, error) {
	a := make([][]float64, n)
	b := make([]float64, n)
	for i := range a {
		a[i] = make([]float64, n)
		sum := 0.0
		for j := range a[i] {
			if i == j {
				continue
			}
			a[i][j] = rnd.Float64()*20 - 10
			sum += math.Abs(a[i][j])
		}

		diag := sum + 1 + rnd.Float64()*10
		if rnd.Intn(2) == 0 {
			diag = -diag
		}
		a[i][i] = diag
		b[i] = rnd.Float64()*200 - 100
	}
	return New(a, b, nil, tolerance)
}
