package solver_test

import (
	"context"
	"fmt"

	"gauss-seidel/internal/solver"
	"gauss-seidel/internal/system"
)

// ExampleSolve solves a 3×3 strictly diagonally dominant system on two
// workers.
func ExampleSolve() {
	p, err := system.New(
		[][]float64{
			{10, -1, 2},
			{-1, 11, -1},
			{2, -1, 10},
		},
		[]float64{6, 25, -11},
		[]float64{0, 0, 0},
		0.0001,
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	res, err := solver.Solve(context.Background(), p, solver.WithWorkers(2))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, v := range res.X {
		fmt.Printf("%.4f\n", v)
	}
	fmt.Println("rounds:", res.Rounds)
	// Output:
	// 1.0433
	// 2.2692
	// -1.0817
	// rounds: 8
}
