package system

import "errors"

// Callers match these with errors.Is; returned errors usually carry row or
// index context wrapped around the sentinel.
var (
	// ErrBadShape is returned when the system has no unknowns or the matrix
	// rows do not form a square.
	ErrBadShape = errors.New("system: invalid shape")

	// ErrDimensionMismatch is returned when b or the initial guess do not
	// have one entry per unknown.
	ErrDimensionMismatch = errors.New("system: dimension mismatch")

	// ErrNaNInf is returned when a coefficient, constant or initial value is
	// NaN or ±Inf.
	ErrNaNInf = errors.New("system: NaN or Inf encountered")

	// ErrBadTolerance is returned when the tolerance is not a positive finite number.
	ErrBadTolerance = errors.New("system: tolerance must be positive and finite")

	// ErrDegenerateDiagonal is returned when a diagonal coefficient is zero;
	// the update divides by it.
	ErrDegenerateDiagonal = errors.New("system: zero diagonal coefficient")

	// ErrNotDiagonallyDominant is returned when the matrix fails the
	// diagonal-dominance convergence condition.
	ErrNotDiagonallyDominant = errors.New("system: matrix is not diagonally dominant")
)
